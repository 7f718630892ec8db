package arm

const (
	// Azure-specific HTTP header names
	HeaderNameAsyncOperation = "Azure-AsyncOperation"
	HeaderNameLocation       = "Location"
	HeaderNameRetryAfter     = "Retry-After"

	// Microsoft-specific HTTP header names
	HeaderNameErrorCode             = "X-Ms-Error-Code"
	HeaderNameRequestID             = "X-Ms-Request-Id"
	HeaderNameClientRequestID       = "X-Ms-Client-Request-Id"
	HeaderNameCorrelationRequestID  = "X-Ms-Correlation-Request-Id"
	HeaderNameReturnClientRequestID = "X-Ms-Return-Client-Request-Id"

	// Mock-specific HTTP header names
	HeaderNameExampleID = "Example-Id"
	HeaderNameProfile   = "Mock-Profile"
)

const (
	// QueryAPIVersion is the query parameter carrying the requested API version.
	QueryAPIVersion = "api-version"

	// QueryLROCallback marks a request as a long-running operation poll.
	QueryLROCallback = "lro-callback"

	// UnknownAPIVersion is the sentinel API version used when a request omits
	// api-version or the declared one has no match.
	UnknownAPIVersion = "unknown"

	// UnknownProvider is the synthetic provider namespace of URLs that carry no
	// providers/{namespace} pair, such as subscriptions and resource groups.
	UnknownProvider = "microsoft.unknown"
)
