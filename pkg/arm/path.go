package arm

import (
	"strings"
)

const segmentProviders = "providers"

// PureURL strips the query string and fragment from a raw URL.
func PureURL(rawURL string) string {
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}

// PathOf returns the path portion of a raw URL. Both absolute URLs
// (https://host:port/path?query) and origin-form request targets are accepted.
func PathOf(rawURL string) string {
	u := PureURL(rawURL)
	if i := strings.Index(u, "://"); i >= 0 {
		rest := u[i+3:]
		if j := strings.IndexByte(rest, '/'); j >= 0 {
			return rest[j:]
		}
		return "/"
	}
	return u
}

// Segments splits the path of a raw URL into its non-empty segments.
func Segments(rawURL string) []string {
	parts := strings.Split(PathOf(rawURL), "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// providerIndex returns the index of the namespace segment of the last
// providers/{namespace} pair, or -1 when the path has none.
func providerIndex(segments []string) int {
	for i := len(segments) - 2; i >= 0; i-- {
		if strings.EqualFold(segments[i], segmentProviders) {
			return i + 1
		}
	}
	return -1
}

// ProviderNamespace returns the lower-cased namespace of the last
// providers/{namespace} pair, or UnknownProvider.
func ProviderNamespace(segments []string) string {
	if i := providerIndex(segments); i >= 0 {
		return strings.ToLower(segments[i])
	}
	return UnknownProvider
}

// ResourceType returns the slash-joined resource type segments that follow the
// last provider namespace, e.g. "service/users" for
// .../providers/Microsoft.ApiManagement/service/s1/users/u1.
func ResourceType(segments []string) string {
	i := providerIndex(segments)
	if i < 0 {
		return ""
	}
	var types []string
	for j := i + 1; j < len(segments); j += 2 {
		types = append(types, segments[j])
	}
	return strings.Join(types, "/")
}

// IsManagementLevel reports whether the segment at the 1-based level of the
// path is a resource name subject to cascading existence rules.
func IsManagementLevel(level int, segments []string) bool {
	if level <= 0 || level > len(segments) {
		return false
	}
	if level == 2 && strings.EqualFold(segments[0], "subscriptions") {
		return false
	}

	pos := 0
	for i := 0; i < level; i++ {
		if strings.EqualFold(segments[i], segmentProviders) && i+1 < len(segments) {
			if level == i+1 || level == i+2 {
				return false
			}
			i++
			pos = 0
			continue
		}
		pos++
	}
	return pos%2 == 0
}

// IsManagementURL reports whether the full path of a URL ends at a management level.
func IsManagementURL(rawURL string) bool {
	segments := Segments(rawURL)
	return IsManagementLevel(len(segments), segments)
}

// IsListPath reports whether the segments address a collection. After the
// prefix up to and including the last provider namespace is discarded, an odd
// number of remaining segments ends on a resource type.
func IsListPath(segments []string) bool {
	remaining := len(segments)
	if i := providerIndex(segments); i >= 0 {
		remaining = len(segments) - (i + 1)
	}
	return remaining%2 == 1
}
