package specindex

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/getmockd/armmock/pkg/arm"
)

// ValidationRequest is the parsed view of a live ARM request URL.
type ValidationRequest struct {
	Provider     string
	ResourceType string
	APIVersion   string
	Method       string
	Path         string
	Host         string
	Query        url.Values
}

// ParseRequest parses an absolute URL or origin-form request target.
func ParseRequest(rawURL, method string) (*ValidationRequest, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing request url: %w", err)
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	segments := arm.Segments(path)

	query := u.Query()
	version := query.Get(arm.QueryAPIVersion)
	if version == "" {
		version = arm.UnknownAPIVersion
	}
	return &ValidationRequest{
		Provider:     arm.ProviderNamespace(segments),
		ResourceType: arm.ResourceType(segments),
		APIVersion:   version,
		Method:       strings.ToUpper(method),
		Path:         path,
		Host:         u.Host,
		Query:        query,
	}, nil
}

// Segments returns the non-empty path segments.
func (r *ValidationRequest) Segments() []string { return arm.Segments(r.Path) }
