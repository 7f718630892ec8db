package swagger

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// ErrExampleNotDeclared is returned when an operation has no example with the
// requested id.
var ErrExampleNotDeclared = errors.New("example not declared")

// Example is an x-ms-examples payload.
type Example struct {
	ID          string                      `json:"-"`
	Path        string                      `json:"-"`
	Title       string                      `json:"title,omitempty"`
	OperationID string                      `json:"operationId,omitempty"`
	Parameters  map[string]any              `json:"parameters"`
	Responses   map[string]*ExampleResponse `json:"responses"`
}

// ExampleResponse is one status code's recorded response.
type ExampleResponse struct {
	Headers map[string]any `json:"headers,omitempty"`
	Body    any            `json:"body,omitempty"`
}

// LoadExample loads an example file referenced from base. Results are cached
// by path and shared; callers must copy before modifying.
func (l *Loader) LoadExample(base, id, ref string) (*Example, error) {
	file, _ := splitRef(ref)
	if u, err := url.PathUnescape(file); err == nil {
		file = u
	}
	path := filepath.Clean(filepath.Join(filepath.Dir(base), filepath.FromSlash(file)))

	l.mu.Lock()
	ex, ok := l.examples[path]
	l.mu.Unlock()
	if ok {
		return ex, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading example %q: %w", id, err)
	}
	raw, err := decode(path, data)
	if err != nil {
		return nil, fmt.Errorf("loading example %q: %w", id, err)
	}
	data, err = json.Marshal(raw)
	if err != nil {
		return nil, err
	}

	ex = &Example{}
	if err := json.Unmarshal(data, ex); err != nil {
		return nil, fmt.Errorf("decoding example %q: %w", id, err)
	}
	ex.ID = id
	ex.Path = path
	if ex.Parameters == nil {
		ex.Parameters = map[string]any{}
	}

	l.mu.Lock()
	l.examples[path] = ex
	l.mu.Unlock()
	return ex, nil
}
