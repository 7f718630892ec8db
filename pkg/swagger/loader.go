package swagger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/getmockd/armmock/pkg/logging"
)

// Sentinel errors for document loading.
var (
	ErrNotSwagger2 = errors.New("document is not a Swagger 2.0 document")
	ErrEmptyFile   = errors.New("file is empty")
)

var utf8BOM = []byte("\xef\xbb\xbf")

// File is one loaded spec document.
type File struct {
	Path string
	Doc  *Document

	raw    any
	loader *Loader
}

// Loader reads spec documents and example files, caching each by absolute path.
type Loader struct {
	mu       sync.Mutex
	raw      map[string]any
	files    map[string]*File
	examples map[string]*Example
	schemas  map[string]any
	log      *slog.Logger
}

// NewLoader creates an empty loader.
func NewLoader() *Loader {
	return &Loader{
		raw:      make(map[string]any),
		files:    make(map[string]*File),
		examples: make(map[string]*Example),
		schemas:  make(map[string]any),
		log:      logging.Nop(),
	}
}

// SetLogger sets the operational logger.
func (l *Loader) SetLogger(log *slog.Logger) {
	if log != nil {
		l.log = log
	}
}

// Load reads and decodes a Swagger 2.0 document.
func (l *Loader) Load(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	if f, ok := l.files[abs]; ok {
		l.mu.Unlock()
		return f, nil
	}
	l.mu.Unlock()

	raw, err := l.rawDocument(abs)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("re-encoding %s: %w", abs, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", abs, err)
	}
	if doc.Swagger != Version {
		return nil, fmt.Errorf("%s: %w", abs, ErrNotSwagger2)
	}

	f := &File{Path: abs, Doc: &doc, raw: raw, loader: l}
	l.mu.Lock()
	l.files[abs] = f
	l.mu.Unlock()
	l.log.Debug("loaded spec", "path", abs, "apiVersion", doc.Info.Version, "paths", len(doc.Paths)+len(doc.XMsPaths))
	return f, nil
}

// rawDocument returns the decoded JSON tree of a file, reading it on first use.
func (l *Loader) rawDocument(abs string) (any, error) {
	l.mu.Lock()
	raw, ok := l.raw[abs]
	l.mu.Unlock()
	if ok {
		return raw, nil
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}
	raw, err = decode(abs, data)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.raw[abs] = raw
	l.mu.Unlock()
	return raw, nil
}

// decode parses JSON, or YAML for .yaml/.yml files, into plain Go values.
func decode(path string, data []byte) (any, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}

	var raw any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		raw = normalizeYAML(raw)
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	return raw, nil
}

// normalizeYAML converts YAML-only shapes (non-string map keys, integer
// scalars) into the shapes encoding/json produces.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeYAML(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return m
	case []any:
		for i := range t {
			t[i] = normalizeYAML(t[i])
		}
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	default:
		return v
	}
}

// Reset drops every cached document and example.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.raw = make(map[string]any)
	l.files = make(map[string]*File)
	l.examples = make(map[string]*Example)
	l.schemas = make(map[string]any)
}
