package responder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/getmockd/armmock/pkg/example"
	"github.com/getmockd/armmock/pkg/exchange"
	"github.com/getmockd/armmock/pkg/swagger"
)

// maxGeneratedExamples bounds the index search for a free file name.
const maxGeneratedExamples = 10000

// ExamplePath returns the path of the n-th generated example of op.
func (r *Responder) ExamplePath(op *swagger.Operation, n int) string {
	name := op.Spec.OperationID
	if name == "" {
		name = strings.NewReplacer("/", "_", " ", "_", "{", "", "}", "").Replace(op.ID())
	}
	return filepath.Join(filepath.Dir(op.File.Path), r.cfg.ExampleFolder, fmt.Sprintf("%s_%d_gen.json", name, n))
}

// saveExample writes ex, with its parameters taken from the live request, to
// the first free generated example path and returns that path.
func (r *Responder) saveExample(op *swagger.Operation, ex *swagger.Example, req *exchange.Request) (string, error) {
	params, _, err := example.GenExampleParameters(op, req)
	if err != nil {
		return "", fmt.Errorf("extracting example parameters: %w", err)
	}
	ex.Parameters = params

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ex); err != nil {
		return "", fmt.Errorf("encoding generated example: %w", err)
	}

	r.genMu.Lock()
	defer r.genMu.Unlock()

	dir := filepath.Dir(r.ExamplePath(op, 1))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating example folder: %w", err)
	}
	for n := 1; n <= maxGeneratedExamples; n++ {
		path := r.ExamplePath(op, n)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("creating generated example: %w", err)
		}
		_, werr := f.Write(buf.Bytes())
		cerr := f.Close()
		if err := errors.Join(werr, cerr); err != nil {
			return "", fmt.Errorf("writing generated example: %w", err)
		}
		r.log.Info("generated example", "operationId", op.ID(), "path", path)
		return path, nil
	}
	return "", fmt.Errorf("no free generated example name for %s in %s", op.ID(), dir)
}
