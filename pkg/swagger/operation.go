package swagger

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/getmockd/armmock/internal/matching"
	"github.com/getmockd/armmock/pkg/arm"
)

// AnyProvider is the provider key for templates whose namespace segment is a
// placeholder, such as providers/{resourceProviderNamespace}.
const AnyProvider = "*"

// Operation is one method on one path template of a loaded document.
type Operation struct {
	File       *File
	Path       string
	Method     string
	APIVersion string
	Provider   string
	Item       *PathItem
	Spec       *OperationObject
	Template   *matching.Template
}

// ID returns the operationId, or METHOD path when the document omits one.
func (o *Operation) ID() string {
	if o.Spec.OperationID != "" {
		return o.Spec.OperationID
	}
	return o.Method + " " + o.Path
}

// IsLongRunning reports whether the operation is declared with
// x-ms-long-running-operation.
func (o *Operation) IsLongRunning() bool { return o.Spec.LongRunning }

// String identifies the operation for logs.
func (o *Operation) String() string {
	return fmt.Sprintf("%s %s (%s, %s)", o.Method, o.Path, o.APIVersion, filepath.Base(o.File.Path))
}

// Operations enumerates every operation declared under paths and x-ms-paths,
// in template order.
func (f *File) Operations() ([]*Operation, error) {
	var ops []*Operation
	for _, paths := range []map[string]*PathItem{f.Doc.Paths, f.Doc.XMsPaths} {
		templates := make([]string, 0, len(paths))
		for p := range paths {
			templates = append(templates, p)
		}
		sort.Strings(templates)

		for _, p := range templates {
			item := paths[p]
			if item == nil {
				continue
			}
			tpl, err := matching.CompileTemplate(p)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f.Path, err)
			}
			provider := arm.ProviderNamespace(arm.Segments(tpl.Path()))
			if strings.Contains(provider, "{") {
				provider = AnyProvider
			}

			methods := item.Methods()
			names := make([]string, 0, len(methods))
			for m := range methods {
				names = append(names, m)
			}
			sort.Strings(names)
			for _, m := range names {
				ops = append(ops, &Operation{
					File:       f,
					Path:       p,
					Method:     m,
					APIVersion: f.Doc.Info.Version,
					Provider:   provider,
					Item:       item,
					Spec:       methods[m],
					Template:   tpl,
				})
			}
		}
	}
	return ops, nil
}

// Parameters returns the operation's parameters with path-item level
// parameters merged in and every $ref resolved. Operation-level parameters
// override path-item ones with the same name and location.
func (o *Operation) Parameters() ([]*Parameter, error) {
	var out []*Parameter
	seen := make(map[string]bool)
	for _, list := range [][]*Parameter{o.Spec.Parameters, o.Item.Parameters} {
		for _, p := range list {
			resolved, err := o.resolveParameter(p)
			if err != nil {
				return nil, err
			}
			key := resolved.In + ":" + strings.ToLower(resolved.Name)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, resolved)
		}
	}
	return out, nil
}

func (o *Operation) resolveParameter(p *Parameter) (*Parameter, error) {
	base := o.File.Path
	for depth := 0; p.Ref != ""; depth++ {
		if depth > 8 {
			return nil, &RefError{Ref: p.Ref, Base: base, Err: fmt.Errorf("reference chain too deep")}
		}
		var next Parameter
		file, err := o.File.loader.resolveInto(base, p.Ref, &next)
		if err != nil {
			return nil, err
		}
		p, base = &next, file
	}
	if p.Schema != nil {
		schema, err := o.File.loader.ResolveSchema(base, p.Schema)
		if err != nil {
			return nil, err
		}
		cp := *p
		cp.Schema = schema
		p = &cp
	}
	return p, nil
}

// Response returns the declared response for a status code with $ref
// resolved and its schema inlined. It returns nil when the status is not
// declared.
func (o *Operation) Response(status string) (*Response, error) {
	r, ok := o.Spec.Responses[status]
	if !ok || r == nil {
		return nil, nil
	}
	base := o.File.Path
	if r.Ref != "" {
		var next Response
		file, err := o.File.loader.resolveInto(base, r.Ref, &next)
		if err != nil {
			return nil, err
		}
		r, base = &next, file
	}
	cp := *r
	if r.Schema != nil {
		schema, err := o.File.loader.ResolveSchema(base, r.Schema)
		if err != nil {
			return nil, err
		}
		cp.Schema = schema
	}
	return &cp, nil
}

// ResponseSchema returns the inlined schema of a status code's response, or
// nil when the response is absent or has no body.
func (o *Operation) ResponseSchema(status string) (map[string]any, error) {
	r, err := o.Response(status)
	if err != nil || r == nil {
		return nil, err
	}
	return r.Schema, nil
}

// StatusCodes returns the declared response status codes, sorted.
func (o *Operation) StatusCodes() []string {
	codes := make([]string, 0, len(o.Spec.Responses))
	for code := range o.Spec.Responses {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ExampleIDs returns the operation's example ids, sorted.
func (o *Operation) ExampleIDs() []string { return o.Spec.ExampleIDs() }

// Example loads the example with the given id.
func (o *Operation) Example(id string) (*Example, error) {
	ref, ok := o.Spec.Examples[id]
	if !ok {
		return nil, fmt.Errorf("operation %s: %w: %q", o.ID(), ErrExampleNotDeclared, id)
	}
	return o.File.loader.LoadExample(o.File.Path, id, ref.Ref)
}
