package example

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/getmockd/armmock/pkg/arm"
	"github.com/getmockd/armmock/pkg/exchange"
	"github.com/getmockd/armmock/pkg/swagger"
)

// ParameterType is where a parameter lives in the request.
type ParameterType string

// Parameter locations.
const (
	Path   ParameterType = swagger.InPath
	Query  ParameterType = swagger.InQuery
	Header ParameterType = swagger.InHeader
	Body   ParameterType = swagger.InBody
)

// Parameters maps parameter names to live values.
type Parameters map[string]any

// GenExampleParameters extracts the declared parameters of op from req.
// Path values are URI-decoded, query and header values are copied only when
// present, and scalar values are coerced to their declared type.
func GenExampleParameters(op *swagger.Operation, req *exchange.Request) (Parameters, map[string]ParameterType, error) {
	declared, err := op.Parameters()
	if err != nil {
		return nil, nil, err
	}

	params := make(Parameters, len(declared))
	types := make(map[string]ParameterType, len(declared))
	var pathValues map[string]string

	for _, p := range declared {
		switch p.In {
		case swagger.InPath:
			if pathValues == nil {
				pathValues = bindPath(op, req)
			}
			raw, ok := pathValues[p.Name]
			if !ok {
				continue
			}
			if decoded, err := url.PathUnescape(raw); err == nil {
				raw = decoded
			}
			params[p.Name] = resolveValue(p, []string{raw})
			types[p.Name] = Path
		case swagger.InBody:
			params[p.Name] = req.Body
			types[p.Name] = Body
		case swagger.InQuery:
			if vals, ok := req.QueryValue(p.Name); ok {
				params[p.Name] = resolveValue(p, vals)
				types[p.Name] = Query
			}
		case swagger.InHeader:
			if v, ok := req.HeaderValue(p.Name); ok {
				params[p.Name] = resolveValue(p, []string{v})
				types[p.Name] = Header
			}
		}
	}
	return params, types, nil
}

// bindPath captures template placeholders from the live path. When the
// template does not match as a whole, placeholders are aligned with the live
// segments by position.
func bindPath(op *swagger.Operation, req *exchange.Request) map[string]string {
	path := arm.PathOf(req.URL)
	if captured, ok := op.Template.Match(path, req.Query); ok {
		return captured
	}

	captured := make(map[string]string)
	tpl := arm.Segments(op.Template.Path())
	live := arm.Segments(path)
	for i, segment := range tpl {
		if i >= len(live) {
			break
		}
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			captured[segment[1:len(segment)-1]] = live[i]
		}
	}
	return captured
}

// resolveValue coerces raw string values to the parameter's declared type,
// keeping the string when it does not parse.
func resolveValue(p *swagger.Parameter, vals []string) any {
	if len(vals) == 0 {
		return nil
	}
	if p.Type == "array" {
		items := splitCollection(vals, p.CollectionFormat)
		itemType, _ := p.Items["type"].(string)
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = coerce(itemType, item)
		}
		return out
	}
	return coerce(p.Type, vals[0])
}

func coerce(typ, raw string) any {
	switch typ {
	case "integer":
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return float64(n)
		}
	case "number":
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case "boolean":
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	}
	return raw
}

func splitCollection(vals []string, format string) []string {
	if format == "multi" {
		return vals
	}
	sep := ","
	switch format {
	case "ssv":
		sep = " "
	case "tsv":
		sep = "\t"
	case "pipes":
		sep = "|"
	}
	var out []string
	for _, v := range vals {
		out = append(out, strings.Split(v, sep)...)
	}
	return out
}
