package matching

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// multiSegmentParams are placeholder names that ARM specs use for values
// spanning several path segments, such as an arbitrary resource scope.
var multiSegmentParams = map[string]bool{
	"scope":              true,
	"resourceuri":        true,
	"resourceid":         true,
	"parentresourcepath": true,
}

var placeholderRe = regexp.MustCompile(`\{([^{}]+)\}`)

// Template is a compiled Swagger path template.
type Template struct {
	raw    string
	path   string
	re     *regexp.Regexp
	params []string
	query  url.Values
	score  int
}

// CompileTemplate compiles a Swagger path template such as
// /subscriptions/{subscriptionId}/resourceGroups/{resourceGroupName}.
func CompileTemplate(pattern string) (*Template, error) {
	if pattern == "" || !strings.HasPrefix(pattern, "/") {
		return nil, fmt.Errorf("path template %q must start with /", pattern)
	}

	t := &Template{raw: pattern, path: pattern}
	if i := strings.IndexByte(pattern, '?'); i >= 0 {
		t.path = pattern[:i]
		q, err := url.ParseQuery(pattern[i+1:])
		if err != nil {
			return nil, fmt.Errorf("invalid query in path template %q: %w", pattern, err)
		}
		t.query = q
		t.score += ScoreQueryConstraint * len(q)
	}

	var expr strings.Builder
	expr.WriteString("(?i)^")
	for _, segment := range strings.Split(strings.Trim(t.path, "/"), "/") {
		if segment == "" {
			continue
		}
		expr.WriteString("/")

		matches := placeholderRe.FindAllStringSubmatchIndex(segment, -1)
		if len(matches) == 0 {
			expr.WriteString(regexp.QuoteMeta(segment))
			t.score += ScoreLiteralSegment
			continue
		}

		whole := len(matches) == 1 && matches[0][0] == 0 && matches[0][1] == len(segment)
		last := 0
		for _, m := range matches {
			expr.WriteString(regexp.QuoteMeta(segment[last:m[0]]))
			name := segment[m[2]:m[3]]
			t.params = append(t.params, name)
			if whole && multiSegmentParams[strings.ToLower(name)] {
				expr.WriteString("(.+)")
			} else {
				expr.WriteString("([^/]+)")
			}
			last = m[1]
		}
		expr.WriteString(regexp.QuoteMeta(segment[last:]))

		switch {
		case !whole:
			t.score += ScorePartialSegment
		case multiSegmentParams[strings.ToLower(t.params[len(t.params)-1])]:
			t.score += ScoreMultiSegment
		default:
			t.score += ScoreParamSegment
		}
	}
	expr.WriteString("/?$")

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("invalid path template %q: %w", pattern, err)
	}
	t.re = re
	return t, nil
}

// MustCompileTemplate is like CompileTemplate but panics on error.
func MustCompileTemplate(pattern string) *Template {
	t, err := CompileTemplate(pattern)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the template as written in the spec.
func (t *Template) String() string { return t.raw }

// Path returns the template without its x-ms-paths query suffix.
func (t *Template) Path() string { return t.path }

// Params returns placeholder names in order of appearance.
func (t *Template) Params() []string { return t.params }

// Score returns the template's specificity score.
func (t *Template) Score() int { return t.score }

// Match matches a live path, and optionally its query, against the template.
// Captured values are returned still percent-encoded.
func (t *Template) Match(path string, query url.Values) (map[string]string, bool) {
	m := t.re.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}
	for key, want := range t.query {
		got := lookupFold(query, key)
		if len(want) > 0 && !strings.EqualFold(got, want[0]) {
			return nil, false
		}
	}

	captures := make(map[string]string, len(t.params))
	for i, name := range t.params {
		captures[name] = m[i+1]
	}
	return captures, true
}

func lookupFold(query url.Values, key string) string {
	if v := query.Get(key); v != "" {
		return v
	}
	for k, v := range query {
		if strings.EqualFold(k, key) && len(v) > 0 {
			return v[0]
		}
	}
	return ""
}
