package swagger

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
)

// RefError reports a $ref that could not be followed.
type RefError struct {
	Ref  string
	Base string
	Err  error
}

func (e *RefError) Error() string {
	return fmt.Sprintf("resolving $ref %q from %s: %v", e.Ref, e.Base, e.Err)
}

func (e *RefError) Unwrap() error { return e.Err }

// splitRef splits a reference into its file part and JSON pointer.
func splitRef(ref string) (file, pointer string) {
	if i := strings.IndexByte(ref, '#'); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return ref, ""
}

// ResolveRef follows a $ref relative to the base file and returns the target
// value and the absolute path of the file it lives in.
func (l *Loader) ResolveRef(base, ref string) (any, string, error) {
	file, pointer := splitRef(ref)
	target := base
	if file != "" {
		if u, err := url.PathUnescape(file); err == nil {
			file = u
		}
		target = filepath.Clean(filepath.Join(filepath.Dir(base), filepath.FromSlash(file)))
	}

	doc, err := l.rawDocument(target)
	if err != nil {
		return nil, "", &RefError{Ref: ref, Base: base, Err: err}
	}
	value, err := lookupPointer(doc, pointer)
	if err != nil {
		return nil, "", &RefError{Ref: ref, Base: base, Err: err}
	}
	return value, target, nil
}

// lookupPointer evaluates an RFC 6901 JSON pointer against a decoded document.
func lookupPointer(doc any, pointer string) (any, error) {
	if pointer == "" || pointer == "/" {
		return doc, nil
	}
	if u, err := url.PathUnescape(pointer); err == nil {
		pointer = u
	}

	cur := doc
	for _, token := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		token = strings.NewReplacer("~1", "/", "~0", "~").Replace(token)
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[token]
			if !ok {
				return nil, fmt.Errorf("key %q not found", token)
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(token)
			if err != nil || i < 0 || i >= len(node) {
				return nil, fmt.Errorf("index %q out of range", token)
			}
			cur = node[i]
		default:
			return nil, fmt.Errorf("cannot descend into %T at %q", cur, token)
		}
	}
	return cur, nil
}

// ResolveSchema returns a copy of schema with every $ref inlined. Recursive
// definitions are cut at the point of recursion and replaced by an empty
// object schema. Returned values may be shared between callers and must not be
// modified.
func (l *Loader) ResolveSchema(base string, schema map[string]any) (map[string]any, error) {
	if schema == nil {
		return nil, nil
	}
	out, err := l.inline(base, schema, false, map[string]bool{})
	if err != nil {
		return nil, err
	}
	m, ok := out.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schema in %s resolved to %T", base, out)
	}
	return m, nil
}

// inline walks a schema tree. names is true when the keys of v are property
// names rather than schema keywords.
func (l *Loader) inline(base string, v any, names bool, stack map[string]bool) (any, error) {
	switch node := v.(type) {
	case map[string]any:
		if ref, ok := node["$ref"].(string); ok && !names {
			return l.inlineRef(base, ref, stack)
		}
		out := make(map[string]any, len(node))
		for k, child := range node {
			if !names && isDataKeyword(k) {
				out[k] = child
				continue
			}
			resolved, err := l.inline(base, child, !names && isNamesKeyword(k), stack)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			resolved, err := l.inline(base, child, false, stack)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return v, nil
	}
}

func (l *Loader) inlineRef(base, ref string, stack map[string]bool) (any, error) {
	target, file, err := l.ResolveRef(base, ref)
	if err != nil {
		return nil, err
	}
	_, pointer := splitRef(ref)
	key := file + "#" + pointer
	if stack[key] {
		return map[string]any{"type": "object"}, nil
	}

	l.mu.Lock()
	cached, ok := l.schemas[key]
	l.mu.Unlock()
	if ok {
		return cached, nil
	}

	stack[key] = true
	resolved, err := l.inline(file, target, false, stack)
	delete(stack, key)
	if err != nil {
		return nil, err
	}

	// Only memoize subtrees resolved from the top; a subtree cut short by an
	// enclosing cycle depends on the current stack.
	if len(stack) == 0 {
		l.mu.Lock()
		l.schemas[key] = resolved
		l.mu.Unlock()
	}
	return resolved, nil
}

// isDataKeyword reports keywords whose values are instance data, not schemas.
func isDataKeyword(k string) bool {
	switch k {
	case "example", "examples", "x-ms-examples", "enum", "default", "x-ms-enum":
		return true
	}
	return false
}

// isNamesKeyword reports keywords whose values are maps from names to schemas.
func isNamesKeyword(k string) bool {
	switch k {
	case "properties", "definitions", "patternProperties":
		return true
	}
	return false
}

// resolveInto follows ref and decodes the target into out.
func (l *Loader) resolveInto(base, ref string, out any) (string, error) {
	target, file, err := l.ResolveRef(base, ref)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(target)
	if err != nil {
		return "", err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return "", &RefError{Ref: ref, Base: base, Err: err}
	}
	return file, nil
}
