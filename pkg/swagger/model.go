package swagger

import "sort"

// Version is the only Swagger version the loader accepts.
const Version = "2.0"

// Document is an ARM Swagger 2.0 document.
type Document struct {
	Swagger     string                `json:"swagger"`
	Info        Info                  `json:"info"`
	Host        string                `json:"host,omitempty"`
	BasePath    string                `json:"basePath,omitempty"`
	Schemes     []string              `json:"schemes,omitempty"`
	Consumes    []string              `json:"consumes,omitempty"`
	Produces    []string              `json:"produces,omitempty"`
	Paths       map[string]*PathItem  `json:"paths"`
	XMsPaths    map[string]*PathItem  `json:"x-ms-paths,omitempty"`
	Definitions map[string]any        `json:"definitions,omitempty"`
	Parameters  map[string]*Parameter `json:"parameters,omitempty"`
	Responses   map[string]*Response  `json:"responses,omitempty"`
}

// Info contains document metadata. Version is the API version.
type Info struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

// PathItem holds the operations declared on one path template.
type PathItem struct {
	Get        *OperationObject `json:"get,omitempty"`
	Put        *OperationObject `json:"put,omitempty"`
	Post       *OperationObject `json:"post,omitempty"`
	Delete     *OperationObject `json:"delete,omitempty"`
	Patch      *OperationObject `json:"patch,omitempty"`
	Head       *OperationObject `json:"head,omitempty"`
	Options    *OperationObject `json:"options,omitempty"`
	Parameters []*Parameter     `json:"parameters,omitempty"`
}

// Methods returns the declared operations keyed by upper-case HTTP method.
func (p *PathItem) Methods() map[string]*OperationObject {
	all := map[string]*OperationObject{
		"GET":     p.Get,
		"PUT":     p.Put,
		"POST":    p.Post,
		"DELETE":  p.Delete,
		"PATCH":   p.Patch,
		"HEAD":    p.Head,
		"OPTIONS": p.Options,
	}
	for method, op := range all {
		if op == nil {
			delete(all, method)
		}
	}
	return all
}

// OperationObject is a Swagger operation as written in the document.
type OperationObject struct {
	OperationID        string                `json:"operationId,omitempty"`
	Summary            string                `json:"summary,omitempty"`
	Description        string                `json:"description,omitempty"`
	Tags               []string              `json:"tags,omitempty"`
	Parameters         []*Parameter          `json:"parameters,omitempty"`
	Responses          map[string]*Response  `json:"responses"`
	LongRunning        bool                  `json:"x-ms-long-running-operation,omitempty"`
	LongRunningOptions map[string]any        `json:"x-ms-long-running-operation-options,omitempty"`
	Pageable           map[string]any        `json:"x-ms-pageable,omitempty"`
	Examples           map[string]ExampleRef `json:"x-ms-examples,omitempty"`
}

// ExampleIDs returns the x-ms-examples ids in sorted order.
func (o *OperationObject) ExampleIDs() []string {
	ids := make([]string, 0, len(o.Examples))
	for id := range o.Examples {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ExampleRef points at an example file relative to the document.
type ExampleRef struct {
	Ref string `json:"$ref"`
}

// Parameter locations.
const (
	InPath     = "path"
	InQuery    = "query"
	InHeader   = "header"
	InBody     = "body"
	InFormData = "formData"
)

// Parameter is a Swagger parameter. Ref is set for unresolved references.
type Parameter struct {
	Ref              string         `json:"$ref,omitempty"`
	Name             string         `json:"name,omitempty"`
	In               string         `json:"in,omitempty"`
	Description      string         `json:"description,omitempty"`
	Required         bool           `json:"required,omitempty"`
	Type             string         `json:"type,omitempty"`
	Format           string         `json:"format,omitempty"`
	Items            map[string]any `json:"items,omitempty"`
	CollectionFormat string         `json:"collectionFormat,omitempty"`
	Enum             []any          `json:"enum,omitempty"`
	Default          any            `json:"default,omitempty"`
	Pattern          string         `json:"pattern,omitempty"`
	Schema           map[string]any `json:"schema,omitempty"`
	Location         string         `json:"x-ms-parameter-location,omitempty"`
	SkipURLEncoding  bool           `json:"x-ms-skip-url-encoding,omitempty"`
}

// Response is a Swagger response. Ref is set for unresolved references.
type Response struct {
	Ref         string                    `json:"$ref,omitempty"`
	Description string                    `json:"description,omitempty"`
	Schema      map[string]any            `json:"schema,omitempty"`
	Headers     map[string]map[string]any `json:"headers,omitempty"`
}
