package testspec

import "testing"

// ChildPath is a nested resource of Microsoft.Child, which only declares
// APIVersionChild. The generic Microsoft.Resources template in the same tree
// also matches it at APIVersionGeneric.
const (
	APIVersionChild   = "2020-01-01"
	APIVersionGeneric = "2021-04-01"
	ChildPath         = "/subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.Child/things/t1/children/c1"
)

const childSpec = `{
  "swagger": "2.0",
  "info": {"title": "ChildClient", "version": "2020-01-01"},
  "paths": {
    "/subscriptions/{subscriptionId}/resourceGroups/{resourceGroupName}/providers/Microsoft.Child/things/{thingName}/children/{childName}": {
      "get": {
        "operationId": "Children_Get",
        "parameters": [{"name": "api-version", "in": "query", "required": true, "type": "string"}],
        "responses": {"200": {"description": "OK", "schema": {"type": "object", "properties": {"name": {"type": "string"}}}}}
      }
    }
  }
}`

const resourcesSpec = `{
  "swagger": "2.0",
  "info": {"title": "ResourceManagementClient", "version": "2021-04-01"},
  "paths": {
    "/subscriptions/{subscriptionId}/resourcegroups/{resourceGroupName}/providers/{resourceProviderNamespace}/{parentResourcePath}/{resourceType}/{resourceName}": {
      "get": {
        "operationId": "Resources_Get",
        "parameters": [{"name": "api-version", "in": "query", "required": true, "type": "string"}],
        "responses": {"200": {"description": "OK", "schema": {"type": "object", "properties": {"id": {"type": "string"}}}}}
      }
    }
  }
}`

var genericFiles = map[string]string{
	"specification/child/resource-manager/Microsoft.Child/stable/2020-01-01/child.json":             childSpec,
	"specification/resources/resource-manager/Microsoft.Resources/stable/2021-04-01/resources.json": resourcesSpec,
}

// WriteGeneric creates a tree holding Microsoft.Child next to a generic
// placeholder-namespace template and returns its root.
func WriteGeneric(t testing.TB) string {
	t.Helper()
	return writeFiles(t, genericFiles)
}
