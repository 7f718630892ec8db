// Package swagger loads ARM Swagger 2.0 documents from an
// azure-rest-api-specs style checkout.
//
// Documents are decoded into a typed model for the parts the mock server
// routes on (paths, x-ms-paths, operations, parameters, responses) while
// schemas are kept in their decoded JSON form so that cross-file $ref chains
// can be inlined lazily. Examples referenced through x-ms-examples are loaded
// on demand and cached by path.
package swagger
