// Package specindex indexes the operations of a Swagger spec tree and matches
// live ARM requests against them.
//
// An Index goes through an explicit lifecycle: it is created NotInitialized,
// and Initialize moves it to Initialized or InitializationFailed. Operations
// are registered under the provider namespace of their path and the API
// version of their document. A request is matched against the operations of
// its provider and API version, or of every version when the version is
// unknown, and candidates are ordered by template specificity.
package specindex
