// Package testspec writes a small azure-rest-api-specs style tree for tests.
//
// The tree holds one Microsoft.Mock resource provider in two API versions, a
// shared common-types document referenced across files, and recorded
// x-ms-examples. Tests call Write to get a fresh copy under t.TempDir().
package testspec
