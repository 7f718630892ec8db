// Package example binds live requests to operation parameters and checks them
// against recorded x-ms-examples.
//
// GenExampleParameters extracts the value of every declared parameter from a
// request. ValidateRequestByExample compares those values with the values an
// example records, treating the example as a partial contract: parameters the
// example leaves out are not checked.
package example
