// Package cli provides the command-line interface for armmock.
//
// Commands:
//   - serve: index a spec tree and serve mocked ARM responses
//   - match: print the operation a request resolves to
//   - version: show the armmock version
//
// Every command reads the same configuration: defaults, then the file named
// by --config or ARMMOCK_CONFIG, then ARMMOCK_* variables, then flags.
package cli
