// Package config provides the armmock server configuration.
//
// Configuration is assembled in layers, later layers winning:
//   - Default(): built-in defaults
//   - a YAML or JSON file selected with --config or ARMMOCK_CONFIG
//   - ARMMOCK_* environment variables
//   - command line flags, applied by the CLI
//
// A minimal file:
//
//	server:
//	  port: 8443
//	specs:
//	  root: ./azure-rest-api-specs/specification
//	cascadeEnabled: true
//	profiles:
//	  default:
//	    stateful: true
//	  broken:
//	    alwaysError: 503
//
// Validate reports every invalid field at once.
package config
