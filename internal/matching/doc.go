// Package matching matches live ARM request paths against Swagger path
// templates.
//
// Templates use the Swagger {name} placeholder syntax. Literal text matches
// case-insensitively, as ARM routing does. Templates taken from x-ms-paths may
// carry a query suffix (/path?action=start) whose pairs must be present on the
// live request.
//
// Every template carries a specificity score so that, when more than one
// template matches a path, callers can prefer the most literal one. Score
// constants are defined in scores.go.
package matching
