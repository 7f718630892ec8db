// Package coordinator turns one inbound ARM request into one outbound
// response.
//
// A request is matched to a spec operation through the spec index, retrying
// without the API version when the declared one has no match. Matched
// long-running mutations get a polling URL from the lro resolver. The
// responder then synthesizes the payload and reconciles it with the
// simulated resource pool. URLs outside every spec, such as subscriptions,
// resource groups, locations and tenants, are served from a built-in table.
package coordinator
