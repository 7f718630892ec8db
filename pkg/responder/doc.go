// Package responder synthesizes ARM responses for matched operations.
//
// A response is taken from the operation's recorded examples when one fits
// the request, or mocked from the declared response schema otherwise. The
// stateful writer then reconciles it with the resource pool: existence is
// enforced per profile, paging and provisioning are collapsed to their
// terminal state, and the result is written to the outbound response.
package responder
