// Package metrics provides the Prometheus collectors of the mock server.
//
// Collectors are registered on a caller-supplied registry, never on the
// global default, so tests and embedded servers can run side by side.
//
// # Collectors
//
//   - armmock_requests_total: Counter of served requests (labels: method, route, status)
//   - armmock_request_duration_seconds: Histogram of request latency (labels: method, route)
//   - armmock_searches_total: Counter of operation searches (labels: outcome)
//   - armmock_lro_resolutions_total: Counter of polling URL lookups (labels: outcome)
//   - armmock_resources: Gauge of live simulated resources
//   - armmock_uptime_seconds: Gauge of process uptime
//
// The route label is "arm" for mock traffic and "admin" for the admin API;
// raw ARM paths are never used as label values.
//
// # Usage
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(reg)
//	m.ObserveRequest(http.MethodGet, metrics.RouteARM, 200, elapsed)
//	http.Handle("/metrics", metrics.Handler(reg))
package metrics
