// Package verifier serves fingerprint verification over HTTP.
//
// HTTP API
//
//	POST /verify {"public_key": "<PEM>", "fingerprint": "<text>"}
//	    200 {"valid": true|false}. The reason for a rejection is logged and
//	    counted, never returned. 400 for bad JSON or an unusable public
//	    key, 429 when the client is over its rate limit.
//
//	GET /healthz
//	    200 "ok".
//
//	GET /metrics
//	    Prometheus exposition of the verifier counters.
//
// Behaviour
//
//   - The server holds no state besides rate limiter buckets and counters.
//   - Clients are keyed by remote host for rate limiting.
//   - An access log records method, path, remote, status, bytes and duration.
package verifier
