// Package dispatch delivers finished calculation results to the downstream
// collector service.
//
// Deliver POSTs the fixed JSON payload to the collector's async-result
// endpoint with a bounded retry sequence: a configurable number of
// attempts separated by a fixed delay. Connection failures and non-2xx
// responses both count as failed attempts. After the last attempt the
// error wraps ErrRetriesExhausted so callers can tell terminal delivery
// failure apart from transient ones — it is never swallowed here.
//
// The HTTP client and the inter-attempt sleep are injectable so tests run
// without real network endpoints or wall-clock waits.
package dispatch
