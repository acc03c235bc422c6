// Package api implements the HTTP front ends of the calculator service.
//
// New(...) returns an http.Handler that serves:
//
//	POST /calculate-chrono            — synchronous calculation; computes,
//	                                    delivers to the collector (delivery
//	                                    failure is non-fatal), responds with
//	                                    the result
//	POST /api/chrono/calculate        — asynchronous calculation; enqueues a
//	                                    job and responds 202 with a task ID
//	GET  /api/chrono/calculations     — live calculation records
//	GET  /api/chrono/calculations/{id}— single record; 404 if unknown or stale
//	GET  /health                      — service health, collector URL,
//	                                    truncated auth token
//	GET  /metrics                     — Prometheus scrape endpoint
//	GET  /                            — service banner
//
// Both calculation endpoints validate the shared auth token against the
// env-resolved secret (403 on mismatch) and treat missing or blank text as
// a skipped calculation. All responses are JSON. The estimation logic
// itself lives in internal/chronology; these handlers are thin callers.
package api
