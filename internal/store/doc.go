// Package store keeps the in-memory calculation records the HTTP API and
// WebSocket hub read from. It provides a thread-safe store keyed by
// research request ID with background TTL eviction.
package store
