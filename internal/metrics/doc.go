// Package metrics defines the Prometheus collectors for the calculator
// service and exposes an HTTP handler for scraping. Collectors live in a
// private registry so tests can build isolated instances.
package metrics
