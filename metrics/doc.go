// Package metrics exports Prometheus metrics for icon searches and the HTTP
// boundary.
package metrics
