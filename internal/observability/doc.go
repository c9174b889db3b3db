// Package observability groups the logging, metrics and tracing subpackages
// shared by the API server, the worker and the import command.
//
// Subpackages:
//   - logging: slog construction and request-scoped loggers
//   - metrics: Prometheus collectors for the article store and business events
//   - tracing: OpenTelemetry tracer provider and HTTP middleware
package observability
