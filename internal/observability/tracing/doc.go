// Package tracing provides OpenTelemetry tracing integration.
//
// Setup installs an SDK tracer provider with a parent-based ratio sampler.
// No exporter is attached by default: spans exist so that trace ids reach
// the logs and response headers, and so that tests can attach an in-memory
// exporter.
//
//	tp, err := tracing.Setup(tracing.Config{ServiceName: "williampedia-api", SampleRatio: 1})
//	defer tp.Shutdown(context.Background())
//
//	ctx, span := tracing.GetTracer().Start(ctx, "store.get_by_slug")
//	defer span.End()
package tracing
