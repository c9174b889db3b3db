package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func installExporter(t *testing.T) (*tracetest.InMemoryExporter, *sdktrace.TracerProvider) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(sdktrace.NewTracerProvider()) })
	return exporter, tp
}

func TestMiddleware_CreatesSpan(t *testing.T) {
	exporter, tp := installExporter(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/article/ada-lovelace", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	span := spans[0]
	if span.Name != "GET /api/article/:slug" {
		t.Errorf("expected normalized span name, got '%s'", span.Name)
	}

	found := map[string]bool{}
	for _, attr := range span.Attributes {
		switch attr.Key {
		case "http.method":
			found["method"] = attr.Value.AsString() == "GET"
		case "http.path":
			found["path"] = attr.Value.AsString() == "/api/article/ada-lovelace"
		case "http.status_code":
			found["status"] = attr.Value.AsInt64() == 200
		}
	}
	for _, k := range []string{"method", "path", "status"} {
		if !found[k] {
			t.Errorf("attribute %s missing or wrong", k)
		}
	}

	if len(rr.Header().Get("X-Trace-Id")) != 32 {
		t.Errorf("expected 32 char X-Trace-Id, got %q", rr.Header().Get("X-Trace-Id"))
	}
}

func TestMiddleware_PropagatesTraceContext(t *testing.T) {
	exporter, tp := installExporter(t)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator()) })

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/api/history", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if got := spans[0].SpanContext.TraceID().String(); got != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("expected propagated trace ID, got %s", got)
	}
}

func TestMiddleware_ErrorAttributeOnlyFor5xx(t *testing.T) {
	tests := []struct {
		status    int
		wantError bool
	}{
		{status: http.StatusInternalServerError, wantError: true},
		{status: http.StatusNotFound, wantError: false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			exporter, tp := installExporter(t)

			handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/random-article", nil))
			_ = tp.ForceFlush(context.Background())

			spans := exporter.GetSpans()
			if len(spans) != 1 {
				t.Fatalf("expected 1 span, got %d", len(spans))
			}
			gotError := false
			for _, attr := range spans[0].Attributes {
				if attr.Key == "error" && attr.Value.AsBool() {
					gotError = true
				}
			}
			if gotError != tt.wantError {
				t.Errorf("error attribute = %v, want %v", gotError, tt.wantError)
			}
		})
	}
}

func TestMiddleware_UnknownPathUsesOtherRoute(t *testing.T) {
	exporter, tp := installExporter(t)

	handler := Middleware(http.NotFoundHandler())
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/wp-login.php", nil))
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != "GET other" {
		t.Errorf("expected span name 'GET other', got %q", spans[0].Name)
	}
	for _, attr := range spans[0].Attributes {
		if attr.Key == "http.route" && attr.Value.AsString() != "other" {
			t.Errorf("http.route = %q", attr.Value.AsString())
		}
	}
}
