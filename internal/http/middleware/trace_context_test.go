package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/yungbote/survey-backend/internal/platform/ctxutil"
	"github.com/yungbote/survey-backend/internal/platform/logger"
)

func TestAttachTraceContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen *ctxutil.TraceData
	r := gin.New()
	r.Use(AttachTraceContext(), RequestLogger(logger.NewNop()))
	r.GET("/ping", func(c *gin.Context) {
		seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusOK)
	})

	t.Run("propagates caller ids", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-Id", "req-1")
		req.Header.Set("X-Trace-Id", "trace-1")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if seen == nil || seen.RequestID != "req-1" || seen.TraceID != "trace-1" {
			t.Fatalf("unexpected trace data: %+v", seen)
		}
		if rec.Header().Get("X-Request-Id") != "req-1" {
			t.Fatalf("expected request id echoed, got %q", rec.Header().Get("X-Request-Id"))
		}
	})

	t.Run("generates ids", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

		if seen == nil || seen.RequestID == "" || seen.TraceID == "" {
			t.Fatalf("expected generated ids, got %+v", seen)
		}
		if rec.Header().Get("X-Trace-Id") != seen.TraceID {
			t.Fatalf("expected trace id header %q, got %q", seen.TraceID, rec.Header().Get("X-Trace-Id"))
		}
	})
}

func TestAttachTraceContextReplacesUnsafeIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen *ctxutil.TraceData
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/ping", func(c *gin.Context) {
		seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusOK)
	})

	for _, bad := range []string{"has space", "new\nline", "<script>", strings.Repeat("a", maxCorrelationIDLen+1)} {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-Id", bad)
		req.Header.Set("X-Trace-Id", bad)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if seen == nil || seen.RequestID == bad || seen.TraceID == bad {
			t.Fatalf("%q: expected replacement ids, got %+v", bad, seen)
		}
		if _, err := uuid.Parse(rec.Header().Get("X-Request-Id")); err != nil {
			t.Fatalf("%q: expected generated request id, got %q", bad, rec.Header().Get("X-Request-Id"))
		}
	}
}

func TestAttachTraceContextTagsActiveSpan(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	r := gin.New()
	r.Use(otelgin.Middleware("survey-test", otelgin.WithTracerProvider(tp)), AttachTraceContext())
	r.GET("/api/surveys/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	surveyID := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/surveys/"+surveyID, nil)
	req.Header.Set("X-Request-Id", "req-42")
	req.Header.Set("X-Trace-Id", "caller-trace")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected one server span, got %d", len(spans))
	}
	span := spans[0]
	if got := rec.Header().Get("X-Trace-Id"); got != span.SpanContext().TraceID().String() {
		t.Fatalf("expected span trace id in header, got %q", got)
	}
	attrs := map[attribute.Key]string{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value.Emit()
	}
	if attrs["request.id"] != "req-42" || attrs["survey.id"] != surveyID {
		t.Fatalf("span not tagged: %v", attrs)
	}
}
