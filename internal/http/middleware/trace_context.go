package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/survey-backend/internal/platform/ctxutil"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerRequestID = "X-Request-Id"

	maxCorrelationIDLen = 128
)

// AttachTraceContext stamps every request with a request id and a trace id.
// A live otel span decides the trace id; caller-supplied ids are accepted
// only when they are short and printable. The active span is tagged with
// the request id and, on survey routes, the survey id.
func AttachTraceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span := trace.SpanFromContext(ctx)

		reqID := correlationID(c.GetHeader(headerRequestID))
		if reqID == "" {
			reqID = uuid.New().String()
		}

		var traceID string
		if sc := span.SpanContext(); sc.HasTraceID() {
			traceID = sc.TraceID().String()
		} else if traceID = correlationID(c.GetHeader(headerTraceID)); traceID == "" {
			traceID = uuid.New().String()
		}

		if span.IsRecording() {
			attrs := []attribute.KeyValue{attribute.String("request.id", reqID)}
			if surveyID := routeSurveyID(c); surveyID != "" {
				attrs = append(attrs, attribute.String("survey.id", surveyID))
			}
			span.SetAttributes(attrs...)
		}

		c.Request = c.Request.WithContext(ctxutil.WithTraceData(ctx, &ctxutil.TraceData{
			TraceID:   traceID,
			RequestID: reqID,
		}))
		c.Set("trace_id", traceID)
		c.Set("request_id", reqID)
		c.Writer.Header().Set(headerTraceID, traceID)
		c.Writer.Header().Set(headerRequestID, reqID)
		c.Next()
	}
}

// correlationID returns raw trimmed, or "" when it is too long or carries
// characters outside [A-Za-z0-9._:-].
func correlationID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxCorrelationIDLen {
		return ""
	}
	for i := 0; i < len(raw); i++ {
		b := raw[i]
		switch {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		case b == '-', b == '_', b == '.', b == ':':
		default:
			return ""
		}
	}
	return raw
}

// routeSurveyID reads the survey id path parameter of survey and response routes.
func routeSurveyID(c *gin.Context) string {
	raw := c.Param("surveyId")
	if raw == "" && strings.HasPrefix(c.FullPath(), "/api/surveys/:id") {
		raw = c.Param("id")
	}
	if _, err := uuid.Parse(raw); err != nil {
		return ""
	}
	return raw
}
