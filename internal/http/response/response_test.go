package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/survey-backend/internal/platform/apierr"
)

func TestRespondAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"not found", apierr.NotFound("survey_not_found", "survey not found"), http.StatusNotFound, "survey_not_found", "survey not found"},
		{"wrapped invalid", fmt.Errorf("ctx: %w", apierr.Invalid("bad", "nope")), http.StatusBadRequest, "bad", "nope"},
		{"storage error hides detail", apierr.Storage("op", errors.New("pq: secret detail")), http.StatusInternalServerError, "storage_error", "Internal Server Error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "fallback", "internal error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			RespondAPIError(c, tc.err, "fallback")

			if rec.Code != tc.wantStatus {
				t.Fatalf("status: got=%d want=%d", rec.Code, tc.wantStatus)
			}
			var env ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Error.Code != tc.wantCode || env.Error.Message != tc.wantMsg {
				t.Fatalf("unexpected envelope: %+v", env)
			}
		})
	}
}
