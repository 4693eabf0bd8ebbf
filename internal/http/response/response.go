package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/survey-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAPIError uses the status and code carried by an *apierr.Error and
// falls back to 500 with fallbackCode otherwise. Internal failures are not
// echoed to the client.
func RespondAPIError(c *gin.Context, err error, fallbackCode string) {
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status == 0 {
		RespondError(c, http.StatusInternalServerError, fallbackCode, errors.New("internal error"))
		return
	}
	code := ae.Code
	if code == "" {
		code = fallbackCode
	}
	if ae.Status >= http.StatusInternalServerError {
		RespondError(c, ae.Status, code, errors.New(http.StatusText(ae.Status)))
		return
	}
	RespondError(c, ae.Status, code, ae)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
