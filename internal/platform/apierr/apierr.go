package apierr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	sqlite "github.com/glebarez/go-sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Extended sqlite result codes; the driver enables them on every connection.
const (
	sqliteConstraintForeignKey = 787
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Invalid marks malformed or missing caller input.
func Invalid(code string, msg string) *Error {
	return New(http.StatusBadRequest, code, errors.New(msg))
}

// NotFound marks a referenced survey, team or response that does not exist.
func NotFound(code string, msg string) *Error {
	return New(http.StatusNotFound, code, errors.New(msg))
}

// Storage classifies a schema store failure. Errors that already carry an
// *Error pass through untouched.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	wrapped := fmt.Errorf("%s: %w", op, err)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return New(http.StatusNotFound, "not_found", wrapped)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return New(http.StatusServiceUnavailable, "storage_unavailable", wrapped)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return New(http.StatusConflict, "conflict", wrapped) // unique_violation
		case "23503":
			return New(http.StatusNotFound, "reference_not_found", wrapped) // foreign_key_violation
		}
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqliteConstraintUnique, sqliteConstraintPrimaryKey:
			return New(http.StatusConflict, "conflict", wrapped)
		case sqliteConstraintForeignKey:
			return New(http.StatusNotFound, "reference_not_found", wrapped)
		}
	}
	return New(http.StatusInternalServerError, "storage_error", wrapped)
}

// StatusOf returns the HTTP status carried by err, or fallback.
func StatusOf(err error, fallback int) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return fallback
}
