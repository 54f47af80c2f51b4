package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/voyagedesk/crm-system/internal/core/domain"
)

func runErrorHandler(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewHTTPErrorHandler(zerolog.Nop())
	handler(err, c)

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not the error envelope: %v", err)
	}
	return rec.Code, body.Error
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"locked out", domain.ErrTooManyAttempts, http.StatusTooManyRequests},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"user missing", domain.ErrUserNotFound, http.StatusNotFound},
		{"lead missing", domain.ErrLeadNotFound, http.StatusNotFound},
		{"duplicate email", domain.ErrUserExists, http.StatusConflict},
		{"unknown permission", domain.ErrUnknownPermission, http.StatusUnprocessableEntity},
		{"bad lead status", domain.ErrInvalidLeadStatus, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		code, msg := runErrorHandler(t, tc.err)
		if code != tc.wantCode {
			t.Errorf("%s: code = %d, want %d", tc.name, code, tc.wantCode)
		}
		if msg == "" {
			t.Errorf("%s: empty error message", tc.name)
		}
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("repo context"), domain.ErrUserExists)
	code, _ := runErrorHandler(t, wrapped)
	if code != http.StatusConflict {
		t.Fatalf("wrapped conflict mapped to %d, want 409", code)
	}
}

func TestHTTPErrorHandler_EchoErrorPassthrough(t *testing.T) {
	code, msg := runErrorHandler(t, echo.NewHTTPError(http.StatusUnprocessableEntity, "name is required"))
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("code = %d, want 422", code)
	}
	if msg != "name is required" {
		t.Fatalf("message = %q", msg)
	}
}

func TestHTTPErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	code, msg := runErrorHandler(t, errors.New("mongo: connection reset by peer"))
	if code != http.StatusInternalServerError {
		t.Fatalf("code = %d, want 500", code)
	}
	if strings.Contains(msg, "mongo") {
		t.Fatalf("internal detail leaked to client: %q", msg)
	}
}
