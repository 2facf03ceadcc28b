package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/teamhub/identity-service/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"duplicate username", domain.ErrDuplicateUsername, http.StatusBadRequest, "Error: Username is already taken."},
		{"duplicate email", domain.ErrDuplicateEmail, http.StatusBadRequest, "Error: Email is already in use."},
		{"not found", domain.ErrNotFound, http.StatusNotFound, "not found"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "not found"},
		{"expired token", domain.ErrTokenExpired, http.StatusUnauthorized, "unauthenticated"},
		{"bad signature", domain.ErrTokenBadSignature, http.StatusUnauthorized, "unauthenticated"},
		{"malformed token", domain.ErrTokenMalformed, http.StatusUnauthorized, "unauthenticated"},
		{"roles not provisioned", domain.ErrRoleNotFound, http.StatusInternalServerError, "server misconfigured: roles not provisioned"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/auth/signin", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			var body struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Error != tc.wantBody {
				t.Fatalf("expected %q, got %q", tc.wantBody, body.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts"), c)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}
