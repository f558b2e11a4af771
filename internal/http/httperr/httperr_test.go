package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-course-api/internal/service"
)

func TestToHTTP_Mapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"nil", nil, http.StatusInternalServerError, "internal"},
		{"bad_request", ErrBadRequest, http.StatusBadRequest, "bad_request"},
		{"invalid_credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "unauthenticated"},
		{"invalid_token", service.ErrInvalidToken, http.StatusUnauthorized, "unauthenticated"},
		{"token_expired", service.ErrTokenExpired, http.StatusUnauthorized, "unauthenticated"},
		{"token_revoked", service.ErrTokenRevoked, http.StatusUnauthorized, "unauthenticated"},
		{"course_not_found", service.ErrCourseNotFound, http.StatusNotFound, "not_found"},
		{"unknown", errors.New("db down"), http.StatusInternalServerError, "internal"},
		{"wrapped", fmt.Errorf("op: %w", service.ErrTokenRevoked), http.StatusUnauthorized, "unauthenticated"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			status, resp := ToHTTP(tc.err)
			require.Equal(t, tc.wantStatus, status)
			require.Equal(t, tc.wantCode, resp.Error.Code)
		})
	}
}

func TestToHTTP_ValidationErrorsCarryFields(t *testing.T) {
	t.Parallel()

	ve := service.ValidationErrors{
		"email":    "The email has already been taken.",
		"password": "The password must be at least 8 characters.",
	}

	status, resp := ToHTTP(fmt.Errorf("service.auth.RegisterUser: %w", ve))
	require.Equal(t, http.StatusUnprocessableEntity, status)
	require.Equal(t, "validation_failed", resp.Error.Code)
	require.Equal(t, "The email has already been taken.", resp.Error.Fields["email"])
	require.Len(t, resp.Error.Fields, 2)
}

// Внутренние ошибки не должны протекать наружу: текст причины остаётся
// на сервере, клиент видит generic "internal error".
func TestToHTTP_InternalDoesNotLeakCause(t *testing.T) {
	t.Parallel()

	_, resp := ToHTTP(errors.New("pq: connection refused host=10.0.0.5"))
	require.Equal(t, "internal error", resp.Error.Message)
	require.NotContains(t, resp.Error.Message, "10.0.0.5")
}

func TestWriteError_BodyAndRequestID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("X-Request-Id", "rid-123")
	rec := httptest.NewRecorder()

	WriteError(rec, req, service.ErrInvalidCredentials)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "unauthenticated", resp.Error.Code)
	require.Equal(t, "rid-123", resp.Error.RequestID)
}
