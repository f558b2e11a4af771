package handlers

import (
	"net/http"

	"github.com/pribylovaa/go-course-api/internal/http/httperr"
	"github.com/pribylovaa/go-course-api/internal/http/middleware"
	"github.com/pribylovaa/go-course-api/internal/service"
)

// API v2: самодостаточные подписанные токены; logout — через denylist.

type tokenResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// RegisterV2 — POST /v2/register.
// В отличие от v1, сразу выдаёт access-токен (регистрация = вход).
func (h *Handlers) RegisterV2(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, httperr.ErrBadRequest)
		return
	}

	user, err := h.svc.RegisterUser(r.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	token, ttl, err := h.svc.IssueAccessToken(r.Context(), user)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{
		Message:     "Register successful",
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(ttl.Seconds()),
	})
}

// LoginV2 — POST /v2/login.
func (h *Handlers) LoginV2(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, httperr.ErrBadRequest)
		return
	}

	user, err := h.svc.Authenticate(r.Context(), in.Email, in.Password)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	token, ttl, err := h.svc.IssueAccessToken(r.Context(), user)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		Message:     "Login successful",
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(ttl.Seconds()),
	})
}

// LogoutV2 — POST /v2/logout (за гейтом v2).
// Предъявленный токен попадает в denylist до своего естественного истечения.
func (h *Handlers) LogoutV2(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFrom(r.Context())
	if !ok {
		httperr.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	if err := h.svc.InvalidateAccessToken(r.Context(), token); err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: "Logout successful",
	})
}
