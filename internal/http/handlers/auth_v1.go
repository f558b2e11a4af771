package handlers

import (
	"net/http"

	"github.com/pribylovaa/go-course-api/internal/http/httperr"
	"github.com/pribylovaa/go-course-api/internal/http/middleware"
	"github.com/pribylovaa/go-course-api/internal/models"
	"github.com/pribylovaa/go-course-api/internal/service"
)

// API v1: сессии на opaque-токенах, хранимых сервером.

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

type loginResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
	Token   string       `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Register — POST /register.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusCreated, registerResponse{
		Message: "User registered successfully",
		User:    user,
	})
}

// Login — POST /login.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
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

	token, err := h.svc.IssueSessionToken(r.Context(), user)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Message: "Login successful",
		User:    user,
		Token:   token,
	})
}

// Logout — POST /logout (за гейтом v1).
// Отзывает все сессии пользователя: выход инвалидирует каждое устройство.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		httperr.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	if err := h.svc.RevokeSessionTokens(r.Context(), user.ID); err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: "Logged out successfully",
	})
}
