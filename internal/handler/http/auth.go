// Package http registers the seller console's HTTP surface.
package http

import (
	"log/slog"
	"net/http"

	"github.com/bazaarly/sellerconsole/internal/auth"
	"github.com/bazaarly/sellerconsole/internal/session"
	"github.com/bazaarly/sellerconsole/pkg/apperr"
	"github.com/bazaarly/sellerconsole/pkg/httputil"
	"github.com/bazaarly/sellerconsole/pkg/middleware"
	"github.com/bazaarly/sellerconsole/pkg/validator"
)

// AuthHandler handles HTTP requests for auth endpoints.
type AuthHandler struct {
	service  *auth.Service
	sessions *session.Manager
	logger   *slog.Logger
}

// NewAuthHandler creates an auth HTTP handler.
func NewAuthHandler(svc *auth.Service, sessions *session.Manager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: svc, sessions: sessions, logger: logger}
}

// SignupRequest is the JSON request body for seller registration.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	ShopName string `json:"shop_name" validate:"required,min=1,max=120"`
}

// LoginRequest is the JSON request body for seller login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	pair, err := h.service.Signup(req.Name, req.Email, req.Password, req.ShopName)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: pair})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	pair, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pair})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sellerID := middleware.SellerIDFromContext(r.Context())

	seller, err := h.service.GetByID(sellerID)
	if err != nil {
		httputil.WriteError(w, r, apperr.Unauthorized("unknown seller"), h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: seller})
}

// Logout handles POST /api/v1/auth/logout. Dropping the session discards
// the working draft.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sellerID := middleware.SellerIDFromContext(r.Context())
	h.sessions.Drop(sellerID)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "logged_out"}})
}
