package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/YoungCoderX/Recipe-Rack/internal/application/auth"
	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/http/middleware"
	"github.com/YoungCoderX/Recipe-Rack/pkg/errors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// AuthAPIHandlers handles authentication API requests
type AuthAPIHandlers struct {
	authService *auth.Service
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewAuthAPIHandlers creates a new authentication API handlers instance
func NewAuthAPIHandlers(authService *auth.Service, logger *zap.Logger) *AuthAPIHandlers {
	return &AuthAPIHandlers{
		authService: authService,
		validate:    validator.New(),
		logger:      logger,
	}
}

// Bootstrap handles POST /api/v1/auth/session. Called once at client
// startup: a valid bearer token resumes that session, anything else gets
// a fresh anonymous one.
func (h *AuthAPIHandlers) Bootstrap(w http.ResponseWriter, r *http.Request) {
	session, err := h.authService.Bootstrap(r.Context(), middleware.BearerToken(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	status := http.StatusCreated
	if session.Resumed {
		status = http.StatusOK
	}

	writeJSON(w, h.logger, status, APIResponse{
		Success: true,
		Data:    session,
	})
}

// Register handles POST /api/v1/auth/register
func (h *AuthAPIHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var cmd auth.RegisterCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, r, h.logger, errors.NewBadRequestError("Invalid JSON payload"))
		return
	}

	if err := h.validate.Struct(cmd); err != nil {
		writeError(w, r, h.logger, errors.NewValidationError(err.Error()))
		return
	}

	session, err := h.authService.Register(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, APIResponse{
		Success: true,
		Data:    session,
		Message: "User registered successfully",
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthAPIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var cmd auth.LoginCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, r, h.logger, errors.NewBadRequestError("Invalid JSON payload"))
		return
	}

	if err := h.validate.Struct(cmd); err != nil {
		writeError(w, r, h.logger, errors.NewValidationError(err.Error()))
		return
	}

	session, err := h.authService.Login(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    session,
	})
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthAPIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	if token == "" {
		writeError(w, r, h.logger, errors.NewUnauthorizedError(""))
		return
	}

	if err := h.authService.Logout(r.Context(), token); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Message: "Logged out",
	})
}
