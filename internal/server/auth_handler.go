package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/jonathan/resume-editor/internal/server/middleware"
	"github.com/jonathan/resume-editor/internal/session"
	"github.com/jonathan/resume-editor/internal/types"
)

// AuthHandler handles login and logout. A login opens an editing session; a
// logout tears it down.
type AuthHandler struct {
	userService *UserService
	jwtService  *JWTService
	sessions    *session.Store
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, jwtService *JWTService, sessions *session.Store, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		sessions:    sessions,
		validator:   validator.New(),
		logger:      logger,
	}
}

// Login handles user login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		status := HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error().Err(err).Msg("login failed")
		}
		errorResponse(w, status, err.Error())
		return
	}

	sess := h.sessions.Create(*user)
	token, err := h.jwtService.GenerateToken(sess.ID, *user)
	if err != nil {
		h.sessions.End(sess.ID)
		errorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	observability.ActiveSessions.Set(float64(h.sessions.Len()))

	h.logger.Info().Str("email", user.Email).Str("session", sess.ID).Msg("session started")
	jsonResponse(w, http.StatusOK, types.LoginResponse{User: user, Token: token})
}

// Logout ends the caller's session. Its token stops working immediately.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	h.sessions.End(principal.GetSessionID())
	observability.ActiveSessions.Set(float64(h.sessions.Len()))

	h.logger.Info().Str("session", principal.GetSessionID()).Msg("session ended")
	w.WriteHeader(http.StatusNoContent)
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			// Return first validation error for simplicity
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}
