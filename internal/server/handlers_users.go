package server

import (
	"net/http"
)

// handleListUsers returns the user directory for the admin view. Directory
// failures are reported as 502 and leave editing sessions untouched.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.userService.ListUsers(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"users": users})
}
