package server

import (
	"net/http"
)

type suggestRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type suggestResponse struct {
	Suggestion string `json:"suggestion"`
	Available  bool   `json:"available"`
}

// handleSuggest returns a writing suggestion. Failures and a missing API key
// are reported inside the suggestion text, never as an HTTP error.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	jsonResponse(w, http.StatusOK, suggestResponse{
		Suggestion: s.suggester.Suggest(r.Context(), req.Prompt),
		Available:  s.suggester.Available(),
	})
}
