package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-editor/internal/editing"
	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/jonathan/resume-editor/internal/schemas"
	"github.com/jonathan/resume-editor/internal/server/middleware"
	"github.com/jonathan/resume-editor/internal/session"
	"github.com/jonathan/resume-editor/internal/types"
)

// maxDocumentBytes bounds request bodies carrying documents or content.
const maxDocumentBytes = 1 << 20

var validate = validator.New()

// valueRequest sets a single text field.
type valueRequest struct {
	Value string `json:"value"`
}

type addSectionRequest struct {
	Type types.SectionType `json:"type" validate:"required"`
}

type moveRequest struct {
	Direction editing.Direction `json:"direction" validate:"required,oneof=up down"`
}

type titleRequest struct {
	Title string `json:"title"`
}

type skillRequest struct {
	Category string `json:"category" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

type styleRequest struct {
	Template types.Template     `json:"template" validate:"required,oneof=classic corporate creative executive technical"`
	Palette  types.ColorPalette `json:"palette" validate:"required,oneof=blue green black purple"`
}

// currentSession resolves the caller's editing session. It writes the error
// response itself and returns nil when there is none.
func (s *Server) currentSession(w http.ResponseWriter, r *http.Request) *session.Session {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return nil
	}
	sess, err := s.sessions.Get(principal.GetSessionID())
	if err != nil {
		e := &ErrSessionNotFound{SessionID: principal.GetSessionID()}
		errorResponse(w, HTTPStatus(e), e.Error())
		return nil
	}
	return sess
}

// decodeRequest reads a JSON body into dst and validates it.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDocumentBytes)).Decode(dst); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return false
	}
	return true
}

// mutate applies m to the caller's session and answers with the new state.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, op string, m editing.Mutation) {
	sess := s.currentSession(w, r)
	if sess == nil {
		return
	}
	s.applyMutation(w, sess, op, m)
}

func (s *Server) applyMutation(w http.ResponseWriter, sess *session.Session, op string, m editing.Mutation) {
	changed, err := sess.Apply(m)
	if err != nil {
		observability.MutationsTotal.WithLabelValues(op, observability.OutcomeRejected).Inc()
		s.logger.Debug().Err(err).Str("operation", op).Str("session", sess.ID).Msg("mutation rejected")
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	outcome := observability.OutcomeNoop
	if changed {
		outcome = observability.OutcomeApplied
	}
	observability.MutationsTotal.WithLabelValues(op, outcome).Inc()
	jsonResponse(w, http.StatusOK, sess.State())
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSession(w, r)
	if sess == nil {
		return
	}
	jsonResponse(w, http.StatusOK, sess.State())
}

// handleReplaceDocument imports a complete document as one history entry.
func (s *Server) handleReplaceDocument(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSession(w, r)
	if sess == nil {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil || !json.Valid(body) {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := schemas.ValidateDocument(body); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			jsonResponse(w, http.StatusUnprocessableEntity, map[string]any{
				"error":  "document does not match schema",
				"fields": ve.Errors,
			})
			return
		}
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.applyMutation(w, sess, "replace_document", editing.Replace(doc))
}

func (s *Server) handleSetField(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	s.mutate(w, r, "set_field", editing.SetField(editing.DocumentField(r.PathValue("field")), req.Value))
}

func (s *Server) handleSetContactField(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	s.mutate(w, r, "set_contact", editing.SetContactField(editing.ContactField(r.PathValue("field")), req.Value))
}

func (s *Server) handleAddSection(w http.ResponseWriter, r *http.Request) {
	var req addSectionRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	s.mutate(w, r, "add_section", editing.Add(req.Type))
}

func (s *Server) handleDeleteSection(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, "delete_section", editing.Delete(r.PathValue("id")))
}

func (s *Server) handleMoveSection(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid section index %q", r.PathValue("index")))
		return
	}
	var req moveRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	s.mutate(w, r, "move_section", editing.Move(index, req.Direction))
}

func (s *Server) handleSetTitle(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	s.mutate(w, r, "set_title", editing.SetTitle(r.PathValue("id"), req.Title))
}

// handleSetContent decodes the body as the content shape of the target
// section. A body of the wrong shape is rejected without a history entry.
func (s *Server) handleSetContent(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSession(w, r)
	if sess == nil {
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil || !json.Valid(body) {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id := r.PathValue("id")
	doc := sess.Document()
	i := doc.SectionIndex(id)
	if i < 0 {
		observability.MutationsTotal.WithLabelValues("set_content", observability.OutcomeNoop).Inc()
		jsonResponse(w, http.StatusOK, sess.State())
		return
	}

	content, err := types.DecodeContent(doc.Sections[i].Type, body)
	if err != nil {
		observability.MutationsTotal.WithLabelValues("set_content", observability.OutcomeRejected).Inc()
		errorResponse(w, http.StatusUnprocessableEntity, fmt.Errorf("%w: %v", editing.ErrContentMismatch, err).Error())
		return
	}
	s.applyMutation(w, sess, "set_content", editing.SetContent(id, content))
}

func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	var req skillRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	s.mutate(w, r, "add_skill", editing.AddSkill(r.PathValue("id"), req.Category, req.Name))
}

func (s *Server) handleRemoveSkill(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category, name := q.Get("category"), q.Get("name")
	if category == "" || name == "" {
		errorResponse(w, http.StatusBadRequest, "category and name are required")
		return
	}
	s.mutate(w, r, "remove_skill", editing.RemoveSkill(r.PathValue("id"), category, name))
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, "add_entry", editing.AddEntry(r.PathValue("id")))
}

func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, "remove_entry", editing.RemoveEntry(r.PathValue("id"), r.PathValue("entryID")))
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSession(w, r)
	if sess == nil {
		return
	}
	moved := sess.Undo()
	observability.HistoryNavigationTotal.WithLabelValues("undo", observability.BoolLabel(moved)).Inc()
	jsonResponse(w, http.StatusOK, sess.State())
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSession(w, r)
	if sess == nil {
		return
	}
	moved := sess.Redo()
	observability.HistoryNavigationTotal.WithLabelValues("redo", observability.BoolLabel(moved)).Inc()
	jsonResponse(w, http.StatusOK, sess.State())
}

// handleSetStyle changes template and palette. Style changes are not undoable.
func (s *Server) handleSetStyle(w http.ResponseWriter, r *http.Request) {
	var req styleRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	sess := s.currentSession(w, r)
	if sess == nil {
		return
	}
	sess.SetStyle(types.StyleOptions{Template: req.Template, ColorPalette: req.Palette})
	jsonResponse(w, http.StatusOK, sess.State())
}
