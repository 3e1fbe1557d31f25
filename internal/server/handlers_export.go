package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-editor/internal/export"
	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/jonathan/resume-editor/internal/session"
	"github.com/jonathan/resume-editor/internal/types"
)

const pdfFilename = "resume.pdf"

// styleFor returns the session style with optional ?template= and ?palette= overrides.
func styleFor(r *http.Request, sess *session.Session) (types.StyleOptions, error) {
	style := sess.Style()
	q := r.URL.Query()
	if t := q.Get("template"); t != "" {
		style.Template = types.Template(t)
		if !style.Template.Valid() {
			return style, &ErrValidation{Field: "template", Message: fmt.Sprintf("unknown template %q", t)}
		}
	}
	if p := q.Get("palette"); p != "" {
		style.ColorPalette = types.ColorPalette(p)
		if !style.ColorPalette.Valid() {
			return style, &ErrValidation{Field: "palette", Message: fmt.Sprintf("unknown palette %q", p)}
		}
	}
	return style, nil
}

// renderPage projects the session document into a self-contained page.
func (s *Server) renderPage(doc types.ResumeDocument, style types.StyleOptions) (string, error) {
	start := time.Now()
	page, err := s.renderer.RenderPage(doc, style.Template, style.ColorPalette)
	observability.RenderDuration.WithLabelValues(string(style.Template)).Observe(time.Since(start).Seconds())
	return page, err
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSession(w, r)
	if sess == nil {
		return
	}
	style, err := styleFor(r, sess)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	page, err := s.renderPage(sess.Document(), style)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to render preview")
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page))
}

func (s *Server) handlePreviewMarkdown(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSession(w, r)
	if sess == nil {
		return
	}
	md, err := s.renderer.RenderMarkdown(sess.Document())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to render markdown")
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(md))
}

// handleExportPDF runs an export and answers with the PDF. Notices raised on
// the way are reported in X-Export-Notice headers.
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSession(w, r)
	if sess == nil {
		return
	}
	page, err := s.renderPage(sess.Document(), sess.Style())
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	res, err := s.exporter.Export(r.Context(), sess.ID, page, nil)
	if err != nil {
		body := map[string]any{"error": export.MsgFailed}
		if res != nil {
			body["notices"] = res.Notices
		}
		jsonResponse(w, HTTPStatus(err), body)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdfFilename))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.PDF)))
	w.Header().Set("X-Export-Path", string(res.Path))
	for _, n := range res.Notices {
		w.Header().Add("X-Export-Notice", n.Message)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.PDF)
}

// handleExportPDFStream runs an export and streams notices, then the PDF or
// the terminal error, as server-sent events.
func (s *Server) handleExportPDFStream(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSession(w, r)
	if sess == nil {
		return
	}
	page, err := s.renderPage(sess.Document(), sess.Style())
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	res, err := s.exporter.Export(r.Context(), sess.ID, page, sse.WriteNotice)
	if err != nil {
		sse.WriteError(export.MsgFailed)
		return
	}
	sse.WriteComplete(res)
}

// handleGeneratePDF is the built-in render service: it prints posted markup
// to a PDF.
func (s *Server) handleGeneratePDF(w http.ResponseWriter, r *http.Request) {
	var req export.GenerateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4*maxDocumentBytes)).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil || strings.TrimSpace(req.HTML) == "" {
		errorResponse(w, http.StatusBadRequest, "html content is required")
		return
	}

	pdf, err := s.renderService.RenderPDF(r.Context(), req.HTML)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to generate pdf")
		status := http.StatusInternalServerError
		if errors.Is(err, export.ErrEmptyPage) {
			status = http.StatusBadRequest
		}
		errorResponse(w, status, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdfFilename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
