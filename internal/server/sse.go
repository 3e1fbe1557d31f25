package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-editor/internal/export"
)

// SSE event names used by the export stream.
const (
	EventNotice   = "notice"
	EventComplete = "complete"
	EventError    = "error"
)

// ExportComplete is the payload of the complete event.
type ExportComplete struct {
	Path     export.Path `json:"path"`
	Size     int         `json:"size"`
	Filename string      `json:"filename"`
	PDF      string      `json:"pdf"` // base64
}

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteNotice sends a notice raised during an export.
func (s *SSEWriter) WriteNotice(n export.Notice) {
	s.WriteEvent(EventNotice, n) //nolint:errcheck
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent(EventError, map[string]string{"error": message}) //nolint:errcheck
}

// WriteComplete sends the finished PDF.
func (s *SSEWriter) WriteComplete(res *export.Result) {
	s.WriteEvent(EventComplete, ExportComplete{ //nolint:errcheck
		Path:     res.Path,
		Size:     len(res.PDF),
		Filename: pdfFilename,
		PDF:      base64.StdEncoding.EncodeToString(res.PDF),
	})
}
