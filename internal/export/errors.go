package export

import (
	"errors"
	"fmt"
)

var (
	// ErrExportFailed is returned when both the render service and the local
	// fallback failed. No PDF was produced.
	ErrExportFailed = errors.New("pdf export failed")

	// ErrRenderTargetMissing means the page has no #resume-preview element.
	ErrRenderTargetMissing = errors.New("render target #resume-preview not found")

	// ErrEmptyPage is returned for an empty markup document.
	ErrEmptyPage = errors.New("page markup is empty")
)

// ServiceError is a non-success response from the PDF render service.
type ServiceError struct {
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("render service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("render service returned status %d: %s", e.StatusCode, e.Body)
}
