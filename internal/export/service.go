// Package export turns rendered resume pages into PDF documents. The render
// service is tried first and the local raster fallback runs when it fails.
package export

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jonathan/resume-editor/internal/browser"
)

// RenderService converts a self-contained HTML page into PDF bytes.
type RenderService interface {
	RenderPDF(ctx context.Context, page string) ([]byte, error)
}

// GeneratePath is the render service endpoint.
const GeneratePath = "/api/generate-pdf"

// GenerateRequest is the body accepted by the render service.
type GenerateRequest struct {
	HTML string `json:"html" validate:"required"`
}

// HTTPRenderService posts pages to a remote render service.
type HTTPRenderService struct {
	client *resty.Client
}

// NewHTTPRenderService creates a client for the render service at baseURL.
func NewHTTPRenderService(baseURL string, timeout time.Duration) *HTTPRenderService {
	if timeout <= 0 {
		timeout = browser.DefaultTimeout
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/pdf").
		SetTimeout(timeout)
	return &HTTPRenderService{client: client}
}

// RenderPDF sends page to the render service. Non-2xx responses are
// returned as *ServiceError.
func (s *HTTPRenderService) RenderPDF(ctx context.Context, page string) ([]byte, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(&GenerateRequest{HTML: page}).
		Post(GeneratePath)
	if err != nil {
		return nil, fmt.Errorf("render service request failed: %w", err)
	}
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, &ServiceError{StatusCode: resp.StatusCode(), Body: strings.TrimSpace(resp.String())}
	}
	if len(resp.Body()) == 0 {
		return nil, fmt.Errorf("render service returned an empty body")
	}
	return resp.Body(), nil
}

// Printer prints a page to PDF. *browser.Browser satisfies it.
type Printer interface {
	PrintPDF(ctx context.Context, markup string) ([]byte, error)
}

// BrowserRenderService renders in-process with headless Chrome. It backs the
// built-in render endpoint and the CLI when no remote service is configured.
type BrowserRenderService struct {
	printer Printer
}

// NewBrowserRenderService wraps printer as a RenderService.
func NewBrowserRenderService(printer Printer) *BrowserRenderService {
	return &BrowserRenderService{printer: printer}
}

// RenderPDF prints page with the wrapped printer.
func (s *BrowserRenderService) RenderPDF(ctx context.Context, page string) ([]byte, error) {
	if strings.TrimSpace(page) == "" {
		return nil, ErrEmptyPage
	}
	return s.printer.PrintPDF(ctx, page)
}
