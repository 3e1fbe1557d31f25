// Package browser drives headless Chrome to print or rasterize rendered resume pages.
package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

// A4 paper size in inches.
const (
	A4WidthInches  = 8.27
	A4HeightInches = 11.69
)

// DefaultTimeout bounds one browser session when Options.Timeout is zero.
const DefaultTimeout = 60 * time.Second

// Options configures the headless browser.
type Options struct {
	// ExecPath points at a Chrome/Chromium binary. Empty uses chromedp's lookup.
	ExecPath string
	Timeout  time.Duration
	// Viewport is the page size in CSS pixels used for screenshots.
	ViewportWidth  int64
	ViewportHeight int64
}

// Browser starts a fresh headless Chrome for every call. Chrome must be
// installed on the host.
type Browser struct {
	opts   Options
	logger zerolog.Logger
}

// New creates a Browser. Missing viewport values default to the A4 page at 96 DPI.
func New(opts Options, logger zerolog.Logger) *Browser {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.ViewportWidth <= 0 {
		opts.ViewportWidth = 794
	}
	if opts.ViewportHeight <= 0 {
		opts.ViewportHeight = 1123
	}
	return &Browser{opts: opts, logger: logger.With().Str("component", "browser").Logger()}
}

// PrintPDF loads the self-contained page markup and prints it to an A4 PDF
// with backgrounds and no margins.
func (b *Browser) PrintPDF(ctx context.Context, markup string) ([]byte, error) {
	var pdf []byte
	err := b.run(ctx, markup, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		pdf, _, err = page.PrintToPDF().
			WithPrintBackground(true).
			WithPaperWidth(A4WidthInches).
			WithPaperHeight(A4HeightInches).
			WithMarginTop(0).
			WithMarginBottom(0).
			WithMarginLeft(0).
			WithMarginRight(0).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to print pdf: %w", err)
	}
	b.logger.Debug().Int("bytes", len(pdf)).Msg("printed pdf")
	return pdf, nil
}

// Screenshot loads the page markup and captures the element matching
// selector as a PNG.
func (b *Browser) Screenshot(ctx context.Context, markup, selector string) ([]byte, error) {
	var png []byte
	err := b.run(ctx, markup,
		chromedp.EmulateViewport(b.opts.ViewportWidth, b.opts.ViewportHeight),
		chromedp.Screenshot(selector, &png, chromedp.NodeVisible, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture %s: %w", selector, err)
	}
	b.logger.Debug().Int("bytes", len(png)).Str("selector", selector).Msg("captured screenshot")
	return png, nil
}

// run writes markup to a temporary file, opens it in a new headless browser
// and executes actions once the body is ready.
func (b *Browser) run(ctx context.Context, markup string, actions ...chromedp.Action) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if b.opts.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(b.opts.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, b.opts.Timeout)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "resume-")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(markup), 0o600); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}

	b.logger.Debug().Str("path", htmlPath).Msg("starting headless browser")

	tasks := chromedp.Tasks{
		chromedp.Navigate("file://" + htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	tasks = append(tasks, actions...)
	return chromedp.Run(browserCtx, tasks)
}
