package export

import (
	"context"
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/jonathan/resume-editor/internal/observability"
)

// Path names the render path that produced a PDF.
type Path string

const (
	PathPrimary  Path = "primary"
	PathFallback Path = "fallback"
)

// Severity of a user-visible notice.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Notice messages shown while exporting.
const (
	MsgFallback = "PDF service unavailable. Generating the PDF locally instead."
	MsgFailed   = "Failed to generate PDF. Please try again."
)

// Notice is a message raised during an export.
type Notice struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Result is a finished export.
type Result struct {
	PDF     []byte
	Path    Path
	Notices []Notice
}

// NotifyFunc receives notices as they are raised. It may be nil.
type NotifyFunc func(Notice)

// Exporter runs the primary render path and falls back to the local path on
// failure. Concurrent exports with the same key share a single run.
type Exporter struct {
	primary  RenderService
	fallback RenderService
	logger   zerolog.Logger
	group    singleflight.Group
}

// NewExporter creates an Exporter. primary may be nil, in which case every
// export goes straight to fallback without a notice.
func NewExporter(primary, fallback RenderService, logger zerolog.Logger) *Exporter {
	return &Exporter{
		primary:  primary,
		fallback: fallback,
		logger:   logger.With().Str("component", "exporter").Logger(),
	}
}

// Export produces a PDF for page. key identifies the caller's document,
// usually the session id; a second call with the same key while one is in
// flight waits for and shares the first result. The run is not cancelled when
// ctx is; service timeouts bound it instead. On failure the returned Result
// carries the notices but no PDF.
func (e *Exporter) Export(ctx context.Context, key, page string, notify NotifyFunc) (*Result, error) {
	if notify == nil {
		notify = func(Notice) {}
	}
	if strings.TrimSpace(page) == "" {
		return nil, ErrEmptyPage
	}

	led := false
	v, err, shared := e.group.Do(key, func() (interface{}, error) {
		led = true
		return e.run(context.WithoutCancel(ctx), key, page, notify)
	})
	res, _ := v.(*Result)
	if !led {
		e.logger.Debug().Str("key", key).Bool("shared", shared).Msg("joined in-flight export")
		if res != nil {
			for _, n := range res.Notices {
				notify(n)
			}
		} else {
			notify(Notice{Severity: SeverityError, Message: MsgFailed})
		}
	}
	return res, err
}

func (e *Exporter) run(ctx context.Context, key, page string, notify NotifyFunc) (*Result, error) {
	res := &Result{}
	raise := func(n Notice) {
		res.Notices = append(res.Notices, n)
		notify(n)
	}

	if e.primary != nil {
		pdf, err := e.tryPrimary(ctx, page)
		if err == nil {
			res.PDF, res.Path = pdf, PathPrimary
			observability.ExportsTotal.WithLabelValues(string(PathPrimary), "success").Inc()
			e.logger.Info().Str("key", key).Int("bytes", len(pdf)).Msg("exported pdf via render service")
			return res, nil
		}
		e.logger.Warn().Err(err).Str("key", key).Msg("render service failed, using local fallback")
		raise(Notice{Severity: SeverityInfo, Message: MsgFallback})
	}

	pdf, err := e.fallback.RenderPDF(ctx, page)
	if err != nil {
		e.logger.Error().Err(err).Str("key", key).Msg("local pdf fallback failed")
		observability.ExportsTotal.WithLabelValues(string(PathFallback), "failure").Inc()
		raise(Notice{Severity: SeverityError, Message: MsgFailed})
		return res, errors.Join(ErrExportFailed, err)
	}

	res.PDF, res.Path = pdf, PathFallback
	observability.ExportsTotal.WithLabelValues(string(PathFallback), "success").Inc()
	e.logger.Info().Str("key", key).Int("bytes", len(pdf)).Msg("exported pdf via local fallback")
	return res, nil
}

func (e *Exporter) tryPrimary(ctx context.Context, page string) ([]byte, error) {
	if err := checkTarget(page); err != nil {
		return nil, err
	}
	return e.primary.RenderPDF(ctx, page)
}

// checkTarget reports ErrRenderTargetMissing when page has no layout root.
func checkTarget(page string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return err
	}
	if doc.Find(TargetSelector).Length() == 0 {
		return ErrRenderTargetMissing
	}
	return nil
}
