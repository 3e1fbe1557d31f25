package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `<!DOCTYPE html><html><body><div id="resume-preview">Jane</div></body></html>`

var fakePDF = []byte("%PDF-1.7 fake")

type fakeService struct {
	pdf   []byte
	err   error
	calls atomic.Int32
	wait  chan struct{}
}

func (f *fakeService) RenderPDF(_ context.Context, _ string) ([]byte, error) {
	f.calls.Add(1)
	if f.wait != nil {
		<-f.wait
	}
	return f.pdf, f.err
}

type fakeRaster struct {
	png []byte
	err error
}

func (f *fakeRaster) Screenshot(_ context.Context, _, selector string) ([]byte, error) {
	if selector != TargetSelector {
		return nil, errors.New("unexpected selector")
	}
	return f.png, f.err
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 56))
	for x := 0; x < 40; x++ {
		for y := 0; y < 56; y++ {
			img.Set(x, y, color.RGBA{R: 30, G: 64, B: 175, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func collect() (NotifyFunc, func() []Notice) {
	var mu sync.Mutex
	var got []Notice
	return func(n Notice) {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, n)
		}, func() []Notice {
			mu.Lock()
			defer mu.Unlock()
			return append([]Notice(nil), got...)
		}
}

func TestExport_PrimarySucceeds(t *testing.T) {
	primary := &fakeService{pdf: fakePDF}
	fallback := &fakeService{err: errors.New("must not run")}
	e := NewExporter(primary, fallback, zerolog.Nop())

	notify, notices := collect()
	res, err := e.Export(context.Background(), "s1", testPage, notify)
	require.NoError(t, err)

	assert.Equal(t, PathPrimary, res.Path)
	assert.Equal(t, fakePDF, res.PDF)
	assert.Empty(t, res.Notices)
	assert.Empty(t, notices())
	assert.Equal(t, int32(0), fallback.calls.Load())
}

func TestExport_PrimaryFailureFallsBack(t *testing.T) {
	primary := &fakeService{err: &ServiceError{StatusCode: http.StatusBadGateway}}
	fallback := &fakeService{pdf: []byte("%PDF-local")}
	e := NewExporter(primary, fallback, zerolog.Nop())

	notify, notices := collect()
	res, err := e.Export(context.Background(), "s1", testPage, notify)
	require.NoError(t, err)

	assert.Equal(t, PathFallback, res.Path)
	assert.Equal(t, []byte("%PDF-local"), res.PDF)
	require.Len(t, notices(), 1)
	assert.Equal(t, SeverityInfo, notices()[0].Severity)
	assert.Equal(t, MsgFallback, notices()[0].Message)
	assert.Equal(t, notices(), res.Notices)
}

func TestExport_BothPathsFail(t *testing.T) {
	primary := &fakeService{err: errors.New("connection refused")}
	fallback := &fakeService{err: errors.New("no browser")}
	e := NewExporter(primary, fallback, zerolog.Nop())

	notify, notices := collect()
	res, err := e.Export(context.Background(), "s1", testPage, notify)

	assert.ErrorIs(t, err, ErrExportFailed)
	require.NotNil(t, res)
	assert.Empty(t, res.PDF)
	assert.Equal(t, notices(), res.Notices)
	require.Len(t, notices(), 2)
	assert.Equal(t, SeverityInfo, notices()[0].Severity)
	assert.Equal(t, SeverityError, notices()[1].Severity)
	assert.Equal(t, MsgFailed, notices()[1].Message)
}

func TestExport_MissingTargetSkipsPrimary(t *testing.T) {
	primary := &fakeService{pdf: fakePDF}
	fallback := NewLocalFallback(&fakeRaster{png: testPNG(t)})
	e := NewExporter(primary, fallback, zerolog.Nop())

	_, err := e.Export(context.Background(), "s1", "<html><body><p>no layout</p></body></html>", nil)

	assert.ErrorIs(t, err, ErrExportFailed)
	assert.ErrorIs(t, err, ErrRenderTargetMissing)
	assert.Equal(t, int32(0), primary.calls.Load())
}

func TestExport_NoPrimaryUsesFallbackSilently(t *testing.T) {
	fallback := &fakeService{pdf: fakePDF}
	e := NewExporter(nil, fallback, zerolog.Nop())

	notify, notices := collect()
	res, err := e.Export(context.Background(), "s1", testPage, notify)
	require.NoError(t, err)
	assert.Equal(t, PathFallback, res.Path)
	assert.Empty(t, notices())
}

func TestExport_EmptyPage(t *testing.T) {
	e := NewExporter(&fakeService{pdf: fakePDF}, &fakeService{pdf: fakePDF}, zerolog.Nop())
	_, err := e.Export(context.Background(), "s1", "  ", nil)
	assert.ErrorIs(t, err, ErrEmptyPage)
}

func TestExport_SingleFlightPerKey(t *testing.T) {
	primary := &fakeService{err: errors.New("down"), wait: make(chan struct{})}
	fallback := &fakeService{pdf: fakePDF}
	e := NewExporter(primary, fallback, zerolog.Nop())

	var wg sync.WaitGroup
	results := make([]*Result, 2)
	noticeSets := make([]func() []Notice, 2)
	for i := range 2 {
		notify, notices := collect()
		noticeSets[i] = notices
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := e.Export(context.Background(), "same", testPage, notify)
			assert.NoError(t, err)
			results[i] = res
		}()
		if i == 0 {
			require.Eventually(t, func() bool { return primary.calls.Load() == 1 }, time.Second, time.Millisecond)
		}
	}
	time.Sleep(50 * time.Millisecond)
	close(primary.wait)
	wg.Wait()

	assert.Equal(t, int32(1), primary.calls.Load())
	assert.Equal(t, int32(1), fallback.calls.Load())
	assert.Same(t, results[0], results[1])
	for _, notices := range noticeSets {
		assert.Len(t, notices(), 1, "every caller sees the fallback notice")
	}
}

func TestLocalFallback_EmbedsImage(t *testing.T) {
	f := NewLocalFallback(&fakeRaster{png: testPNG(t)})

	pdf, err := f.RenderPDF(context.Background(), testPage)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}

func TestLocalFallback_RasterError(t *testing.T) {
	f := NewLocalFallback(&fakeRaster{err: errors.New("chrome crashed")})
	_, err := f.RenderPDF(context.Background(), testPage)
	assert.ErrorContains(t, err, "chrome crashed")
}

func TestImageToPDF_Empty(t *testing.T) {
	_, err := ImageToPDF(nil)
	assert.Error(t, err)
}

func TestHTTPRenderService(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       []byte
		wantErr    bool
		wantStatus int
	}{
		{name: "success", status: http.StatusOK, body: fakePDF},
		{name: "server error", status: http.StatusInternalServerError, body: []byte("boom"), wantErr: true, wantStatus: http.StatusInternalServerError},
		{name: "bad request", status: http.StatusBadRequest, body: []byte("html is required"), wantErr: true, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got GenerateRequest
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, GeneratePath, r.URL.Path)
				assert.Equal(t, http.MethodPost, r.Method)
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.WriteHeader(tt.status)
				_, _ = w.Write(tt.body)
			}))
			defer srv.Close()

			svc := NewHTTPRenderService(srv.URL+"/", 5*time.Second)
			pdf, err := svc.RenderPDF(context.Background(), testPage)

			assert.Equal(t, testPage, got.HTML)
			if tt.wantErr {
				var svcErr *ServiceError
				require.ErrorAs(t, err, &svcErr)
				assert.Equal(t, tt.wantStatus, svcErr.StatusCode)
				assert.Equal(t, string(tt.body), svcErr.Body)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.body, pdf)
		})
	}
}

func TestHTTPRenderService_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPRenderService(url, time.Second).RenderPDF(context.Background(), testPage)
	assert.Error(t, err)
}

type fakePrinter struct{ pdf []byte }

func (p fakePrinter) PrintPDF(context.Context, string) ([]byte, error) { return p.pdf, nil }

func TestBrowserRenderService(t *testing.T) {
	svc := NewBrowserRenderService(fakePrinter{pdf: fakePDF})

	pdf, err := svc.RenderPDF(context.Background(), testPage)
	require.NoError(t, err)
	assert.Equal(t, fakePDF, pdf)

	_, err = svc.RenderPDF(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyPage)
}

func TestServiceError_Message(t *testing.T) {
	assert.Equal(t, "render service returned status 502", (&ServiceError{StatusCode: 502}).Error())
	assert.Equal(t, "render service returned status 400: bad", (&ServiceError{StatusCode: 400, Body: "bad"}).Error())
}
