package export

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// TargetSelector selects the rendered layout inside a page.
const TargetSelector = "#resume-preview"

// Rasterizer captures an element of a page as PNG. *browser.Browser
// satisfies it.
type Rasterizer interface {
	Screenshot(ctx context.Context, markup, selector string) ([]byte, error)
}

// LocalFallback rasterizes the layout and embeds the image in a single A4
// page, centred with its aspect ratio preserved.
type LocalFallback struct {
	raster Rasterizer
}

// NewLocalFallback creates the fallback render path.
func NewLocalFallback(raster Rasterizer) *LocalFallback {
	return &LocalFallback{raster: raster}
}

// RenderPDF implements RenderService.
func (f *LocalFallback) RenderPDF(ctx context.Context, page string) ([]byte, error) {
	if err := checkTarget(page); err != nil {
		return nil, err
	}
	png, err := f.raster.Screenshot(ctx, page, TargetSelector)
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize layout: %w", err)
	}
	return ImageToPDF(png)
}

// ImageToPDF places one image on an A4 page, scaled to fit.
func ImageToPDF(img []byte) ([]byte, error) {
	if len(img) == 0 {
		return nil, fmt.Errorf("image is empty")
	}

	imp := pdfcpu.DefaultImportConfig()
	imp.Pos = types.Center
	imp.Scale = 1.0

	var out bytes.Buffer
	if err := api.ImportImages(nil, &out, []io.Reader{bytes.NewReader(img)}, imp, model.NewDefaultConfiguration()); err != nil {
		return nil, fmt.Errorf("failed to embed image: %w", err)
	}
	return out.Bytes(), nil
}
