package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"

	"github.com/jonathan/resume-editor/internal/types"
)

//go:embed templates/*.html templates/style.css
var templateFS embed.FS

// Renderer projects documents into the built-in layouts. A Renderer is safe
// for concurrent use.
type Renderer struct {
	tmpl       *template.Template
	stylesheet template.CSS
}

var (
	defaultRenderer *Renderer
	defaultErr      error
	defaultOnce     sync.Once
)

// Default returns a process-wide Renderer parsed on first use.
func Default() (*Renderer, error) {
	defaultOnce.Do(func() {
		defaultRenderer, defaultErr = NewRenderer()
	})
	return defaultRenderer, defaultErr
}

// NewRenderer parses the embedded templates and stylesheet.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("resume").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, &TemplateError{Template: "*", Message: "failed to parse templates", Cause: err}
	}
	for _, t := range types.Templates() {
		if tmpl.Lookup(string(t)) == nil {
			return nil, &TemplateError{Template: string(t), Message: "layout not defined"}
		}
	}

	css, err := templateFS.ReadFile("templates/style.css")
	if err != nil {
		return nil, &TemplateError{Template: "style.css", Message: "failed to read stylesheet", Cause: err}
	}

	return &Renderer{
		tmpl: tmpl,
		// #nosec G203 -- embedded stylesheet
		stylesheet: template.CSS(css),
	}, nil
}

// Stylesheet returns the CSS shared by every layout.
func (r *Renderer) Stylesheet() string {
	return string(r.stylesheet)
}

// RenderLayout renders the #resume-preview element for doc in the given
// template and palette. The result is the unscaled structural form.
func (r *Renderer) RenderLayout(doc types.ResumeDocument, tpl types.Template, palette types.ColorPalette) (string, error) {
	if !tpl.Valid() {
		return "", &RenderError{Message: fmt.Sprintf("unknown template %q", tpl)}
	}
	pal, err := PaletteFor(palette)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, string(tpl), buildPage(doc, tpl, pal)); err != nil {
		return "", &TemplateError{Template: string(tpl), Message: "failed to execute template", Cause: err}
	}
	return buf.String(), nil
}

// RenderPage renders a self-contained HTML document with the stylesheet
// inlined, suitable for a PDF render service.
func (r *Renderer) RenderPage(doc types.ResumeDocument, tpl types.Template, palette types.ColorPalette) (string, error) {
	layout, err := r.RenderLayout(doc, tpl, palette)
	if err != nil {
		return "", err
	}

	data := struct {
		Page       pageView
		Stylesheet template.CSS
		Layout     template.HTML
	}{
		Page:       pageView{Name: doc.Name},
		Stylesheet: r.stylesheet,
		// #nosec G203 -- produced by html/template above
		Layout: template.HTML(layout),
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "page", data); err != nil {
		return "", &TemplateError{Template: "page", Message: "failed to execute template", Cause: err}
	}
	return buf.String(), nil
}
