package rendering

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"

	"github.com/jonathan/resume-editor/internal/types"
)

var mdConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
	),
)

// RenderMarkdown converts the classic layout of doc to Markdown. Palette and
// template do not affect the text, so the projection is style independent.
func (r *Renderer) RenderMarkdown(doc types.ResumeDocument) (string, error) {
	layout, err := r.RenderLayout(doc, types.TemplateClassic, types.PaletteBlack)
	if err != nil {
		return "", err
	}
	md, err := mdConverter.ConvertString(layout)
	if err != nil {
		return "", &RenderError{Message: "failed to convert layout to markdown", Cause: err}
	}
	return strings.TrimSpace(md) + "\n", nil
}
