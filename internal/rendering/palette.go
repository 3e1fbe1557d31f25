package rendering

import (
	"fmt"
	"html/template"

	"github.com/jonathan/resume-editor/internal/types"
)

// Palette holds the visual role colors of one color scheme.
type Palette struct {
	Primary    string
	Background string
	Border     string
	Company    string
	Link       string
}

var palettes = map[types.ColorPalette]Palette{
	types.PaletteBlue:   {Primary: "#1e40af", Background: "#2563eb", Border: "#2563eb", Company: "#1d4ed8", Link: "#1d4ed8"},
	types.PaletteGreen:  {Primary: "#166534", Background: "#16a34a", Border: "#16a34a", Company: "#15803d", Link: "#15803d"},
	types.PaletteBlack:  {Primary: "#000000", Background: "#18181b", Border: "#000000", Company: "#27272a", Link: "#27272a"},
	types.PalettePurple: {Primary: "#6b21a8", Background: "#9333ea", Border: "#9333ea", Company: "#7e22ce", Link: "#7e22ce"},
}

// PaletteFor returns the colors of p.
func PaletteFor(p types.ColorPalette) (Palette, error) {
	pal, ok := palettes[p]
	if !ok {
		return Palette{}, &RenderError{Message: fmt.Sprintf("unknown color palette %q", p)}
	}
	return pal, nil
}

// Vars returns the palette as CSS custom properties for a style attribute.
func (p Palette) Vars() template.CSS {
	// #nosec G203 -- values come from the fixed palette table above
	return template.CSS(fmt.Sprintf(
		"--color-primary:%s;--color-bg:%s;--color-border:%s;--color-company:%s;--color-link:%s",
		p.Primary, p.Background, p.Border, p.Company, p.Link,
	))
}
