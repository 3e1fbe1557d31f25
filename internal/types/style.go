package types

// Template names a visual arrangement of the document.
type Template string

// Available templates.
const (
	TemplateClassic   Template = "classic"
	TemplateCorporate Template = "corporate"
	TemplateCreative  Template = "creative"
	TemplateExecutive Template = "executive"
	TemplateTechnical Template = "technical"
)

// Templates returns every template in toolbar order.
func Templates() []Template {
	return []Template{TemplateClassic, TemplateCorporate, TemplateCreative, TemplateExecutive, TemplateTechnical}
}

// Valid reports whether t is a known template.
func (t Template) Valid() bool {
	for _, known := range Templates() {
		if t == known {
			return true
		}
	}
	return false
}

// ColorPalette names a set of accent colors, independent of the template.
type ColorPalette string

// Available palettes.
const (
	PaletteBlue   ColorPalette = "blue"
	PaletteGreen  ColorPalette = "green"
	PaletteBlack  ColorPalette = "black"
	PalettePurple ColorPalette = "purple"
)

// Palettes returns every palette in toolbar order.
func Palettes() []ColorPalette {
	return []ColorPalette{PaletteBlue, PaletteGreen, PaletteBlack, PalettePurple}
}

// Valid reports whether p is a known palette.
func (p ColorPalette) Valid() bool {
	for _, known := range Palettes() {
		if p == known {
			return true
		}
	}
	return false
}

// StyleOptions is the template and palette selection of a session.
type StyleOptions struct {
	Template     Template     `json:"template" validate:"required,oneof=classic corporate creative executive technical"`
	ColorPalette ColorPalette `json:"colorPalette" validate:"required,oneof=blue green black purple"`
}

// DefaultStyle is the selection a new session starts with.
func DefaultStyle() StyleOptions {
	return StyleOptions{Template: TemplateClassic, ColorPalette: PaletteBlue}
}
