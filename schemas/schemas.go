// Package schemas embeds the JSON Schemas describing the editor's wire formats.
package schemas

import "embed"

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// Schema file names.
const (
	DocumentSchema = "document.schema.json"
	StyleSchema    = "style.schema.json"
)
