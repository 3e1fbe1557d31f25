package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-editor/internal/config"
	"github.com/jonathan/resume-editor/internal/schemas"
	"github.com/jonathan/resume-editor/internal/types"
)

// loadConfig reads the environment and overlays the optional config file.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if path != "" {
		fileCfg, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		merged := fileCfg.MergeWithDefaults(*cfg)
		cfg = &merged
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDocument reads a document file, or returns the default document when
// path is empty.
func loadDocument(path string) (types.ResumeDocument, error) {
	if path == "" {
		return types.DefaultDocument(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ResumeDocument{}, fmt.Errorf("failed to read document: %w", err)
	}
	if err := schemas.ValidateDocument(data); err != nil {
		return types.ResumeDocument{}, fmt.Errorf("invalid document %s: %w", path, err)
	}
	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.ResumeDocument{}, fmt.Errorf("failed to unmarshal document JSON: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return types.ResumeDocument{}, fmt.Errorf("invalid document %s: %w", path, err)
	}
	return doc, nil
}

// parseStyle checks template and palette flag values.
func parseStyle(template, palette string) (types.StyleOptions, error) {
	style := types.StyleOptions{Template: types.Template(template), ColorPalette: types.ColorPalette(palette)}
	if !style.Template.Valid() {
		return style, fmt.Errorf("unknown template %q (want one of %v)", template, types.Templates())
	}
	if !style.ColorPalette.Valid() {
		return style, fmt.Errorf("unknown palette %q (want one of %v)", palette, types.Palettes())
	}
	return style, nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
