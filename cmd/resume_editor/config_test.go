package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-editor/internal/types"
)

func TestParseStyle(t *testing.T) {
	style, err := parseStyle("technical", "purple")
	require.NoError(t, err)
	assert.Equal(t, types.TemplateTechnical, style.Template)
	assert.Equal(t, types.PalettePurple, style.ColorPalette)

	_, err = parseStyle("modern", "blue")
	assert.Error(t, err)
	_, err = parseStyle("classic", "orange")
	assert.Error(t, err)
}

func TestLoadConfig_FileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9090\ndefault_palette: green\n"), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "green", cfg.DefaultPalette)
	assert.Equal(t, "classic", cfg.DefaultTemplate)
}

func TestLoadConfig_InvalidFileValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"default_template": "modern"}`), 0o600))

	_, err := loadConfig(path)
	assert.Error(t, err)
}

func TestLoadDocument_Default(t *testing.T) {
	doc, err := loadDocument("")
	require.NoError(t, err)
	assert.Equal(t, types.DefaultDocument().Name, doc.Name)
}

func TestWriteOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeOutput("", []byte("hello"), &buf))
	assert.Equal(t, "hello", buf.String())

	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, writeOutput(path, []byte("file"), nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "file", string(data))
}
