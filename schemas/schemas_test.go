package schemas_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-editor/schemas"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	schemaFiles := []string{
		schemas.DocumentSchema,
		schemas.StyleSchema,
	}

	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := schemas.FS.ReadFile(schemaFile)
			require.NoError(t, err, "should be able to read schema file")

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj), "schema file should be valid JSON: %s", schemaFile)

			assert.Equal(t, "http://json-schema.org/draft-07/schema#", schemaObj["$schema"])
			assert.Equal(t, "object", schemaObj["type"])
			assert.Contains(t, schemaObj, "properties")
		})
	}
}

func TestDocumentSchema_ListsEverySectionType(t *testing.T) {
	data, err := schemas.FS.ReadFile(schemas.DocumentSchema)
	require.NoError(t, err)

	var schemaObj struct {
		Definitions struct {
			Section struct {
				Properties struct {
					Type struct {
						Enum []string `json:"enum"`
					} `json:"type"`
				} `json:"properties"`
			} `json:"section"`
		} `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal(data, &schemaObj))

	assert.ElementsMatch(t, []string{
		"summary", "experience", "education", "projects", "skills",
		"custom", "certifications", "awards", "volunteer", "interests",
	}, schemaObj.Definitions.Section.Properties.Type.Enum)
}
