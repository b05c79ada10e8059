package excel

import (
	"bytes"
	"testing"

	"github.com/maithilikosh/api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestBuildDefaultTemplate(t *testing.T) {
	data, err := BuildTemplate(nil)
	require.NoError(t, err)

	grid, err := ReadGrid(bytes.NewReader(data))
	require.NoError(t, err)
	require.NotEmpty(t, grid)

	assert.Equal(t, DefaultHeaders, grid[0])
	assert.Len(t, grid[0], 12)

	// Two example rows follow the header.
	require.GreaterOrEqual(t, len(grid), 3)
	assert.Equal(t, "नमस्कार", grid[1][0])
	assert.Equal(t, "namaskar", grid[1][1])
	assert.Equal(t, "धन्यवाद", grid[2][0])
}

func TestBuildCustomTemplate(t *testing.T) {
	columns := []model.DictionaryColumnDefinition{
		{ColumnName: "Headword", FieldMapping: "wordMaithili", ColumnOrder: 0, ExampleValue: strptr("पानि")},
		{ColumnName: "English Meaning", FieldMapping: "meaning.english", ColumnOrder: 1, ExampleValue: strptr("water")},
		{ColumnName: "Etymology", FieldMapping: "etymology", ColumnOrder: 2},
	}

	data, err := BuildTemplate(columns)
	require.NoError(t, err)

	grid, err := ReadGrid(bytes.NewReader(data))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(grid), 2)

	assert.Equal(t, []string{"Headword", "English Meaning", "Etymology"}, grid[0])
	assert.Equal(t, "पानि", grid[1][0])
	assert.Equal(t, "water", grid[1][1])
}

func TestTemplateFilename(t *testing.T) {
	assert.Equal(t, "maithili-dictionary-template.xlsx", TemplateFilename(""))
	assert.Equal(t, "maithili-dictionary-kalyani-sabdkosh-template.xlsx", TemplateFilename("Kalyani Sabdkosh"))
}
