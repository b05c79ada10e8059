package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name    string
		mapping string
		want    Target
	}{
		{
			name:    "direct headword field",
			mapping: "wordMaithili",
			want:    Target{Kind: Direct, Field: FieldWordMaithili},
		},
		{
			name:    "direct romanized field",
			mapping: "wordRomanized",
			want:    Target{Kind: Direct, Field: FieldWordRomanized},
		},
		{
			name:    "dotted parameter path",
			mapping: "meaning.english",
			want:    Target{Kind: Parameter, Key: "meaning", Language: "english"},
		},
		{
			name:    "bare parameter key",
			mapping: "etymology",
			want:    Target{Kind: Parameter, Key: "etymology"},
		},
		{
			name:    "unknown key falls through as parameter",
			mapping: "synonyms",
			want:    Target{Kind: Parameter, Key: "synonyms"},
		},
		{
			name:    "surrounding whitespace trimmed",
			mapping: " meaning.hindi ",
			want:    Target{Kind: Parameter, Key: "meaning", Language: "hindi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTarget(tt.mapping))
		})
	}
}

func TestMapRowDefaultLayout(t *testing.T) {
	row := []string{"नमस्कार", "namaskar", "/nəməskɑːr/", "noun", "Greeting", "नमस्कार", "Hello there", "", "अहाँ केहन छी"}

	data := MapRow(row, DefaultTargets())

	assert.Equal(t, "नमस्कार", data.Field(FieldWordMaithili))
	assert.Equal(t, "namaskar", data.Field(FieldWordRomanized))
	assert.Equal(t, "noun", data.Field(FieldWordType))
	assert.Equal(t, "Greeting", data.Param("meaning", "english"))
	assert.Equal(t, "नमस्कार", data.Param("meaning", "hindi"))
	assert.Equal(t, "Hello there", data.Param("example", "english"))
	assert.Equal(t, "", data.Param("example", "hindi"))
	assert.Equal(t, "अहाँ केहन छी", data.Param("example", "maithili"))
}

func TestMapRowShortRow(t *testing.T) {
	// Rows may have fewer cells than targets; missing cells read as empty.
	data := MapRow([]string{"बिलाड़ि"}, DefaultTargets())

	assert.Equal(t, "बिलाड़ि", data.Field(FieldWordMaithili))
	assert.Equal(t, "", data.Field(FieldWordRomanized))
	assert.Equal(t, "", data.Param("meaning", "english"))
}

func TestMapRowTrimsCells(t *testing.T) {
	data := MapRow([]string{"  पानि  ", "", "", "", "  water  "}, DefaultTargets())

	assert.Equal(t, "पानि", data.Field(FieldWordMaithili))
	assert.Equal(t, "water", data.Param("meaning", "english"))
}

func TestMapRowCustomTargets(t *testing.T) {
	targets := []Target{
		{Kind: Direct, Field: FieldWordMaithili},
		{Kind: Parameter, Key: "etymology"},
	}

	data := MapRow([]string{"गाछ", "from Sanskrit"}, targets)

	assert.Equal(t, "गाछ", data.Field(FieldWordMaithili))
	assert.Equal(t, "from Sanskrit", data.Param("etymology", ""))
	assert.Equal(t, "from Sanskrit", data.Value(targets[1]))
}
