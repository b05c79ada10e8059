// Package mapping resolves spreadsheet column field mappings into typed
// targets: either a direct word field or a parameter value with an optional
// language tag. Dotted paths like "meaning.english" address a parameter in a
// specific language.
package mapping

import "strings"

type Kind int

const (
	// Direct targets a column of the words table.
	Direct Kind = iota
	// Parameter targets a word_parameters value by key (+ optional language).
	Parameter
)

// Direct word fields a column may map onto.
const (
	FieldWordMaithili  = "wordMaithili"
	FieldWordRomanized = "wordRomanized"
	FieldPronunciation = "pronunciation"
	FieldWordType      = "wordType"
)

var directFields = map[string]struct{}{
	FieldWordMaithili:  {},
	FieldWordRomanized: {},
	FieldPronunciation: {},
	FieldWordType:      {},
}

type Target struct {
	Kind     Kind
	Field    string // set when Kind == Direct
	Key      string // set when Kind == Parameter
	Language string // optional, Parameter only
}

// ParseTarget resolves a column definition's fieldMapping string. Anything
// that is not a known direct field is treated as a parameter key, so unknown
// keys flow through to catalog validation instead of failing here.
func ParseTarget(fieldMapping string) Target {
	fieldMapping = strings.TrimSpace(fieldMapping)

	if key, language, found := strings.Cut(fieldMapping, "."); found {
		return Target{Kind: Parameter, Key: key, Language: language}
	}

	if _, ok := directFields[fieldMapping]; ok {
		return Target{Kind: Direct, Field: fieldMapping}
	}

	return Target{Kind: Parameter, Key: fieldMapping}
}

// DefaultTargets is the fixed column layout applied when a dictionary has no
// custom column definitions: positions 0-8 of an uploaded row.
func DefaultTargets() []Target {
	return []Target{
		{Kind: Direct, Field: FieldWordMaithili},
		{Kind: Direct, Field: FieldWordRomanized},
		{Kind: Direct, Field: FieldPronunciation},
		{Kind: Direct, Field: FieldWordType},
		{Kind: Parameter, Key: "meaning", Language: "english"},
		{Kind: Parameter, Key: "meaning", Language: "hindi"},
		{Kind: Parameter, Key: "example", Language: "english"},
		{Kind: Parameter, Key: "example", Language: "hindi"},
		{Kind: Parameter, Key: "example", Language: "maithili"},
	}
}

// RowData holds one spreadsheet row after mapping targets are applied.
type RowData struct {
	fields map[string]string
	params map[string]string
}

func paramKey(key, language string) string {
	if language == "" {
		return key
	}
	return key + "." + language
}

// MapRow applies targets positionally to a row's cells. Cells beyond the
// target list are ignored; missing cells read as empty.
func MapRow(row []string, targets []Target) RowData {
	data := RowData{
		fields: make(map[string]string),
		params: make(map[string]string),
	}

	for i, target := range targets {
		value := ""
		if i < len(row) {
			value = strings.TrimSpace(row[i])
		}

		switch target.Kind {
		case Direct:
			data.fields[target.Field] = value
		case Parameter:
			data.params[paramKey(target.Key, target.Language)] = value
		}
	}

	return data
}

// Field returns the value mapped to a direct word field, or "".
func (r RowData) Field(name string) string {
	return r.fields[name]
}

// Param returns the value mapped to a parameter key and language, or "".
func (r RowData) Param(key, language string) string {
	return r.params[paramKey(key, language)]
}

// Value returns the value for an arbitrary target.
func (r RowData) Value(t Target) string {
	if t.Kind == Direct {
		return r.fields[t.Field]
	}
	return r.params[paramKey(t.Key, t.Language)]
}
