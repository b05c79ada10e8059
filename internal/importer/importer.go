// Package importer turns uploaded spreadsheet grids into dictionary entries.
// Rows are processed independently: a bad row is reported and skipped while
// the rest of the batch continues.
package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/maithilikosh/api/internal/mapping"
	"github.com/maithilikosh/api/internal/middleware"
	"github.com/maithilikosh/api/internal/model"
)

// Store is the persistence surface the processor needs.
type Store interface {
	FindDuplicate(ctx context.Context, dictionaryID, wordMaithili string) (*model.Word, error)
	CreateWord(ctx context.Context, word *model.Word) error
	CreateParameters(ctx context.Context, params []model.WordParameter) error
}

// Result summarises one import batch.
type Result struct {
	Created      int      `json:"created"`
	Errors       int      `json:"errors"`
	CreatedWords []string `json:"createdWords"`
	ErrorDetails []string `json:"errorDetails"`
}

type column struct {
	name     string
	required bool
	target   mapping.Target
}

type Processor struct {
	store Store
}

func NewProcessor(store Store) *Processor {
	return &Processor{store: store}
}

// defaultColumns mirrors the fixed template layout used when a dictionary has
// no custom column definitions.
func defaultColumns() []column {
	targets := mapping.DefaultTargets()
	names := []string{
		"Word (Maithili)", "Word (Romanized)", "Pronunciation", "Word Type",
		"Meaning (English)", "Meaning (Hindi)",
		"Example (English)", "Example (Hindi)", "Example (Maithili)",
	}
	cols := make([]column, len(targets))
	for i, t := range targets {
		cols[i] = column{name: names[i], target: t}
	}
	cols[0].required = true
	cols[4].required = true
	return cols
}

func customColumns(defs []model.DictionaryColumnDefinition) []column {
	cols := make([]column, len(defs))
	for i, d := range defs {
		cols[i] = column{
			name:     d.ColumnName,
			required: d.IsRequired,
			target:   mapping.ParseTarget(d.FieldMapping),
		}
	}
	return cols
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Process imports a parsed grid into the given dictionary. colDefs, when
// non-empty, override the default column layout; paramDefs is the catalog of
// parameter keys the grid may reference. The header row is expected at index
// zero, so reported row numbers start at 2 to match the spreadsheet.
func (p *Processor) Process(ctx context.Context, dictionaryID string, grid [][]string, colDefs []model.DictionaryColumnDefinition, paramDefs map[string]model.ParameterDefinition, createdByID string) (*Result, error) {
	cols := defaultColumns()
	if len(colDefs) > 0 {
		cols = customColumns(colDefs)
	}
	targets := make([]mapping.Target, len(cols))
	for i, c := range cols {
		targets[i] = c.target
	}

	result := &Result{CreatedWords: []string{}, ErrorDetails: []string{}}
	if len(grid) <= 1 {
		return result, nil
	}

	for i, row := range grid[1:] {
		if emptyRow(row) {
			continue
		}
		rowNumber := i + 2

		// A failure in one row never aborts the batch.
		if err := p.processRow(ctx, dictionaryID, row, cols, targets, paramDefs, createdByID, rowNumber, result); err != nil {
			p.rowError(result, fmt.Sprintf("Row %d: %v", rowNumber, err))
		}
	}

	return result, nil
}

func (p *Processor) processRow(ctx context.Context, dictionaryID string, row []string, cols []column, targets []mapping.Target, paramDefs map[string]model.ParameterDefinition, createdByID string, rowNumber int, result *Result) error {
	data := mapping.MapRow(row, targets)

	var missing []string
	for _, c := range cols {
		if c.required && data.Value(c.target) == "" {
			missing = append(missing, c.name)
		}
	}
	if len(missing) > 0 {
		p.rowError(result, fmt.Sprintf("Row %d: Missing required fields: %s", rowNumber, strings.Join(missing, ", ")))
		return nil
	}

	headword := data.Field(mapping.FieldWordMaithili)
	if headword == "" {
		p.rowError(result, fmt.Sprintf("Row %d: Missing required fields: Word (Maithili)", rowNumber))
		return nil
	}

	existing, err := p.store.FindDuplicate(ctx, dictionaryID, headword)
	if err != nil {
		return err
	}
	if existing != nil {
		p.rowError(result, fmt.Sprintf("Row %d: Word %q already exists in this dictionary", rowNumber, headword))
		return nil
	}

	word := &model.Word{
		DictionaryID: dictionaryID,
		WordMaithili: headword,
		Status:       model.WordStatusDraft,
	}
	if createdByID != "" {
		word.CreatedByID = &createdByID
	}
	if v := data.Field(mapping.FieldWordRomanized); v != "" {
		word.WordRomanized = &v
	}
	if v := data.Field(mapping.FieldPronunciation); v != "" {
		word.Pronunciation = &v
	}
	if v := data.Field(mapping.FieldWordType); v != "" {
		word.WordType = &v
	}

	if err := p.store.CreateWord(ctx, word); err != nil {
		return err
	}

	params := buildParameters(word.ID, data, targets, paramDefs)
	if len(params) > 0 {
		if err := p.store.CreateParameters(ctx, params); err != nil {
			return err
		}
	}

	result.Created++
	result.CreatedWords = append(result.CreatedWords, headword)
	middleware.RecordImportRow(true)
	return nil
}

func (p *Processor) rowError(result *Result, detail string) {
	result.Errors++
	result.ErrorDetails = append(result.ErrorDetails, detail)
	middleware.RecordImportRow(false)
}

// buildParameters collects the row's parameter values in column order.
// Values whose key is absent from the catalog are dropped. The english
// meaning, when present, becomes the word's primary parameter.
func buildParameters(wordID string, data mapping.RowData, targets []mapping.Target, paramDefs map[string]model.ParameterDefinition) []model.WordParameter {
	var params []model.WordParameter
	order := 0
	for _, t := range targets {
		if t.Kind != mapping.Parameter {
			continue
		}
		value := data.Value(t)
		if value == "" {
			continue
		}
		def, ok := paramDefs[t.Key]
		if !ok {
			continue
		}

		param := model.WordParameter{
			WordID:                wordID,
			ParameterDefinitionID: def.ID,
			ParameterKey:          t.Key,
			ContentText:           &value,
			IsPrimary:             t.Key == "meaning" && t.Language == "english",
			OrderIndex:            order,
		}
		if t.Language != "" {
			lang := t.Language
			param.Language = &lang
		}
		params = append(params, param)
		order++
	}
	return params
}
