package importer

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maithilikosh/api/internal/model"
)

type fakeStore struct {
	words  []*model.Word
	params []model.WordParameter
	nextID int
}

func (s *fakeStore) FindDuplicate(_ context.Context, dictID, headword string) (*model.Word, error) {
	for _, w := range s.words {
		if w.DictionaryID == dictID && w.WordMaithili == headword {
			return w, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) CreateWord(_ context.Context, word *model.Word) error {
	s.nextID++
	word.ID = fmt.Sprintf("word-%d", s.nextID)
	s.words = append(s.words, word)
	return nil
}

func (s *fakeStore) CreateParameters(_ context.Context, params []model.WordParameter) error {
	s.params = append(s.params, params...)
	return nil
}

func testParamDefs() map[string]model.ParameterDefinition {
	return map[string]model.ParameterDefinition{
		"meaning": {ID: "def-meaning", ParameterKey: "meaning", ParameterType: model.ParameterTypeMultilingual},
		"example": {ID: "def-example", ParameterKey: "example", ParameterType: model.ParameterTypeText},
	}
}

func TestProcessDefaultLayout(t *testing.T) {
	store := &fakeStore{}
	proc := NewProcessor(store)

	grid := [][]string{
		{"Word (Maithili)", "Word (Romanized)", "Pronunciation", "Word Type", "Meaning (English)", "Meaning (Hindi)", "Example (English)", "Example (Hindi)", "Example (Maithili)"},
		{"नमस्कार", "namaskaar", "nə-məs-kɑːr", "noun", "Hello", "नमस्ते", "Namaskaar!", "", ""},
	}

	result, err := proc.Process(context.Background(), "dict-1", grid, nil, testParamDefs(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, result.Errors)
	require.Len(t, store.words, 1)

	word := store.words[0]
	assert.Equal(t, "नमस्कार", word.WordMaithili)
	assert.Equal(t, model.WordStatusDraft, word.Status)
	require.NotNil(t, word.WordRomanized)
	assert.Equal(t, "namaskaar", *word.WordRomanized)
	require.NotNil(t, word.CreatedByID)
	assert.Equal(t, "user-1", *word.CreatedByID)

	require.Len(t, store.params, 3)
	assert.Equal(t, "meaning", store.params[0].ParameterKey)
	assert.True(t, store.params[0].IsPrimary)
	require.NotNil(t, store.params[0].Language)
	assert.Equal(t, "english", *store.params[0].Language)
	assert.False(t, store.params[1].IsPrimary)
	assert.Equal(t, "example", store.params[2].ParameterKey)
}

func TestProcessRowIsolation(t *testing.T) {
	store := &fakeStore{}
	proc := NewProcessor(store)

	grid := [][]string{
		{"Word (Maithili)", "", "", "", "Meaning (English)"},
		{"एक", "", "", "", "one"},
		{"दू", "", "", "", "two"},
		{"", "", "", "", "missing headword"},
		{"चारि", "", "", "", "four"},
		{"पाँच", "", "", "", "five"},
	}

	result, err := proc.Process(context.Background(), "dict-1", grid, nil, testParamDefs(), "")
	require.NoError(t, err)

	assert.Equal(t, 4, result.Created)
	assert.Equal(t, 1, result.Errors)
	require.Len(t, result.ErrorDetails, 1)
	assert.Contains(t, result.ErrorDetails[0], "Row 4")
	assert.Contains(t, result.ErrorDetails[0], "Word (Maithili)")
	assert.Equal(t, []string{"एक", "दू", "चारि", "पाँच"}, result.CreatedWords)
}

func TestProcessDuplicateGuard(t *testing.T) {
	store := &fakeStore{}
	store.words = append(store.words, &model.Word{ID: "w0", DictionaryID: "dict-1", WordMaithili: "पानि"})
	proc := NewProcessor(store)

	grid := [][]string{
		{"Word (Maithili)", "", "", "", "Meaning (English)"},
		{"पानि", "", "", "", "water"},
	}

	result, err := proc.Process(context.Background(), "dict-1", grid, nil, testParamDefs(), "")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Errors)
	assert.Contains(t, result.ErrorDetails[0], "already exists in this dictionary")
	require.Len(t, store.words, 1)
}

func TestProcessMissingRequiredMeaning(t *testing.T) {
	proc := NewProcessor(&fakeStore{})

	grid := [][]string{
		{"Word (Maithili)", "", "", "", "Meaning (English)"},
		{"गाछ", "", "", "", ""},
	}

	result, err := proc.Process(context.Background(), "dict-1", grid, nil, testParamDefs(), "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Errors)
	assert.Equal(t, "Row 2: Missing required fields: Meaning (English)", result.ErrorDetails[0])
}

func TestProcessCustomColumns(t *testing.T) {
	store := &fakeStore{}
	proc := NewProcessor(store)

	cols := []model.DictionaryColumnDefinition{
		{ColumnName: "Entry", FieldMapping: "wordMaithili", ColumnOrder: 1, IsRequired: true},
		{ColumnName: "Gloss", FieldMapping: "meaning.english", ColumnOrder: 2},
		{ColumnName: "Origin", FieldMapping: "etymology", ColumnOrder: 3},
	}
	defs := testParamDefs()
	defs["etymology"] = model.ParameterDefinition{ID: "def-ety", ParameterKey: "etymology"}

	grid := [][]string{
		{"Entry", "Gloss", "Origin"},
		{"आम", "mango", "Sanskrit आम्र"},
	}

	result, err := proc.Process(context.Background(), "dict-1", grid, cols, defs, "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	require.Len(t, store.params, 2)
	assert.Equal(t, "meaning", store.params[0].ParameterKey)
	assert.Equal(t, "etymology", store.params[1].ParameterKey)
	assert.Nil(t, store.params[1].Language)
}

func TestProcessUnknownParameterKeyDropped(t *testing.T) {
	store := &fakeStore{}
	proc := NewProcessor(store)

	cols := []model.DictionaryColumnDefinition{
		{ColumnName: "Entry", FieldMapping: "wordMaithili", ColumnOrder: 1, IsRequired: true},
		{ColumnName: "Mystery", FieldMapping: "nosuchkey", ColumnOrder: 2},
	}

	grid := [][]string{
		{"Entry", "Mystery"},
		{"धान", "???"},
	}

	result, err := proc.Process(context.Background(), "dict-1", grid, cols, testParamDefs(), "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Empty(t, store.params)
}

type failingStore struct {
	fakeStore
	failOn string
}

func (s *failingStore) CreateWord(ctx context.Context, word *model.Word) error {
	if word.WordMaithili == s.failOn {
		return fmt.Errorf("insert failed")
	}
	return s.fakeStore.CreateWord(ctx, word)
}

func TestProcessStoreErrorDoesNotAbortBatch(t *testing.T) {
	store := &failingStore{failOn: "दू"}
	proc := NewProcessor(store)

	grid := [][]string{
		{"Word (Maithili)", "", "", "", "Meaning (English)"},
		{"एक", "", "", "", "one"},
		{"दू", "", "", "", "two"},
		{"तीन", "", "", "", "three"},
	}

	result, err := proc.Process(context.Background(), "dict-1", grid, nil, testParamDefs(), "")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Errors)
	assert.Contains(t, result.ErrorDetails[0], "Row 3")
	assert.Equal(t, []string{"एक", "तीन"}, result.CreatedWords)
}

func TestProcessSkipsEmptyRows(t *testing.T) {
	store := &fakeStore{}
	proc := NewProcessor(store)

	grid := [][]string{
		{"Word (Maithili)", "", "", "", "Meaning (English)"},
		{"", "", "", "", ""},
		{"सेब", "", "", "", "apple"},
		{},
	}

	result, err := proc.Process(context.Background(), "dict-1", grid, nil, testParamDefs(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, result.Errors)
}
