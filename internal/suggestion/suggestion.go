// Package suggestion handles public edit suggestions: anonymous visitors
// propose new entries or corrections, moderators review them, and approved
// suggestions are materialised into draft words.
package suggestion

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/maithilikosh/api/internal/apperr"
	"github.com/maithilikosh/api/internal/mapping"
	"github.com/maithilikosh/api/internal/model"
)

var (
	ErrNotFound        = fmt.Errorf("%w: suggestion", apperr.ErrNotFound)
	ErrNotMain         = fmt.Errorf("%w: suggestions are only accepted for the main dictionary", apperr.ErrValidation)
	ErrAlreadyReviewed = fmt.Errorf("%w: suggestion has already been reviewed", apperr.ErrConflict)
)

type Store interface {
	FindDictionary(ctx context.Context, id string) (*model.Dictionary, error)
	FindWord(ctx context.Context, id string) (*model.Word, error)
	FindByID(ctx context.Context, id string) (*model.EditSuggestion, error)
	List(ctx context.Context, status string) ([]model.EditSuggestion, error)
	Create(ctx context.Context, s *model.EditSuggestion) error
	Save(ctx context.Context, s *model.EditSuggestion) error
	CreateWord(ctx context.Context, word *model.Word, params []model.WordParameter) error
	SaveWord(ctx context.Context, word *model.Word) error
	UpdateParameterText(ctx context.Context, wordID, key string, language *string, text string) error
}

// Definitions resolves parameter keys against the catalog.
type Definitions interface {
	DefinitionsByKey(ctx context.Context, keys []string) (map[string]model.ParameterDefinition, error)
}

type Service struct {
	store Store
	defs  Definitions
}

func NewService(store Store, defs Definitions) *Service {
	return &Service{store: store, defs: defs}
}

// wordInput is the core-field payload carried in suggestionData.
type wordInput struct {
	WordMaithili  string `json:"wordMaithili"`
	WordRomanized string `json:"wordRomanized"`
	Pronunciation string `json:"pronunciation"`
	WordType      string `json:"wordType"`
}

// Create records a public suggestion. Contact details are mandatory and only
// the main dictionary accepts suggestions.
func (s *Service) Create(ctx context.Context, sug *model.EditSuggestion) error {
	if sug.Email == "" || sug.Phone == "" {
		return fmt.Errorf("%w: email and phone are required", apperr.ErrValidation)
	}
	if sug.DictionaryID == "" {
		return fmt.Errorf("%w: dictionaryId is required", apperr.ErrValidation)
	}
	switch sug.SuggestionType {
	case model.SuggestionAddNewWord:
	case model.SuggestionEditExisting:
		if sug.WordID == nil {
			return fmt.Errorf("%w: wordId is required for edit suggestions", apperr.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: invalid suggestionType", apperr.ErrValidation)
	}

	dict, err := s.store.FindDictionary(ctx, sug.DictionaryID)
	if err != nil {
		return err
	}
	if dict == nil {
		return fmt.Errorf("%w: dictionary", apperr.ErrNotFound)
	}
	if !dict.IsMain {
		return ErrNotMain
	}

	sug.Status = model.SuggestionStatusPending
	sug.ReviewedByID = nil
	sug.ReviewedAt = nil
	return s.store.Create(ctx, sug)
}

func (s *Service) Get(ctx context.Context, id string) (*model.EditSuggestion, error) {
	sug, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sug == nil {
		return nil, ErrNotFound
	}
	return sug, nil
}

// List returns suggestions, newest first, optionally filtered by status.
func (s *Service) List(ctx context.Context, status string) ([]model.EditSuggestion, error) {
	return s.store.List(ctx, status)
}

// Reject closes a suggestion without applying it.
func (s *Service) Reject(ctx context.Context, id, reviewerID, notes string) (*model.EditSuggestion, error) {
	return s.review(ctx, id, reviewerID, notes, model.SuggestionStatusRejected, nil)
}

// MarkUnderReview flags a suggestion as being worked on.
func (s *Service) MarkUnderReview(ctx context.Context, id, reviewerID string) (*model.EditSuggestion, error) {
	sug, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sug.Status = model.SuggestionStatusUnderReview
	sug.ReviewedByID = &reviewerID
	if err := s.store.Save(ctx, sug); err != nil {
		return nil, err
	}
	return sug, nil
}

// Approve applies a pending suggestion and marks it approved. New-word
// suggestions become draft entries credited to the reviewer; edit suggestions
// patch the target word's core fields and parameter texts.
func (s *Service) Approve(ctx context.Context, id, reviewerID, notes string) (*model.EditSuggestion, error) {
	return s.review(ctx, id, reviewerID, notes, model.SuggestionStatusApproved, func(ctx context.Context, sug *model.EditSuggestion) error {
		switch sug.SuggestionType {
		case model.SuggestionAddNewWord:
			return s.applyAdd(ctx, sug, reviewerID)
		case model.SuggestionEditExisting:
			return s.applyEdit(ctx, sug)
		}
		return nil
	})
}

func (s *Service) review(ctx context.Context, id, reviewerID, notes, status string, apply func(context.Context, *model.EditSuggestion) error) (*model.EditSuggestion, error) {
	sug, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sug.Status == model.SuggestionStatusApproved || sug.Status == model.SuggestionStatusRejected {
		return nil, ErrAlreadyReviewed
	}

	if apply != nil {
		if err := apply(ctx, sug); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	sug.Status = status
	sug.ReviewedByID = &reviewerID
	sug.ReviewedAt = &now
	sug.ReviewNotes = notes
	if err := s.store.Save(ctx, sug); err != nil {
		return nil, err
	}
	return sug, nil
}

func (s *Service) applyAdd(ctx context.Context, sug *model.EditSuggestion, reviewerID string) error {
	var in wordInput
	if err := json.Unmarshal(sug.SuggestionData, &in); err != nil {
		return fmt.Errorf("%w: malformed suggestion data", apperr.ErrValidation)
	}
	if in.WordMaithili == "" {
		return fmt.Errorf("%w: suggestion is missing the Maithili headword", apperr.ErrValidation)
	}

	word := &model.Word{
		DictionaryID: sug.DictionaryID,
		WordMaithili: in.WordMaithili,
		Status:       model.WordStatusDraft,
		CreatedByID:  &reviewerID,
	}
	if in.WordRomanized != "" {
		word.WordRomanized = &in.WordRomanized
	}
	if in.Pronunciation != "" {
		word.Pronunciation = &in.Pronunciation
	}
	if in.WordType != "" {
		word.WordType = &in.WordType
	}

	params, err := s.buildParameters(ctx, sug.ParameterSuggestions)
	if err != nil {
		return err
	}
	return s.store.CreateWord(ctx, word, params)
}

func (s *Service) applyEdit(ctx context.Context, sug *model.EditSuggestion) error {
	if sug.WordID == nil {
		return fmt.Errorf("%w: edit suggestion has no target word", apperr.ErrValidation)
	}
	word, err := s.store.FindWord(ctx, *sug.WordID)
	if err != nil {
		return err
	}
	if word == nil {
		return fmt.Errorf("%w: word", apperr.ErrNotFound)
	}

	var in wordInput
	if err := json.Unmarshal(sug.SuggestionData, &in); err != nil {
		return fmt.Errorf("%w: malformed suggestion data", apperr.ErrValidation)
	}
	if in.WordMaithili != "" {
		word.WordMaithili = in.WordMaithili
	}
	if in.WordRomanized != "" {
		word.WordRomanized = &in.WordRomanized
	}
	if in.Pronunciation != "" {
		word.Pronunciation = &in.Pronunciation
	}
	if in.WordType != "" {
		word.WordType = &in.WordType
	}
	word.VersionNumber++
	if err := s.store.SaveWord(ctx, word); err != nil {
		return err
	}

	texts, err := parameterTexts(sug.ParameterSuggestions)
	if err != nil {
		return err
	}
	for _, pt := range texts {
		if err := s.store.UpdateParameterText(ctx, word.ID, pt.target.Key, languageOf(pt.target), pt.text); err != nil {
			return err
		}
	}
	return nil
}

type paramText struct {
	target mapping.Target
	text   string
}

// parameterTexts decodes a suggestion's parameter payload, a flat map of
// fieldMapping-style keys ("meaning.english", "etymology") to text values.
func parameterTexts(raw []byte) ([]paramText, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	values := map[string]string{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("%w: malformed parameter suggestions", apperr.ErrValidation)
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		if values[key] != "" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	out := make([]paramText, 0, len(keys))
	for _, key := range keys {
		out = append(out, paramText{target: mapping.ParseTarget(key), text: values[key]})
	}
	return out, nil
}

func languageOf(t mapping.Target) *string {
	if t.Language == "" {
		return nil
	}
	lang := t.Language
	return &lang
}

// buildParameters resolves a new-word suggestion's parameter payload against
// the catalog. WordID is filled in by the store once the word row exists.
func (s *Service) buildParameters(ctx context.Context, raw []byte) ([]model.WordParameter, error) {
	texts, err := parameterTexts(raw)
	if err != nil || len(texts) == 0 {
		return nil, err
	}

	keys := make([]string, 0, len(texts))
	for _, pt := range texts {
		keys = append(keys, pt.target.Key)
	}
	defs, err := s.defs.DefinitionsByKey(ctx, keys)
	if err != nil {
		return nil, err
	}

	var params []model.WordParameter
	order := 0
	for _, pt := range texts {
		def, ok := defs[pt.target.Key]
		if !ok {
			continue
		}
		text := pt.text
		params = append(params, model.WordParameter{
			ParameterDefinitionID: def.ID,
			ParameterKey:          pt.target.Key,
			Language:              languageOf(pt.target),
			ContentText:           &text,
			IsPrimary:             pt.target.Key == "meaning" && pt.target.Language == "english",
			OrderIndex:            order,
		})
		order++
	}
	return params, nil
}
