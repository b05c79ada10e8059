package suggestion

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/maithilikosh/api/internal/model"
)

// GormStore backs the suggestion service with Postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func firstOrNil[T any](err error, v *T) (*T, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *GormStore) FindDictionary(ctx context.Context, id string) (*model.Dictionary, error) {
	var dict model.Dictionary
	err := s.db.WithContext(ctx).First(&dict, "id = ?", id).Error
	return firstOrNil(err, &dict)
}

func (s *GormStore) FindWord(ctx context.Context, id string) (*model.Word, error) {
	var word model.Word
	err := s.db.WithContext(ctx).First(&word, "id = ?", id).Error
	return firstOrNil(err, &word)
}

func (s *GormStore) FindByID(ctx context.Context, id string) (*model.EditSuggestion, error) {
	var sug model.EditSuggestion
	err := s.db.WithContext(ctx).
		Preload("Word").Preload("Dictionary").Preload("Reviewer").
		First(&sug, "id = ?", id).Error
	return firstOrNil(err, &sug)
}

func (s *GormStore) List(ctx context.Context, status string) ([]model.EditSuggestion, error) {
	q := s.db.WithContext(ctx).Preload("Word").Preload("Dictionary")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var sugs []model.EditSuggestion
	err := q.Order("created_at DESC").Find(&sugs).Error
	return sugs, err
}

func (s *GormStore) Create(ctx context.Context, sug *model.EditSuggestion) error {
	return s.db.WithContext(ctx).Create(sug).Error
}

func (s *GormStore) Save(ctx context.Context, sug *model.EditSuggestion) error {
	return s.db.WithContext(ctx).Save(sug).Error
}

// CreateWord inserts the word and its parameter rows in one transaction.
func (s *GormStore) CreateWord(ctx context.Context, word *model.Word, params []model.WordParameter) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(word).Error; err != nil {
			return err
		}
		if len(params) == 0 {
			return nil
		}
		for i := range params {
			params[i].WordID = word.ID
		}
		return tx.Create(&params).Error
	})
}

func (s *GormStore) SaveWord(ctx context.Context, word *model.Word) error {
	return s.db.WithContext(ctx).Save(word).Error
}

// UpdateParameterText rewrites the text of every parameter row on the word
// matching the key (and language, when given).
func (s *GormStore) UpdateParameterText(ctx context.Context, wordID, key string, language *string, text string) error {
	q := s.db.WithContext(ctx).Model(&model.WordParameter{}).
		Where("word_id = ? AND parameter_key = ?", wordID, key)
	if language != nil {
		q = q.Where("language = ?", *language)
	}
	return q.Update("content_text", text).Error
}
