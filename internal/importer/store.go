package importer

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/maithilikosh/api/internal/model"
)

// GormStore backs the import processor with Postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindDuplicate(ctx context.Context, dictionaryID, wordMaithili string) (*model.Word, error) {
	var word model.Word
	err := s.db.WithContext(ctx).
		Where("dictionary_id = ? AND word_maithili = ?", dictionaryID, wordMaithili).
		First(&word).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &word, nil
}

func (s *GormStore) CreateWord(ctx context.Context, word *model.Word) error {
	return s.db.WithContext(ctx).Create(word).Error
}

func (s *GormStore) CreateParameters(ctx context.Context, params []model.WordParameter) error {
	return s.db.WithContext(ctx).Create(&params).Error
}
