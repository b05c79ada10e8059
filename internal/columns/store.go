package columns

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/maithilikosh/api/internal/model"
)

// GormStore backs the column service with Postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) DictionaryExists(ctx context.Context, dictionaryID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Dictionary{}).
		Where("id = ?", dictionaryID).Count(&count).Error
	return count > 0, err
}

func (s *GormStore) FindByID(ctx context.Context, columnID string) (*model.DictionaryColumnDefinition, error) {
	var col model.DictionaryColumnDefinition
	err := s.db.WithContext(ctx).First(&col, "id = ?", columnID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &col, nil
}

func (s *GormStore) ActiveByOrder(ctx context.Context, dictionaryID string, order int) (*model.DictionaryColumnDefinition, error) {
	var col model.DictionaryColumnDefinition
	err := s.db.WithContext(ctx).
		Where("dictionary_id = ? AND column_order = ? AND is_active = ?", dictionaryID, order, true).
		First(&col).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &col, nil
}

func (s *GormStore) List(ctx context.Context, dictionaryID string, activeOnly bool) ([]model.DictionaryColumnDefinition, error) {
	q := s.db.WithContext(ctx).Where("dictionary_id = ?", dictionaryID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var cols []model.DictionaryColumnDefinition
	err := q.Order("column_order ASC").Find(&cols).Error
	return cols, err
}

func (s *GormStore) Create(ctx context.Context, col *model.DictionaryColumnDefinition) error {
	return s.db.WithContext(ctx).Create(col).Error
}

func (s *GormStore) Save(ctx context.Context, col *model.DictionaryColumnDefinition) error {
	return s.db.WithContext(ctx).Save(col).Error
}

func (s *GormStore) Delete(ctx context.Context, columnID string) error {
	return s.db.WithContext(ctx).Delete(&model.DictionaryColumnDefinition{}, "id = ?", columnID).Error
}
