package catalog

import (
	"context"
	"errors"

	"github.com/maithilikosh/api/internal/model"
	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindByID(ctx context.Context, id string) (*model.ParameterDefinition, error) {
	var def model.ParameterDefinition
	err := s.db.WithContext(ctx).First(&def, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &def, nil
}

func (s *GormStore) FindByKey(ctx context.Context, key string) (*model.ParameterDefinition, error) {
	var def model.ParameterDefinition
	err := s.db.WithContext(ctx).First(&def, "parameter_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &def, nil
}

func (s *GormStore) FindByKeys(ctx context.Context, keys []string) ([]model.ParameterDefinition, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	var defs []model.ParameterDefinition
	err := s.db.WithContext(ctx).Where("parameter_key IN ?", keys).Find(&defs).Error
	return defs, err
}

func (s *GormStore) List(ctx context.Context, activeOnly bool) ([]model.ParameterDefinition, error) {
	query := s.db.WithContext(ctx).Order("order_index ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var defs []model.ParameterDefinition
	err := query.Find(&defs).Error
	return defs, err
}

func (s *GormStore) Create(ctx context.Context, def *model.ParameterDefinition) error {
	return s.db.WithContext(ctx).Create(def).Error
}

func (s *GormStore) Save(ctx context.Context, def *model.ParameterDefinition) error {
	return s.db.WithContext(ctx).Save(def).Error
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&model.ParameterDefinition{}, "id = ?", id).Error
}

func (s *GormStore) CountValues(ctx context.Context, key string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.WordParameter{}).Where("parameter_key = ?", key).Count(&count).Error
	return count, err
}
