// Package columns manages per-dictionary spreadsheet column layouts. Each
// dictionary may define its own column order; the bulk importer and template
// generator consume the active layout ordered by columnOrder.
package columns

import (
	"context"
	"fmt"

	"github.com/maithilikosh/api/internal/apperr"
	"github.com/maithilikosh/api/internal/model"
)

var (
	ErrDictionaryNotFound = fmt.Errorf("%w: dictionary", apperr.ErrNotFound)
	ErrColumnNotFound     = fmt.Errorf("%w: column", apperr.ErrNotFound)
	ErrOrderTaken         = fmt.Errorf("%w: column order already exists for this dictionary", apperr.ErrConflict)
)

type Store interface {
	DictionaryExists(ctx context.Context, dictionaryID string) (bool, error)
	FindByID(ctx context.Context, columnID string) (*model.DictionaryColumnDefinition, error)
	ActiveByOrder(ctx context.Context, dictionaryID string, order int) (*model.DictionaryColumnDefinition, error)
	List(ctx context.Context, dictionaryID string, activeOnly bool) ([]model.DictionaryColumnDefinition, error)
	Create(ctx context.Context, col *model.DictionaryColumnDefinition) error
	Save(ctx context.Context, col *model.DictionaryColumnDefinition) error
	Delete(ctx context.Context, columnID string) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns a dictionary's column definitions ordered by columnOrder.
func (s *Service) List(ctx context.Context, dictionaryID string, activeOnly bool) ([]model.DictionaryColumnDefinition, error) {
	return s.store.List(ctx, dictionaryID, activeOnly)
}

// Create adds a column to a dictionary's layout. The column order must be
// free among the dictionary's active columns.
func (s *Service) Create(ctx context.Context, col *model.DictionaryColumnDefinition) error {
	if col.ColumnName == "" || col.FieldMapping == "" {
		return fmt.Errorf("%w: columnName and fieldMapping are required", apperr.ErrValidation)
	}

	exists, err := s.store.DictionaryExists(ctx, col.DictionaryID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrDictionaryNotFound
	}

	taken, err := s.store.ActiveByOrder(ctx, col.DictionaryID, col.ColumnOrder)
	if err != nil {
		return err
	}
	if taken != nil {
		return ErrOrderTaken
	}

	if col.DataType == "" {
		col.DataType = "text"
	}
	col.IsActive = true
	return s.store.Create(ctx, col)
}

// UpdateInput carries the mutable fields of a column definition.
type UpdateInput struct {
	ColumnName         string
	ColumnNameMaithili *string
	FieldMapping       string
	ColumnOrder        int
	IsRequired         bool
	DataType           string
	DefaultValue       *string
	ValidationRule     *string
	HelpText           *string
	ExampleValue       *string
	IsActive           bool
}

func (s *Service) Update(ctx context.Context, columnID string, in UpdateInput) (*model.DictionaryColumnDefinition, error) {
	col, err := s.store.FindByID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if col == nil {
		return nil, ErrColumnNotFound
	}

	if in.IsActive && in.ColumnOrder != col.ColumnOrder {
		taken, err := s.store.ActiveByOrder(ctx, col.DictionaryID, in.ColumnOrder)
		if err != nil {
			return nil, err
		}
		if taken != nil && taken.ID != col.ID {
			return nil, ErrOrderTaken
		}
	}

	col.ColumnName = in.ColumnName
	col.ColumnNameMaithili = in.ColumnNameMaithili
	col.FieldMapping = in.FieldMapping
	col.ColumnOrder = in.ColumnOrder
	col.IsRequired = in.IsRequired
	col.DataType = in.DataType
	if col.DataType == "" {
		col.DataType = "text"
	}
	col.DefaultValue = in.DefaultValue
	col.ValidationRule = in.ValidationRule
	col.HelpText = in.HelpText
	col.ExampleValue = in.ExampleValue
	col.IsActive = in.IsActive

	if err := s.store.Save(ctx, col); err != nil {
		return nil, err
	}
	return col, nil
}

func (s *Service) Delete(ctx context.Context, columnID string) error {
	col, err := s.store.FindByID(ctx, columnID)
	if err != nil {
		return err
	}
	if col == nil {
		return ErrColumnNotFound
	}
	return s.store.Delete(ctx, columnID)
}
