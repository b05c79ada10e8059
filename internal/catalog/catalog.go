// Package catalog is the global registry of parameter definitions: the
// attribute types a word may carry. Keys are unique and immutable; callers
// validate submitted parameter values against the catalog and silently drop
// values whose key has no definition.
package catalog

import (
	"context"
	"fmt"

	"github.com/maithilikosh/api/internal/apperr"
	"github.com/maithilikosh/api/internal/model"
)

var (
	ErrKeyExists = fmt.Errorf("%w: parameter key already exists", apperr.ErrConflict)
	ErrNotFound  = fmt.Errorf("%w: parameter", apperr.ErrNotFound)
	// ErrKeyInUse blocks deleting a definition that word values still
	// reference, keeping the catalog authoritative for stored values.
	ErrKeyInUse = fmt.Errorf("%w: parameter key is referenced by word values", apperr.ErrConflict)
)

type Store interface {
	FindByID(ctx context.Context, id string) (*model.ParameterDefinition, error)
	FindByKey(ctx context.Context, key string) (*model.ParameterDefinition, error)
	FindByKeys(ctx context.Context, keys []string) ([]model.ParameterDefinition, error)
	List(ctx context.Context, activeOnly bool) ([]model.ParameterDefinition, error)
	Create(ctx context.Context, def *model.ParameterDefinition) error
	Save(ctx context.Context, def *model.ParameterDefinition) error
	Delete(ctx context.Context, id string) error
	CountValues(ctx context.Context, key string) (int64, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create registers a new definition. The key must not collide with any
// existing definition, active or not.
func (s *Service) Create(ctx context.Context, def *model.ParameterDefinition) error {
	if def.ParameterKey == "" || def.ParameterName == "" {
		return fmt.Errorf("%w: parameterKey and parameterName are required", apperr.ErrValidation)
	}

	existing, err := s.store.FindByKey(ctx, def.ParameterKey)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrKeyExists
	}

	if def.ParameterType == "" {
		def.ParameterType = model.ParameterTypeText
	}
	if def.CanEdit == "" {
		def.CanEdit = model.CanEditAll
	}
	return s.store.Create(ctx, def)
}

// UpdateInput carries the mutable fields of a definition. The key is
// immutable and deliberately absent.
type UpdateInput struct {
	ParameterName         string
	ParameterNameMaithili *string
	ParameterType         string
	IsMultilingual        bool
	SupportedLanguages    []string
	IsRequired            bool
	OrderIndex            int
	IsActive              bool
	CanEdit               string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*model.ParameterDefinition, error) {
	def, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, ErrNotFound
	}

	def.ParameterName = in.ParameterName
	def.ParameterNameMaithili = in.ParameterNameMaithili
	def.ParameterType = in.ParameterType
	if def.ParameterType == "" {
		def.ParameterType = model.ParameterTypeText
	}
	def.IsMultilingual = in.IsMultilingual
	def.SupportedLanguages = in.SupportedLanguages
	def.IsRequired = in.IsRequired
	def.OrderIndex = in.OrderIndex
	def.IsActive = in.IsActive
	def.CanEdit = in.CanEdit
	if def.CanEdit == "" {
		def.CanEdit = model.CanEditAll
	}

	if err := s.store.Save(ctx, def); err != nil {
		return nil, err
	}
	return def, nil
}

// Delete removes a definition. Definitions whose key is still referenced by
// stored word values cannot be deleted.
func (s *Service) Delete(ctx context.Context, id string) error {
	def, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if def == nil {
		return ErrNotFound
	}

	count, err := s.store.CountValues(ctx, def.ParameterKey)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrKeyInUse
	}

	return s.store.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (*model.ParameterDefinition, error) {
	def, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, ErrNotFound
	}
	return def, nil
}

// ListActive returns active definitions ordered by orderIndex.
func (s *Service) ListActive(ctx context.Context) ([]model.ParameterDefinition, error) {
	return s.store.List(ctx, true)
}

// ListAll returns every definition regardless of the active flag.
func (s *Service) ListAll(ctx context.Context) ([]model.ParameterDefinition, error) {
	return s.store.List(ctx, false)
}

// DefinitionsByKey resolves the given keys against the catalog. Keys with no
// definition are simply absent from the result; callers drop those values.
func (s *Service) DefinitionsByKey(ctx context.Context, keys []string) (map[string]model.ParameterDefinition, error) {
	seen := make(map[string]struct{}, len(keys))
	unique := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, k)
	}

	defs, err := s.store.FindByKeys(ctx, unique)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]model.ParameterDefinition, len(defs))
	for _, def := range defs {
		byKey[def.ParameterKey] = def
	}
	return byKey, nil
}
