package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/maithilikosh/api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	defs   map[string]*model.ParameterDefinition
	values map[string]int64 // parameter key -> referencing value count
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		defs:   make(map[string]*model.ParameterDefinition),
		values: make(map[string]int64),
	}
}

func (s *fakeStore) FindByID(_ context.Context, id string) (*model.ParameterDefinition, error) {
	def, ok := s.defs[id]
	if !ok {
		return nil, nil
	}
	copied := *def
	return &copied, nil
}

func (s *fakeStore) FindByKey(_ context.Context, key string) (*model.ParameterDefinition, error) {
	for _, def := range s.defs {
		if def.ParameterKey == key {
			copied := *def
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) FindByKeys(_ context.Context, keys []string) ([]model.ParameterDefinition, error) {
	var out []model.ParameterDefinition
	for _, key := range keys {
		for _, def := range s.defs {
			if def.ParameterKey == key {
				out = append(out, *def)
			}
		}
	}
	return out, nil
}

func (s *fakeStore) List(_ context.Context, activeOnly bool) ([]model.ParameterDefinition, error) {
	var out []model.ParameterDefinition
	for _, def := range s.defs {
		if activeOnly && !def.IsActive {
			continue
		}
		out = append(out, *def)
	}
	return out, nil
}

func (s *fakeStore) Create(_ context.Context, def *model.ParameterDefinition) error {
	if def.ID == "" {
		def.ID = uuid.NewString()
	}
	copied := *def
	s.defs[def.ID] = &copied
	return nil
}

func (s *fakeStore) Save(_ context.Context, def *model.ParameterDefinition) error {
	copied := *def
	s.defs[def.ID] = &copied
	return nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	delete(s.defs, id)
	return nil
}

func (s *fakeStore) CountValues(_ context.Context, key string) (int64, error) {
	return s.values[key], nil
}

func TestCreateDuplicateKeyConflicts(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	first := &model.ParameterDefinition{ParameterKey: "meaning", ParameterName: "Meaning", IsActive: true}
	require.NoError(t, svc.Create(ctx, first))

	second := &model.ParameterDefinition{ParameterKey: "meaning", ParameterName: "Meaning Again"}
	err := svc.Create(ctx, second)
	assert.ErrorIs(t, err, ErrKeyExists)
}

func TestCreateAppliesDefaults(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	def := &model.ParameterDefinition{ParameterKey: "usage", ParameterName: "Usage"}
	require.NoError(t, svc.Create(context.Background(), def))

	assert.Equal(t, model.ParameterTypeText, def.ParameterType)
	assert.Equal(t, model.CanEditAll, def.CanEdit)
}

func TestCreateRequiresKeyAndName(t *testing.T) {
	svc := NewService(newFakeStore())

	err := svc.Create(context.Background(), &model.ParameterDefinition{ParameterName: "No Key"})
	assert.Error(t, err)
}

func TestUpdateKeepsKeyImmutable(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	def := &model.ParameterDefinition{ParameterKey: "etymology", ParameterName: "Etymology", IsActive: true}
	require.NoError(t, svc.Create(ctx, def))

	updated, err := svc.Update(ctx, def.ID, UpdateInput{
		ParameterName: "Word Origin",
		ParameterType: model.ParameterTypeRichText,
		OrderIndex:    7,
		IsActive:      true,
		CanEdit:       model.CanEditAdminOnly,
	})
	require.NoError(t, err)

	assert.Equal(t, "etymology", updated.ParameterKey)
	assert.Equal(t, "Word Origin", updated.ParameterName)
	assert.Equal(t, model.ParameterTypeRichText, updated.ParameterType)
	assert.Equal(t, 7, updated.OrderIndex)
}

func TestUpdateMissingDefinition(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.Update(context.Background(), "absent", UpdateInput{ParameterName: "X"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRestrictedWhenValuesExist(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	def := &model.ParameterDefinition{ParameterKey: "meaning", ParameterName: "Meaning", IsActive: true}
	require.NoError(t, svc.Create(ctx, def))
	store.values["meaning"] = 12

	err := svc.Delete(ctx, def.ID)
	assert.ErrorIs(t, err, ErrKeyInUse)

	store.values["meaning"] = 0
	require.NoError(t, svc.Delete(ctx, def.ID))

	_, err = svc.Get(ctx, def.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDefinitionsByKeyDropsUnknown(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &model.ParameterDefinition{ParameterKey: "meaning", ParameterName: "Meaning", IsActive: true}))

	byKey, err := svc.DefinitionsByKey(ctx, []string{"meaning", "meaning", "bogus"})
	require.NoError(t, err)

	assert.Len(t, byKey, 1)
	_, ok := byKey["meaning"]
	assert.True(t, ok)
	_, ok = byKey["bogus"]
	assert.False(t, ok)
}
