package columns

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maithilikosh/api/internal/apperr"
	"github.com/maithilikosh/api/internal/model"
)

type fakeStore struct {
	dictionaries map[string]bool
	cols         map[string]*model.DictionaryColumnDefinition
	nextID       int
}

func newFakeStore(dictIDs ...string) *fakeStore {
	s := &fakeStore{
		dictionaries: map[string]bool{},
		cols:         map[string]*model.DictionaryColumnDefinition{},
	}
	for _, id := range dictIDs {
		s.dictionaries[id] = true
	}
	return s
}

func (s *fakeStore) DictionaryExists(_ context.Context, id string) (bool, error) {
	return s.dictionaries[id], nil
}

func (s *fakeStore) FindByID(_ context.Context, id string) (*model.DictionaryColumnDefinition, error) {
	if c, ok := s.cols[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (s *fakeStore) ActiveByOrder(_ context.Context, dictID string, order int) (*model.DictionaryColumnDefinition, error) {
	for _, c := range s.cols {
		if c.DictionaryID == dictID && c.ColumnOrder == order && c.IsActive {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) List(_ context.Context, dictID string, activeOnly bool) ([]model.DictionaryColumnDefinition, error) {
	var out []model.DictionaryColumnDefinition
	for _, c := range s.cols {
		if c.DictionaryID != dictID {
			continue
		}
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ColumnOrder < out[j].ColumnOrder })
	return out, nil
}

func (s *fakeStore) Create(_ context.Context, col *model.DictionaryColumnDefinition) error {
	s.nextID++
	col.ID = fmt.Sprintf("col-%d", s.nextID)
	cp := *col
	s.cols[col.ID] = &cp
	return nil
}

func (s *fakeStore) Save(_ context.Context, col *model.DictionaryColumnDefinition) error {
	cp := *col
	s.cols[col.ID] = &cp
	return nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	delete(s.cols, id)
	return nil
}

func TestCreateColumn(t *testing.T) {
	store := newFakeStore("dict-1")
	svc := NewService(store)

	col := &model.DictionaryColumnDefinition{
		DictionaryID: "dict-1",
		ColumnName:   "Headword",
		FieldMapping: "wordMaithili",
		ColumnOrder:  1,
	}
	require.NoError(t, svc.Create(context.Background(), col))
	assert.True(t, col.IsActive)
	assert.Equal(t, "text", col.DataType)
}

func TestCreateColumnUnknownDictionary(t *testing.T) {
	svc := NewService(newFakeStore())

	err := svc.Create(context.Background(), &model.DictionaryColumnDefinition{
		DictionaryID: "missing",
		ColumnName:   "Headword",
		FieldMapping: "wordMaithili",
	})
	assert.ErrorIs(t, err, ErrDictionaryNotFound)
	assert.Equal(t, 404, apperr.Status(err))
}

func TestCreateColumnOrderConflict(t *testing.T) {
	store := newFakeStore("dict-1")
	svc := NewService(store)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &model.DictionaryColumnDefinition{
		DictionaryID: "dict-1", ColumnName: "Headword", FieldMapping: "wordMaithili", ColumnOrder: 1,
	}))

	err := svc.Create(ctx, &model.DictionaryColumnDefinition{
		DictionaryID: "dict-1", ColumnName: "Meaning", FieldMapping: "meaning.english", ColumnOrder: 1,
	})
	assert.ErrorIs(t, err, ErrOrderTaken)
	assert.Equal(t, 409, apperr.Status(err))
}

func TestCreateColumnOrderFreeAfterDeactivation(t *testing.T) {
	store := newFakeStore("dict-1")
	svc := NewService(store)
	ctx := context.Background()

	first := &model.DictionaryColumnDefinition{
		DictionaryID: "dict-1", ColumnName: "Headword", FieldMapping: "wordMaithili", ColumnOrder: 1,
	}
	require.NoError(t, svc.Create(ctx, first))

	_, err := svc.Update(ctx, first.ID, UpdateInput{
		ColumnName: first.ColumnName, FieldMapping: first.FieldMapping,
		ColumnOrder: first.ColumnOrder, DataType: "text", IsActive: false,
	})
	require.NoError(t, err)

	err = svc.Create(ctx, &model.DictionaryColumnDefinition{
		DictionaryID: "dict-1", ColumnName: "Meaning", FieldMapping: "meaning.english", ColumnOrder: 1,
	})
	assert.NoError(t, err)
}

func TestUpdateColumnOrderConflict(t *testing.T) {
	store := newFakeStore("dict-1")
	svc := NewService(store)
	ctx := context.Background()

	a := &model.DictionaryColumnDefinition{DictionaryID: "dict-1", ColumnName: "A", FieldMapping: "wordMaithili", ColumnOrder: 1}
	b := &model.DictionaryColumnDefinition{DictionaryID: "dict-1", ColumnName: "B", FieldMapping: "pronunciation", ColumnOrder: 2}
	require.NoError(t, svc.Create(ctx, a))
	require.NoError(t, svc.Create(ctx, b))

	_, err := svc.Update(ctx, b.ID, UpdateInput{
		ColumnName: "B", FieldMapping: "pronunciation", ColumnOrder: 1, DataType: "text", IsActive: true,
	})
	assert.ErrorIs(t, err, ErrOrderTaken)
}

func TestUpdateColumnKeepOwnOrder(t *testing.T) {
	store := newFakeStore("dict-1")
	svc := NewService(store)
	ctx := context.Background()

	a := &model.DictionaryColumnDefinition{DictionaryID: "dict-1", ColumnName: "A", FieldMapping: "wordMaithili", ColumnOrder: 1}
	require.NoError(t, svc.Create(ctx, a))

	got, err := svc.Update(ctx, a.ID, UpdateInput{
		ColumnName: "Headword", FieldMapping: "wordMaithili", ColumnOrder: 1, DataType: "text", IsRequired: true, IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Headword", got.ColumnName)
	assert.True(t, got.IsRequired)
}

func TestUpdateColumnMissing(t *testing.T) {
	svc := NewService(newFakeStore("dict-1"))

	_, err := svc.Update(context.Background(), "nope", UpdateInput{ColumnName: "X", FieldMapping: "wordType"})
	assert.True(t, errors.Is(err, ErrColumnNotFound))
}

func TestListOrderedByColumnOrder(t *testing.T) {
	store := newFakeStore("dict-1")
	svc := NewService(store)
	ctx := context.Background()

	for i, name := range []string{"C", "A", "B"} {
		require.NoError(t, svc.Create(ctx, &model.DictionaryColumnDefinition{
			DictionaryID: "dict-1", ColumnName: name, FieldMapping: "wordMaithili", ColumnOrder: 3 - i,
		}))
	}

	cols, err := svc.List(ctx, "dict-1", true)
	require.NoError(t, err)
	require.Len(t, cols, 3)
	assert.Equal(t, "B", cols[0].ColumnName)
	assert.Equal(t, "A", cols[1].ColumnName)
	assert.Equal(t, "C", cols[2].ColumnName)
}

func TestDeleteColumn(t *testing.T) {
	store := newFakeStore("dict-1")
	svc := NewService(store)
	ctx := context.Background()

	col := &model.DictionaryColumnDefinition{DictionaryID: "dict-1", ColumnName: "A", FieldMapping: "wordMaithili", ColumnOrder: 1}
	require.NoError(t, svc.Create(ctx, col))
	require.NoError(t, svc.Delete(ctx, col.ID))

	cols, err := svc.List(ctx, "dict-1", false)
	require.NoError(t, err)
	assert.Empty(t, cols)
}
