package workflow

import (
	"context"
	"testing"

	"github.com/maithilikosh/api/internal/auth"
	"github.com/maithilikosh/api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore keeps everything in memory; *Cycle calls are trivially atomic.
type fakeStore struct {
	words     map[string]*model.Word
	workflows []*model.WordWorkflow
}

func newFakeStore(words ...*model.Word) *fakeStore {
	s := &fakeStore{words: make(map[string]*model.Word)}
	for _, w := range words {
		s.words[w.ID] = w
	}
	return s
}

func (s *fakeStore) GetWord(_ context.Context, id string) (*model.Word, error) {
	word, ok := s.words[id]
	if !ok {
		return nil, nil
	}
	copied := *word
	return &copied, nil
}

func (s *fakeStore) ListWorkflows(_ context.Context, wordID string) ([]model.WordWorkflow, error) {
	var out []model.WordWorkflow
	// Insertion order is oldest first; reverse for newest-first.
	for i := len(s.workflows) - 1; i >= 0; i-- {
		if s.workflows[i].WordID == wordID {
			out = append(out, *s.workflows[i])
		}
	}
	return out, nil
}

func (s *fakeStore) CreateCycle(_ context.Context, word *model.Word, wf *model.WordWorkflow) error {
	copied := *wf
	s.workflows = append(s.workflows, &copied)
	saved := *word
	s.words[word.ID] = &saved
	return nil
}

func (s *fakeStore) UpdateCycle(_ context.Context, wordID string, apply func(word *model.Word, wf *model.WordWorkflow) error) error {
	word, ok := s.words[wordID]
	if !ok {
		return ErrWordNotFound
	}

	var wf *model.WordWorkflow
	if word.CurrentWorkflowID != nil {
		for _, w := range s.workflows {
			if w.ID == *word.CurrentWorkflowID {
				wf = w
				break
			}
		}
	}
	if wf == nil {
		return ErrNoActiveWorkflow
	}

	wordCopy := *word
	wfCopy := *wf
	if err := apply(&wordCopy, &wfCopy); err != nil {
		return err
	}
	*word = wordCopy
	*wf = wfCopy
	return nil
}

func (s *fakeStore) ReturnAll(_ context.Context, wordID string, reason string, returnedToStage *string, word *model.Word) error {
	for _, wf := range s.workflows {
		if wf.WordID != wordID {
			continue
		}
		wf.Status = model.WorkflowStatusReturned
		wf.ReturnReason = reason
		if returnedToStage != nil {
			stage := *returnedToStage
			wf.ReturnedToStage = &stage
		}
	}
	saved := *word
	s.words[word.ID] = &saved
	return nil
}

func fieldResearcher() *auth.Identity {
	return &auth.Identity{ID: "u-field", Role: model.RoleFieldResearcher}
}
func editor() *auth.Identity        { return &auth.Identity{ID: "u-editor", Role: model.RoleEditor} }
func seniorEditor() *auth.Identity  { return &auth.Identity{ID: "u-senior", Role: model.RoleSeniorEditor} }
func editorInChief() *auth.Identity { return &auth.Identity{ID: "u-chief", Role: model.RoleEditorInChief} }

func draftWord(id string) *model.Word {
	return &model.Word{ID: id, DictionaryID: "dict-1", WordMaithili: "पानि", Status: model.WordStatusDraft}
}

func TestSubmitCreatesCycle(t *testing.T) {
	store := newFakeStore(draftWord("w1"))
	engine := NewEngine(store)

	wf, err := engine.Submit(context.Background(), "w1", editor(), SubmitOptions{Comments: "ready"})
	require.NoError(t, err)

	assert.Equal(t, model.StageEditorReview, wf.CurrentStage)
	assert.Equal(t, model.WorkflowStatusPending, wf.Status)
	assert.Equal(t, model.PriorityMedium, wf.Priority)

	word := store.words["w1"]
	assert.Equal(t, model.WordStatusSubmitted, word.Status)
	require.NotNil(t, word.CurrentWorkflowID)
	assert.Equal(t, wf.ID, *word.CurrentWorkflowID)
}

func TestFieldResearcherCanSubmitButNotApprove(t *testing.T) {
	store := newFakeStore(draftWord("w1"))
	engine := NewEngine(store)
	ctx := context.Background()

	wf, err := engine.Submit(ctx, "w1", fieldResearcher(), SubmitOptions{})
	require.NoError(t, err)
	assert.Equal(t, model.StageEditorReview, wf.CurrentStage)
	assert.Equal(t, model.WordStatusSubmitted, store.words["w1"].Status)

	_, err = engine.Approve(ctx, "w1", fieldResearcher())
	assert.ErrorIs(t, err, ErrWrongReviewer)
}

func TestSubmitUnknownWord(t *testing.T) {
	engine := NewEngine(newFakeStore())

	_, err := engine.Submit(context.Background(), "missing", editor(), SubmitOptions{})
	assert.ErrorIs(t, err, ErrWordNotFound)
}

func TestApproveFullLadder(t *testing.T) {
	store := newFakeStore(draftWord("w1"))
	engine := NewEngine(store)
	ctx := context.Background()

	_, err := engine.Submit(ctx, "w1", editor(), SubmitOptions{})
	require.NoError(t, err)

	wf, err := engine.Approve(ctx, "w1", editor())
	require.NoError(t, err)
	assert.Equal(t, model.StageSeniorEditorReview, wf.CurrentStage)
	assert.Equal(t, model.WorkflowStatusInProgress, wf.Status)
	assert.Equal(t, model.WordStatusUnderReview, store.words["w1"].Status)

	wf, err = engine.Approve(ctx, "w1", seniorEditor())
	require.NoError(t, err)
	assert.Equal(t, model.StageEditorInChiefReview, wf.CurrentStage)
	assert.Equal(t, model.WordStatusUnderReview, store.words["w1"].Status)

	wf, err = engine.Approve(ctx, "w1", editorInChief())
	require.NoError(t, err)
	assert.Equal(t, model.StageApproved, wf.CurrentStage)
	assert.Equal(t, model.WorkflowStatusCompleted, wf.Status)
	assert.NotNil(t, wf.CompletedAt)

	word := store.words["w1"]
	assert.Equal(t, model.WordStatusApproved, word.Status)
	assert.True(t, word.IsPublished)
	assert.NotNil(t, word.ApprovedAt)
	require.NotNil(t, word.ApprovedByID)
	assert.Equal(t, "u-chief", *word.ApprovedByID)
}

func TestApproveWrongRoleLeavesStateUnchanged(t *testing.T) {
	store := newFakeStore(draftWord("w1"))
	engine := NewEngine(store)
	ctx := context.Background()

	_, err := engine.Submit(ctx, "w1", editor(), SubmitOptions{})
	require.NoError(t, err)

	// A senior editor cannot approve the editor-review stage.
	_, err = engine.Approve(ctx, "w1", seniorEditor())
	assert.ErrorIs(t, err, ErrWrongReviewer)

	assert.Equal(t, model.WordStatusSubmitted, store.words["w1"].Status)
	assert.Equal(t, model.StageEditorReview, store.workflows[0].CurrentStage)
	assert.Equal(t, model.WorkflowStatusPending, store.workflows[0].Status)
}

func TestApproveWithoutSubmit(t *testing.T) {
	store := newFakeStore(draftWord("w1"))
	engine := NewEngine(store)

	_, err := engine.Approve(context.Background(), "w1", editor())
	assert.ErrorIs(t, err, ErrNoActiveWorkflow)
}

func TestRejectReturnsAllCycles(t *testing.T) {
	store := newFakeStore(draftWord("w1"))
	engine := NewEngine(store)
	ctx := context.Background()

	_, err := engine.Submit(ctx, "w1", editor(), SubmitOptions{})
	require.NoError(t, err)

	require.NoError(t, engine.Reject(ctx, "w1", "sources missing"))

	assert.Equal(t, model.WordStatusRejected, store.words["w1"].Status)
	assert.Equal(t, model.WorkflowStatusReturned, store.workflows[0].Status)
	assert.Equal(t, "sources missing", store.workflows[0].ReturnReason)
	assert.Nil(t, store.workflows[0].ReturnedToStage)
}

func TestReturnForRevision(t *testing.T) {
	store := newFakeStore(draftWord("w1"))
	engine := NewEngine(store)
	ctx := context.Background()

	_, err := engine.Submit(ctx, "w1", editor(), SubmitOptions{})
	require.NoError(t, err)

	require.NoError(t, engine.ReturnForRevision(ctx, "w1", "needs citations"))

	assert.Equal(t, model.WordStatusDraft, store.words["w1"].Status)
	require.NotNil(t, store.workflows[0].ReturnedToStage)
	assert.Equal(t, model.StageFieldResearch, *store.workflows[0].ReturnedToStage)
}

func TestResubmitAfterReturnUsesNewCycle(t *testing.T) {
	store := newFakeStore(draftWord("w1"))
	engine := NewEngine(store)
	ctx := context.Background()

	first, err := engine.Submit(ctx, "w1", editor(), SubmitOptions{})
	require.NoError(t, err)
	require.NoError(t, engine.ReturnForRevision(ctx, "w1", "redo"))

	second, err := engine.Submit(ctx, "w1", editor(), SubmitOptions{})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	// Approvals now act on the new cycle only.
	_, err = engine.Approve(ctx, "w1", editor())
	require.NoError(t, err)

	list, err := engine.List(ctx, "w1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	assert.Equal(t, model.StageSeniorEditorReview, list[0].CurrentStage)
	assert.Equal(t, model.WorkflowStatusReturned, list[1].Status)
}

func TestNextStageTable(t *testing.T) {
	_, ok := NextStage(model.StageApproved, model.RoleEditorInChief)
	assert.False(t, ok, "terminal stage has no transition")

	_, ok = NextStage(model.StageEditorReview, model.RoleAdmin)
	assert.False(t, ok, "admins are not reviewers")

	next, ok := NextStage(model.StageEditorReview, model.RoleEditor)
	assert.True(t, ok)
	assert.Equal(t, model.StageSeniorEditorReview, next)
}
