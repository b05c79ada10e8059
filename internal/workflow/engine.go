package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/maithilikosh/api/internal/apperr"
	"github.com/maithilikosh/api/internal/auth"
	"github.com/maithilikosh/api/internal/model"
)

var (
	ErrWordNotFound = fmt.Errorf("%w: word", apperr.ErrNotFound)
	// ErrWrongReviewer is returned when the acting role does not match the
	// current stage's required reviewer; the stage is left untouched.
	ErrWrongReviewer    = fmt.Errorf("%w: acting role cannot review the current stage", apperr.ErrForbidden)
	ErrNoActiveWorkflow = fmt.Errorf("%w: no workflow for word", apperr.ErrNotFound)
)

// Store is the persistence boundary of the engine. Implementations must make
// each *Cycle call atomic across the workflow and word rows.
type Store interface {
	GetWord(ctx context.Context, id string) (*model.Word, error)
	ListWorkflows(ctx context.Context, wordID string) ([]model.WordWorkflow, error)

	// CreateCycle inserts the workflow and saves the word in one transaction.
	CreateCycle(ctx context.Context, word *model.Word, wf *model.WordWorkflow) error

	// UpdateCycle loads the word's current workflow under a row lock, applies
	// the mutation and persists both records in one transaction. The apply
	// callback may return an error to abort without writing.
	UpdateCycle(ctx context.Context, wordID string, apply func(word *model.Word, wf *model.WordWorkflow) error) error

	// ReturnAll marks every workflow row of the word RETURNED and saves the
	// word, in one transaction.
	ReturnAll(ctx context.Context, wordID string, reason string, returnedToStage *string, word *model.Word) error
}

type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

type SubmitOptions struct {
	AssignedToID *string
	Priority     string
	Comments     string
}

// Submit opens a new review cycle at EDITOR_REVIEW and moves the word to
// SUBMITTED. The word keeps a reference to the live workflow row.
func (e *Engine) Submit(ctx context.Context, wordID string, actor *auth.Identity, opts SubmitOptions) (*model.WordWorkflow, error) {
	word, err := e.store.GetWord(ctx, wordID)
	if err != nil {
		return nil, err
	}
	if word == nil {
		return nil, ErrWordNotFound
	}

	priority := opts.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	wf := &model.WordWorkflow{
		ID:           uuid.NewString(),
		WordID:       wordID,
		CurrentStage: model.StageEditorReview,
		Status:       model.WorkflowStatusPending,
		AssignedByID: actor.ID,
		AssignedToID: opts.AssignedToID,
		Priority:     priority,
		Comments:     opts.Comments,
	}

	word.Status = model.WordStatusSubmitted
	word.CurrentWorkflowID = &wf.ID

	if err := e.store.CreateCycle(ctx, word, wf); err != nil {
		return nil, err
	}
	return wf, nil
}

// Approve advances the word's live workflow one rung. The acting role must be
// the current stage's required reviewer, otherwise ErrWrongReviewer is
// returned and nothing changes. Reaching APPROVED completes the workflow and
// publishes the approval on the word.
func (e *Engine) Approve(ctx context.Context, wordID string, actor *auth.Identity) (*model.WordWorkflow, error) {
	var approved *model.WordWorkflow

	err := e.store.UpdateCycle(ctx, wordID, func(word *model.Word, wf *model.WordWorkflow) error {
		next, ok := NextStage(wf.CurrentStage, actor.Role)
		if !ok {
			return ErrWrongReviewer
		}

		now := time.Now()
		wf.CurrentStage = next

		if next == model.StageApproved {
			wf.Status = model.WorkflowStatusCompleted
			wf.CompletedAt = &now

			word.Status = model.WordStatusApproved
			word.IsPublished = true
			word.ApprovedAt = &now
			word.ApprovedByID = &actor.ID
		} else {
			wf.Status = model.WorkflowStatusInProgress
			word.Status = model.WordStatusUnderReview
		}

		approved = wf
		return nil
	})
	if err != nil {
		return nil, err
	}
	return approved, nil
}

// Reject closes the word's review: all workflow rows become RETURNED with the
// reason and the word moves to REJECTED.
func (e *Engine) Reject(ctx context.Context, wordID string, comments string) error {
	word, err := e.store.GetWord(ctx, wordID)
	if err != nil {
		return err
	}
	if word == nil {
		return ErrWordNotFound
	}

	word.Status = model.WordStatusRejected
	word.IsPublished = false
	return e.store.ReturnAll(ctx, wordID, comments, nil, word)
}

// ReturnForRevision sends the word back to field research: all workflow rows
// become RETURNED and the word drops back to DRAFT.
func (e *Engine) ReturnForRevision(ctx context.Context, wordID string, comments string) error {
	word, err := e.store.GetWord(ctx, wordID)
	if err != nil {
		return err
	}
	if word == nil {
		return ErrWordNotFound
	}

	stage := model.StageFieldResearch
	word.Status = model.WordStatusDraft
	word.IsPublished = false
	return e.store.ReturnAll(ctx, wordID, comments, &stage, word)
}

// List returns all workflow records for a word, newest first, with assigner
// and assignee identity attached.
func (e *Engine) List(ctx context.Context, wordID string) ([]model.WordWorkflow, error) {
	return e.store.ListWorkflows(ctx, wordID)
}
