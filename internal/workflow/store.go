package workflow

import (
	"context"
	"errors"

	"github.com/maithilikosh/api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists workflow cycles in postgres. The Update/Return paths run
// inside a transaction with the workflow row locked, so two concurrent
// approvals cannot both advance the same rung.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetWord(ctx context.Context, id string) (*model.Word, error) {
	var word model.Word
	err := s.db.WithContext(ctx).First(&word, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &word, nil
}

func (s *GormStore) ListWorkflows(ctx context.Context, wordID string) ([]model.WordWorkflow, error) {
	var workflows []model.WordWorkflow
	err := s.db.WithContext(ctx).
		Preload("AssignedBy").
		Preload("AssignedTo").
		Where("word_id = ?", wordID).
		Order("created_at DESC").
		Find(&workflows).Error
	return workflows, err
}

func (s *GormStore) CreateCycle(ctx context.Context, word *model.Word, wf *model.WordWorkflow) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(wf).Error; err != nil {
			return err
		}
		return tx.Save(word).Error
	})
}

func (s *GormStore) UpdateCycle(ctx context.Context, wordID string, apply func(word *model.Word, wf *model.WordWorkflow) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var word model.Word
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&word, "id = ?", wordID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWordNotFound
		}
		if err != nil {
			return err
		}

		var wf model.WordWorkflow
		query := tx.Clauses(clause.Locking{Strength: "UPDATE"})
		if word.CurrentWorkflowID != nil {
			err = query.First(&wf, "id = ?", *word.CurrentWorkflowID).Error
		} else {
			// Words submitted before the live-workflow reference existed.
			err = query.Where("word_id = ?", wordID).Order("created_at DESC").First(&wf).Error
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveWorkflow
		}
		if err != nil {
			return err
		}

		if err := apply(&word, &wf); err != nil {
			return err
		}

		if err := tx.Save(&wf).Error; err != nil {
			return err
		}
		return tx.Save(&word).Error
	})
}

func (s *GormStore) ReturnAll(ctx context.Context, wordID string, reason string, returnedToStage *string, word *model.Word) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":        model.WorkflowStatusReturned,
			"return_reason": reason,
		}
		if returnedToStage != nil {
			updates["returned_to_stage"] = *returnedToStage
		}

		if err := tx.Model(&model.WordWorkflow{}).Where("word_id = ?", wordID).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Save(word).Error
	})
}
