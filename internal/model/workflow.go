package model

import "time"

// WordWorkflow tracks one submission cycle of a word through the editorial
// ladder. A word accumulates one row per cycle; Word.CurrentWorkflowID points
// at the live one.
type WordWorkflow struct {
	ID              string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	WordID          string     `gorm:"type:uuid;not null;index" json:"wordId"`
	CurrentStage    string     `gorm:"not null;size:30" json:"currentStage"`
	Status          string     `gorm:"not null;default:'PENDING';size:20" json:"status"`
	AssignedByID    string     `gorm:"type:uuid;not null" json:"assignedById"`
	AssignedToID    *string    `gorm:"type:uuid;index" json:"assignedToId,omitempty"`
	Priority        string     `gorm:"not null;default:'MEDIUM';size:10" json:"priority"`
	Comments        string     `gorm:"type:text" json:"comments"`
	ReturnReason    string     `gorm:"type:text" json:"returnReason"`
	ReturnedToStage *string    `gorm:"size:30" json:"returnedToStage,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`

	AssignedBy *User `gorm:"foreignKey:AssignedByID" json:"assignedBy,omitempty"`
	AssignedTo *User `gorm:"foreignKey:AssignedToID" json:"assignedTo,omitempty"`
}

func (WordWorkflow) TableName() string {
	return "word_workflows"
}

// Workflow stage ladder
const (
	StageEditorReview        = "EDITOR_REVIEW"
	StageSeniorEditorReview  = "SENIOR_EDITOR_REVIEW"
	StageEditorInChiefReview = "EDITOR_IN_CHIEF_REVIEW"
	StageApproved            = "APPROVED"
	StageFieldResearch       = "FIELD_RESEARCH"
)

// Workflow status constants
const (
	WorkflowStatusPending    = "PENDING"
	WorkflowStatusInProgress = "IN_PROGRESS"
	WorkflowStatusCompleted  = "COMPLETED"
	WorkflowStatusReturned   = "RETURNED"
)

// Priority constants
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)
