package model

import "time"

// WorkAssignment is a standing task given to a contributor, separate from the
// per-submission review workflow.
type WorkAssignment struct {
	ID           string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	WordID       string     `gorm:"type:uuid;not null;index" json:"wordId"`
	AssignedByID string     `gorm:"type:uuid;not null" json:"assignedById"`
	AssignedToID string     `gorm:"type:uuid;not null;index" json:"assignedToId"`
	TaskType     string     `gorm:"not null;size:30" json:"taskType"`
	Status       string     `gorm:"not null;default:'PENDING';size:20" json:"status"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	Notes        string     `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	Word *Word `gorm:"foreignKey:WordID" json:"word,omitempty"`
}

func (WorkAssignment) TableName() string {
	return "work_assignments"
}

// Assignment status constants
const (
	AssignmentStatusPending   = "PENDING"
	AssignmentStatusCompleted = "COMPLETED"
)
