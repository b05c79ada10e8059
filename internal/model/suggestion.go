package model

import (
	"time"

	"gorm.io/datatypes"
)

// EditSuggestion is a public, unauthenticated proposal for a new or changed
// entry. Only moderators mutate it after submission.
type EditSuggestion struct {
	ID                   string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	WordID               *string        `gorm:"type:uuid;index" json:"wordId,omitempty"`
	DictionaryID         string         `gorm:"type:uuid;not null;index" json:"dictionaryId"`
	SuggestionType       string         `gorm:"not null;size:20" json:"suggestionType"`
	Email                string         `gorm:"not null;size:255" json:"email"`
	Phone                string         `gorm:"not null;size:30" json:"phone"`
	Name                 *string        `gorm:"size:255" json:"name,omitempty"`
	SuggestionData       datatypes.JSON `json:"suggestionData"`
	ParameterSuggestions datatypes.JSON `json:"parameterSuggestions,omitempty"`
	Status               string         `gorm:"not null;default:'PENDING';size:20;index" json:"status"`
	ReviewedByID         *string        `gorm:"type:uuid" json:"reviewedById,omitempty"`
	ReviewedAt           *time.Time     `json:"reviewedAt,omitempty"`
	ReviewNotes          string         `gorm:"type:text" json:"reviewNotes"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`

	Word       *Word       `gorm:"foreignKey:WordID" json:"word,omitempty"`
	Dictionary *Dictionary `gorm:"foreignKey:DictionaryID" json:"dictionary,omitempty"`
	Reviewer   *User       `gorm:"foreignKey:ReviewedByID" json:"reviewer,omitempty"`
}

func (EditSuggestion) TableName() string {
	return "edit_suggestions"
}

// Suggestion kinds
const (
	SuggestionAddNewWord   = "ADD_NEW_WORD"
	SuggestionEditExisting = "EDIT_EXISTING"
)

// Moderation status constants
const (
	SuggestionStatusPending     = "PENDING"
	SuggestionStatusUnderReview = "UNDER_REVIEW"
	SuggestionStatusApproved    = "APPROVED"
	SuggestionStatusRejected    = "REJECTED"
)
