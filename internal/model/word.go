package model

import "time"

type Word struct {
	ID                string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DictionaryID      string     `gorm:"type:uuid;not null;index" json:"dictionaryId"`
	WordMaithili      string     `gorm:"not null;size:255;index" json:"wordMaithili"`
	WordRomanized     *string    `gorm:"size:255" json:"wordRomanized,omitempty"`
	Pronunciation     *string    `gorm:"size:255" json:"pronunciation,omitempty"`
	WordType          *string    `gorm:"size:50" json:"wordType,omitempty"`
	Status            string     `gorm:"not null;default:'DRAFT';size:20;index" json:"status"`
	VersionNumber     int        `gorm:"not null;default:1" json:"versionNumber"`
	IsPublished       bool       `gorm:"default:false;index" json:"isPublished"`
	ViewCount         int64      `gorm:"default:0" json:"viewCount"`
	SearchCount       int64      `gorm:"default:0" json:"searchCount"`
	ParentWordID      *string    `gorm:"type:uuid;index" json:"parentWordId,omitempty"`
	SubWordOrder      int        `gorm:"default:0" json:"subWordOrder"`
	CreatedByID       *string    `gorm:"type:uuid;index" json:"createdById,omitempty"`
	ApprovedByID      *string    `gorm:"type:uuid" json:"approvedById,omitempty"`
	ApprovedAt        *time.Time `json:"approvedAt,omitempty"`
	CurrentWorkflowID *string    `gorm:"type:uuid" json:"currentWorkflowId,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`

	Dictionary *Dictionary     `gorm:"foreignKey:DictionaryID" json:"dictionary,omitempty"`
	Parameters []WordParameter `gorm:"foreignKey:WordID" json:"parameters,omitempty"`
	SubWords   []Word          `gorm:"foreignKey:ParentWordID" json:"subWords,omitempty"`
}

func (Word) TableName() string {
	return "words"
}

// Word status constants
const (
	WordStatusDraft       = "DRAFT"
	WordStatusSubmitted   = "SUBMITTED"
	WordStatusUnderReview = "UNDER_REVIEW"
	WordStatusApproved    = "APPROVED"
	WordStatusRejected    = "REJECTED"
)
