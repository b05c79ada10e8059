package model

import (
	"time"

	"github.com/lib/pq"
)

type Dictionary struct {
	ID              string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name            string         `gorm:"not null;size:255" json:"name"`
	NameMaithili    *string        `gorm:"size:255" json:"nameMaithili,omitempty"`
	Description     string         `gorm:"type:text" json:"description"`
	SourceLanguage  string         `gorm:"not null;default:'maithili';size:50" json:"sourceLanguage"`
	TargetLanguages pq.StringArray `gorm:"type:text[]" json:"targetLanguages"`
	IsMain          bool           `gorm:"default:false" json:"isMain"`
	IsActive        bool           `gorm:"default:true" json:"isActive"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

func (Dictionary) TableName() string {
	return "dictionaries"
}
