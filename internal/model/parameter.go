package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ParameterDefinition is one entry in the global attribute catalog. The key
// is immutable once created; everything else may change.
type ParameterDefinition struct {
	ID                    string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ParameterKey          string         `gorm:"not null;uniqueIndex;size:100" json:"parameterKey"`
	ParameterName         string         `gorm:"not null;size:255" json:"parameterName"`
	ParameterNameMaithili *string        `gorm:"size:255" json:"parameterNameMaithili,omitempty"`
	ParameterType         string         `gorm:"not null;default:'TEXT';size:20" json:"parameterType"`
	IsMultilingual        bool           `gorm:"default:false" json:"isMultilingual"`
	SupportedLanguages    pq.StringArray `gorm:"type:text[]" json:"supportedLanguages"`
	IsRequired            bool           `gorm:"default:false" json:"isRequired"`
	OrderIndex            int            `gorm:"default:0" json:"orderIndex"`
	IsActive              bool           `gorm:"default:true" json:"isActive"`
	CanEdit               string         `gorm:"not null;default:'ALL';size:20" json:"canEdit"`
	CreatedAt             time.Time      `json:"createdAt"`
	UpdatedAt             time.Time      `json:"updatedAt"`
}

func (ParameterDefinition) TableName() string {
	return "parameter_definitions"
}

// Parameter value kinds
const (
	ParameterTypeText         = "TEXT"
	ParameterTypeRichText     = "RICH_TEXT"
	ParameterTypeJSON         = "JSON"
	ParameterTypeArray        = "ARRAY"
	ParameterTypeMultilingual = "MULTILINGUAL"
)

// Edit permission tiers
const (
	CanEditAll            = "ALL"
	CanEditAdminOnly      = "ADMIN_ONLY"
	CanEditSuperAdminOnly = "SUPER_ADMIN_ONLY"
)

// WordParameter binds one value to a word. parameter_key is a denormalized
// copy of the definition's key so entries stay readable if the catalog moves.
type WordParameter struct {
	ID                    string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	WordID                string         `gorm:"type:uuid;not null;index" json:"wordId"`
	ParameterDefinitionID string         `gorm:"type:uuid;not null" json:"parameterDefinitionId"`
	ParameterKey          string         `gorm:"not null;size:100;index" json:"parameterKey"`
	Language              *string        `gorm:"size:30" json:"language,omitempty"`
	ContentText           *string        `gorm:"type:text" json:"contentText,omitempty"`
	ContentJSON           datatypes.JSON `json:"contentJson,omitempty"`
	ContentRichText       *string        `gorm:"type:text" json:"contentRichText,omitempty"`
	IsPrimary             bool           `gorm:"default:false" json:"isPrimary"`
	OrderIndex            int            `gorm:"default:0" json:"orderIndex"`
	CreatedAt             time.Time      `json:"createdAt"`
	UpdatedAt             time.Time      `json:"updatedAt"`

	ParameterDefinition *ParameterDefinition `gorm:"foreignKey:ParameterDefinitionID" json:"parameterDefinition,omitempty"`
}

func (WordParameter) TableName() string {
	return "word_parameters"
}
