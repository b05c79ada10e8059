package model

import "time"

// DictionaryColumnDefinition maps one spreadsheet column position to an entry
// field or parameter key for a single dictionary. Column order is unique per
// dictionary among active columns.
type DictionaryColumnDefinition struct {
	ID                 string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DictionaryID       string    `gorm:"type:uuid;not null;index" json:"dictionaryId"`
	ColumnName         string    `gorm:"not null;size:255" json:"columnName"`
	ColumnNameMaithili *string   `gorm:"size:255" json:"columnNameMaithili,omitempty"`
	FieldMapping       string    `gorm:"not null;size:100" json:"fieldMapping"`
	ColumnOrder        int       `gorm:"not null" json:"columnOrder"`
	IsRequired         bool      `gorm:"default:false" json:"isRequired"`
	DataType           string    `gorm:"not null;default:'text';size:30" json:"dataType"`
	DefaultValue       *string   `gorm:"size:255" json:"defaultValue,omitempty"`
	ValidationRule     *string   `gorm:"size:255" json:"validationRule,omitempty"`
	HelpText           *string   `gorm:"type:text" json:"helpText,omitempty"`
	ExampleValue       *string   `gorm:"size:255" json:"exampleValue,omitempty"`
	IsActive           bool      `gorm:"default:true" json:"isActive"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (DictionaryColumnDefinition) TableName() string {
	return "dictionary_column_definitions"
}
