package model

import "time"

// SearchHistory rows are fire-and-forget logging; writes never block or fail
// a search request.
type SearchHistory struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	QueryText    string    `gorm:"not null;size:255;index" json:"queryText"`
	DictionaryID *string   `gorm:"type:uuid" json:"dictionaryId,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
}

func (SearchHistory) TableName() string {
	return "search_histories"
}
