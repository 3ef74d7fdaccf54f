package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is the base model for all entities. ID is a generated UUID string;
// content slugs are separate fields so a rename never changes identity.
type Base struct {
	ID        string    `json:"id"      gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"modified"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// ContentStatus is the publish state of a content record.
type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusPublished ContentStatus = "published"
)

// Valid reports whether s is one of the two known states.
func (s ContentStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// StringSlice is a []string that serializes as JSON in MySQL.
type StringSlice []string

// SEOOverride holds per-record SEO metadata supplied by the editor.
type SEOOverride struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}
