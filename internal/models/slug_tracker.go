package models

// SlugTrackerModel remembers old slugs after a rename so the public site can
// redirect stale links to the current record.
type SlugTrackerModel struct {
	Base
	Slug     string `json:"slug"     gorm:"index;not null"`
	Kind     string `json:"kind"     gorm:"index;not null"`
	TargetID string `json:"targetId" gorm:"index;not null"`
}

func (SlugTrackerModel) TableName() string { return "slug_trackers" }
