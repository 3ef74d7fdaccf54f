package models

import "time"

// PostModel is a blog post.
type PostModel struct {
	Base
	Slug        string        `json:"slug"         gorm:"uniqueIndex;not null"`
	Title       string        `json:"title"        gorm:"not null"`
	CoverURL    string        `json:"coverUrl"`
	Gallery     StringSlice   `json:"gallery"      gorm:"type:json;serializer:json"`
	Tags        StringSlice   `json:"tags"         gorm:"type:json;serializer:json"`
	Excerpt     string        `json:"excerpt"`
	Body        string        `json:"body"         gorm:"type:longtext"`
	SEO         *SEOOverride  `json:"seo,omitempty" gorm:"serializer:json"`
	Status      ContentStatus `json:"status"       gorm:"type:varchar(16);default:'draft';index"`
	PublishedAt *time.Time    `json:"publishedAt,omitempty"`
}

func (PostModel) TableName() string { return "posts" }
