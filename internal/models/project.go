package models

import "time"

// CaseMetric is a single outcome figure shown on a case study page.
type CaseMetric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// CaseResults summarizes the outcome section of a case study.
type CaseResults struct {
	Summary string       `json:"summary,omitempty"`
	Metrics []CaseMetric `json:"metrics,omitempty"`
}

// CaseTimeline is the optional start/end range of an engagement.
type CaseTimeline struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// ProjectModel is a case study shown under /projects.
type ProjectModel struct {
	Base
	Slug        string        `json:"slug"         gorm:"uniqueIndex;not null"`
	Title       string        `json:"title"        gorm:"not null"`
	Client      string        `json:"client"`
	CoverURL    string        `json:"coverUrl"`
	Gallery     StringSlice   `json:"gallery"      gorm:"type:json;serializer:json"`
	Tags        StringSlice   `json:"tags"         gorm:"type:json;serializer:json"`
	Role        StringSlice   `json:"role"         gorm:"type:json;serializer:json"`
	Tools       StringSlice   `json:"tools"        gorm:"type:json;serializer:json"`
	Timeline    *CaseTimeline `json:"timeline,omitempty" gorm:"serializer:json"`
	Excerpt     string        `json:"excerpt"`
	Problem     string        `json:"problem"      gorm:"type:text"`
	Approach    string        `json:"approach"     gorm:"type:text"`
	Solution    string        `json:"solution"     gorm:"type:text"`
	Results     *CaseResults  `json:"results,omitempty" gorm:"serializer:json"`
	Body        string        `json:"body"         gorm:"type:longtext"`
	SEO         *SEOOverride  `json:"seo,omitempty" gorm:"serializer:json"`
	Status      ContentStatus `json:"status"       gorm:"type:varchar(16);default:'draft';index"`
	PublishedAt *time.Time    `json:"publishedAt,omitempty"`
}

func (ProjectModel) TableName() string { return "projects" }
