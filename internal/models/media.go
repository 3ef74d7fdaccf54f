package models

// MediaAssetModel tracks an uploaded file in the media library.
type MediaAssetModel struct {
	Base
	FileName    string `json:"fileName"    gorm:"index;not null"`
	FileURL     string `json:"fileUrl"     gorm:"not null"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Storage     string `json:"storage"     gorm:"type:varchar(16);default:'local'"`
}

func (MediaAssetModel) TableName() string { return "media_assets" }
