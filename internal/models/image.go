package models

import "time"

// Image is the metadata row for an uploaded picture, addressed by the sha256
// of the original bytes so re-uploads dedupe.
type Image struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Hash      string         `gorm:"uniqueIndex;size:64;not null" json:"hash"`
	MimeType  string         `gorm:"size:64" json:"mime_type"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Bytes     int64          `json:"bytes"`
	Status    string         `gorm:"size:16;not null;default:'ready'" json:"status"`
	Error     string         `json:"-"`
	Variants  []ImageVariant `gorm:"foreignKey:ImageID" json:"variants,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ImageVariant is one re-encoded rendition of an image.
type ImageVariant struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	ImageID uint   `gorm:"not null;uniqueIndex:idx_variant_size_format" json:"image_id"`
	SizePx  int    `gorm:"not null;uniqueIndex:idx_variant_size_format" json:"size_px"`
	Format  string `gorm:"size:8;not null;uniqueIndex:idx_variant_size_format" json:"format"`
	Path    string `gorm:"not null" json:"path"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Bytes   int64  `json:"bytes"`
}
