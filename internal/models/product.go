package models

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a marketplace item with a price. Unlike advertisements,
// products never expire and carry no goals.
type Product struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	UserID      uint    `gorm:"not null;index" json:"user_id"`
	User        User    `gorm:"foreignKey:UserID" json:"-"`
	Title       string  `gorm:"not null" json:"title"`
	Description string  `gorm:"type:text;not null" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Location    string  `gorm:"not null" json:"location"`
	Publisher   string  `gorm:"not null" json:"publisher"`
	Category    string  `json:"category,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	IsPublic    bool    `gorm:"default:true" json:"is_public"`
	// Contact and ContactEmail are not persisted; filled from the owner at read time.
	Contact      string         `gorm:"-" json:"contact,omitempty"`
	ContactEmail string         `gorm:"-" json:"contact_email,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
