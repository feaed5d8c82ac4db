package models

import (
	"time"

	"gorm.io/gorm"
)

// ChatMessage is a direct message between two users, optionally tied to the
// listing it was sent about. Immutable after creation except for the read flag.
type ChatMessage struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	SenderID        uint           `gorm:"not null;index" json:"sender_id"`
	ReceiverID      uint           `gorm:"not null;index" json:"receiver_id"`
	Message         string         `gorm:"type:text;not null" json:"message"`
	Read            bool           `gorm:"default:false" json:"read"`
	AdvertisementID *uint          `gorm:"index" json:"advertisement_id,omitempty"`
	ProductID       *uint          `gorm:"index" json:"product_id,omitempty"`
	Sender          *User          `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver        *User          `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	Advertisement   *Advertisement `gorm:"foreignKey:AdvertisementID" json:"-"`
	Product         *Product       `gorm:"foreignKey:ProductID" json:"-"`
	// ListingTitle is not persisted; filled from the referenced listing at read time.
	ListingTitle string         `gorm:"-" json:"listing_title,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// Conversation summarizes the caller's message history with one partner.
type Conversation struct {
	PartnerID    uint        `json:"partner_id"`
	PartnerEmail string      `json:"partner_email"`
	PartnerPhone string      `json:"partner_phone,omitempty"`
	LastMessage  ChatMessage `json:"last_message"`
	UnreadCount  int         `json:"unread_count"`
}
