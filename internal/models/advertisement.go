package models

import (
	"time"

	"gorm.io/gorm"
)

// Advertisement represents a help request published by a user. Expired
// advertisements stay fetchable by id but drop out of public listings.
type Advertisement struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"not null;index" json:"user_id"`
	User           User       `gorm:"foreignKey:UserID" json:"-"`
	Title          string     `gorm:"not null" json:"title"`
	Description    string     `gorm:"type:text;not null" json:"description"`
	Location       string     `gorm:"not null" json:"location"`
	Publisher      string     `gorm:"not null" json:"publisher"`
	ImageURL       string     `json:"image_url,omitempty"`
	IsPublic       bool       `gorm:"default:true" json:"is_public"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	// Contact and ContactEmail are not persisted; filled from the owner at read time.
	Contact      string         `gorm:"-" json:"contact,omitempty"`
	ContactEmail string         `gorm:"-" json:"contact_email,omitempty"`
	Goals        []Goal         `gorm:"foreignKey:AdvertisementID" json:"goals,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// GoalType enumerates the kinds of targets an advertisement can carry.
type GoalType string

const (
	// GoalTypeDonation tracks monetary contributions toward a target.
	GoalTypeDonation GoalType = "donation"
	// GoalTypeDelivery tracks delivered item counts toward a target.
	GoalTypeDelivery GoalType = "delivery"
)

// ValidGoalType reports whether t is one of the supported goal types.
func ValidGoalType(t GoalType) bool {
	return t == GoalTypeDonation || t == GoalTypeDelivery
}

// Goal is a donation or delivery target attached to an advertisement.
// CurrentAmount only ever increases and is not capped at TargetAmount.
type Goal struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	AdvertisementID uint      `gorm:"not null;index" json:"advertisement_id"`
	GoalType        GoalType  `gorm:"type:varchar(20);not null" json:"goal_type"`
	TargetAmount    float64   `gorm:"not null" json:"target_amount"`
	CurrentAmount   float64   `gorm:"not null;default:0" json:"current_amount"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName keeps the historical table name for goals.
func (Goal) TableName() string {
	return "advertisement_goals"
}
