package models

import (
	"time"
)

// Listing represents a scholarship offering applications can reference
type Listing struct {
	ListingID   int        `gorm:"primaryKey;column:listing_id" json:"listing_id"`
	ListingName string     `gorm:"column:listing_name" json:"listing_name"`
	Description string     `gorm:"column:description" json:"description"`
	Amount      float64    `gorm:"column:amount" json:"amount"`
	Deadline    *time.Time `gorm:"column:deadline" json:"deadline,omitempty"`
	IsOpen      bool       `gorm:"column:is_open" json:"is_open"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (Listing) TableName() string {
	return "listings"
}

// AcceptsApplications reports whether the listing is open and the deadline,
// if any, has not passed.
func (l *Listing) AcceptsApplications(now time.Time) bool {
	if !l.IsOpen {
		return false
	}
	if l.Deadline != nil && now.After(*l.Deadline) {
		return false
	}
	return true
}
