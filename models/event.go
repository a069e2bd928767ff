package models

import (
	"time"
)

// Event represents an organization event shown on the public site
type Event struct {
	EventID     int        `gorm:"primaryKey;column:event_id" json:"event_id"`
	Title       string     `gorm:"column:title" json:"title"`
	Description string     `gorm:"column:description" json:"description"`
	Location    string     `gorm:"column:location" json:"location"`
	StartsAt    *time.Time `gorm:"column:starts_at" json:"starts_at"`
	EndsAt      *time.Time `gorm:"column:ends_at" json:"ends_at,omitempty"`
	Published   bool       `gorm:"column:published" json:"published"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (Event) TableName() string {
	return "events"
}
