package models

import (
	"time"
)

// ContactMessage represents a message sent through the public contact form
type ContactMessage struct {
	MessageID int        `gorm:"primaryKey;column:message_id" json:"message_id"`
	FirstName string     `gorm:"column:first_name" json:"first_name"`
	LastName  string     `gorm:"column:last_name" json:"last_name"`
	Email     string     `gorm:"column:email" json:"email"`
	Subject   string     `gorm:"column:subject" json:"subject"`
	Body      string     `gorm:"column:body" json:"body"`
	IsRead    bool       `gorm:"column:is_read" json:"is_read"`
	CreateAt  *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt  *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
