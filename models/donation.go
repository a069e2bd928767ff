package models

import (
	"time"
)

// Donation represents a one-off donation recorded after the payment
// collaborator redirects back with an opaque reference.
type Donation struct {
	DonationID int        `gorm:"primaryKey;column:donation_id" json:"donation_id"`
	FirstName  string     `gorm:"column:first_name" json:"first_name"`
	LastName   string     `gorm:"column:last_name" json:"last_name"`
	Email      string     `gorm:"column:email" json:"email"`
	Amount     float64    `gorm:"column:amount" json:"amount"`
	Message    *string    `gorm:"column:message" json:"message,omitempty"`
	PaymentRef *string    `gorm:"column:payment_ref" json:"payment_ref,omitempty"`
	DonatedAt  *time.Time `gorm:"column:donated_at" json:"donated_at"`
	CreateAt   *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt   *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt   *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (Donation) TableName() string {
	return "donations"
}
