package models

import (
	"time"
)

// Application statuses (stored as strings in the status column)
const (
	StatusPending     = "pending"
	StatusUnderReview = "under_review"
	StatusApproved    = "approved"
	StatusRejected    = "rejected"
)

// Application types
const (
	ApplicationTypeMember      = "member"
	ApplicationTypeScholarship = "scholarship"
)

// Application represents a membership or scholarship application
type Application struct {
	ApplicationID   int        `gorm:"primaryKey;column:application_id" json:"application_id"`
	ApplicationType string     `gorm:"column:application_type" json:"application_type"` // member | scholarship
	FirstName       string     `gorm:"column:first_name" json:"first_name"`
	LastName        string     `gorm:"column:last_name" json:"last_name"`
	Email           string     `gorm:"column:email" json:"email"`
	Phone           *string    `gorm:"column:phone" json:"phone,omitempty"`
	Reason          *string    `gorm:"column:reason" json:"reason,omitempty"`
	ListingID       *int       `gorm:"column:listing_id" json:"listing_id,omitempty"`
	Status          string     `gorm:"column:status" json:"status"`
	Notes           *string    `gorm:"column:notes" json:"notes,omitempty"`
	SubmittedAt     *time.Time `gorm:"column:submitted_at" json:"submitted_at"`
	CreateAt        *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt        *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Listing     *Listing                `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
	Attachments []ApplicationAttachment `gorm:"foreignKey:ApplicationID" json:"attachments"`
}

// ApplicationAttachment represents a file uploaded alongside an application
type ApplicationAttachment struct {
	AttachmentID     int        `gorm:"primaryKey;column:attachment_id" json:"attachment_id"`
	ApplicationID    int        `gorm:"column:application_id" json:"application_id"`
	OriginalFilename string     `gorm:"column:original_filename" json:"original_filename"`
	StoredFilename   string     `gorm:"column:stored_filename" json:"stored_filename"`
	FileURL          string     `gorm:"column:file_url" json:"file_url"`
	FileSize         int64      `gorm:"column:file_size" json:"file_size"`
	MimeType         string     `gorm:"column:mime_type" json:"mime_type"`
	UploadedAt       *time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`
	CreateAt         *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt         *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides
func (Application) TableName() string {
	return "applications"
}

func (ApplicationAttachment) TableName() string {
	return "application_attachments"
}

// IsValidStatus reports whether s is one of the four application statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsValidApplicationType reports whether t is a known application type.
func IsValidApplicationType(t string) bool {
	return t == ApplicationTypeMember || t == ApplicationTypeScholarship
}

func (a *ApplicationAttachment) GetFileSizeInMB() float64 {
	return float64(a.FileSize) / (1024 * 1024)
}
