package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ComplaintResponse represents an admin reply attached to a complaint.
// Rows are append-only; Seq defines the order of the thread.
type ComplaintResponse struct {
	// ID is the response identifier (UUID).
	ID string `gorm:"primaryKey;type:varchar(36)"`
	// ComplaintID references the complaint the response belongs to.
	ComplaintID string `gorm:"type:varchar(36);not null;index:idx_complaint_response"`
	// Content is the text of the reply.
	Content string `gorm:"type:text;not null"`
	// AdminID is the id of the admin who wrote the reply.
	AdminID string `gorm:"type:varchar(36);not null"`
	// AdminName is the admin's display name at the time of writing.
	AdminName string `gorm:"not null"`
	// Seq is the 1-based position in the thread, taken from Complaint.ResponseCount.
	Seq int `gorm:"not null;default:0;index:idx_complaint_response"`
	// CreatedAt is the timestamp the reply was appended.
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
}

// BeforeCreate assigns a UUID when the caller has not set one.
func (r *ComplaintResponse) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}
