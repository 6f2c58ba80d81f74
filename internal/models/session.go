package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session statuses. The column is free text; these are the conventional values.
const (
	SessionScheduled = "scheduled"
	SessionCompleted = "completed"
	SessionCancelled = "cancelled"
)

// Session represents a time-boxed study session on the owner's calendar.
type Session struct {
	ID        string    `gorm:"primarykey" json:"id"`
	OwnerID   string    `gorm:"index;not null" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `gorm:"not null" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`
	Subject     string    `json:"subject,omitempty"`
	Status      string    `gorm:"default:scheduled" json:"status"`

	// RelatedTaskID is a weak back-reference by id only. It is never
	// validated against the tasks table and may dangle after the task
	// is deleted; readers resolve it best-effort.
	RelatedTaskID string `json:"related_task_id,omitempty"`
}

// BeforeCreate assigns the store-owned identifier.
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Duration returns the scheduled length of the session.
func (s *Session) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}
