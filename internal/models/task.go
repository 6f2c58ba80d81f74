package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Task statuses.
const (
	TaskPending    = "pending"
	TaskInProgress = "in-progress"
	TaskCompleted  = "completed"
)

// Task represents an academic task belonging to a single owner.
type Task struct {
	ID        string    `gorm:"primarykey" json:"id"`
	OwnerID   string    `gorm:"index;not null" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description,omitempty"`
	Due         *time.Time `json:"due_date,omitempty"`
	Priority    string     `gorm:"default:medium" json:"priority"` // high, medium, low
	Subject     string     `json:"subject,omitempty"`
	Status      string     `gorm:"default:pending" json:"status"` // pending, in-progress, completed
}

// BeforeCreate assigns the store-owned identifier.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p string) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Subjects is the suggestion set offered by the UI; the field itself is free text.
var Subjects = []string{
	"Mathematics",
	"Physics",
	"Chemistry",
	"Biology",
	"History",
	"Literature",
	"Computer Science",
	"Economics",
	"General",
}
