package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/studyflow-app/studyflow/internal/models"
)

// TaskStore owns all reads and writes of one owner's tasks. It keeps an
// in-memory snapshot of the task list that is re-synchronized from the
// database after every successful mutation; a failed write leaves the
// snapshot untouched.
type TaskStore struct {
	db      *gorm.DB
	ownerID string
	tasks   []models.Task
}

// NewTaskStore creates a store for the given owner and loads the initial
// snapshot.
func NewTaskStore(db *gorm.DB, ownerID string) (*TaskStore, error) {
	s := &TaskStore{db: db, ownerID: ownerID}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// OwnerID returns the owner this store is scoped to.
func (s *TaskStore) OwnerID() string { return s.ownerID }

// List returns the current snapshot, ordered by due date ascending with
// undated tasks last. Callers must not mutate the returned slice.
func (s *TaskStore) List() []models.Task {
	return s.tasks
}

// Refresh reloads the snapshot from the database.
func (s *TaskStore) Refresh() error {
	var tasks []models.Task
	err := s.db.Where("owner_id = ?", s.ownerID).
		Order("due IS NULL").
		Order("due ASC").
		Find(&tasks).Error
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	s.tasks = tasks
	return nil
}

// CreateTaskRequest holds the data needed to create a new task.
type CreateTaskRequest struct {
	Title       string
	Description string
	Due         *time.Time
	Priority    string // high, medium, low; empty defaults to medium
	Subject     string
	Status      string // empty defaults to pending
}

// Create persists a new task for the owner and refreshes the snapshot.
func (s *TaskStore) Create(req CreateTaskRequest) (*models.Task, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrEmptyTitle
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	status := req.Status
	if status == "" {
		status = models.TaskPending
	}

	task := models.Task{
		OwnerID:     s.ownerID,
		Title:       req.Title,
		Description: req.Description,
		Due:         req.Due,
		Priority:    priority,
		Subject:     req.Subject,
		Status:      status,
	}

	if err := s.db.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return &task, nil
}

// TaskUpdate describes a partial update; nil fields are left unchanged.
// ClearDue removes the due date.
type TaskUpdate struct {
	Title       *string
	Description *string
	Due         *time.Time
	ClearDue    bool
	Priority    *string
	Subject     *string
	Status      *string
}

// Update applies a partial update to the task with the given id. The update
// timestamp is always refreshed, even when no field changed.
func (s *TaskStore) Update(id string, upd TaskUpdate) (*models.Task, error) {
	task, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{"updated_at": time.Now()}
	if upd.Title != nil {
		if strings.TrimSpace(*upd.Title) == "" {
			return nil, ErrEmptyTitle
		}
		fields["title"] = *upd.Title
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	if upd.Due != nil {
		fields["due"] = *upd.Due
	} else if upd.ClearDue {
		fields["due"] = nil
	}
	if upd.Priority != nil {
		fields["priority"] = *upd.Priority
	}
	if upd.Subject != nil {
		fields["subject"] = *upd.Subject
	}
	if upd.Status != nil {
		fields["status"] = *upd.Status
	}

	if err := s.db.Model(task).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Delete removes the task with the given id. Deleting an id that no longer
// exists returns ErrNotFound; the snapshot is unchanged in that case.
func (s *TaskStore) Delete(id string) error {
	res := s.db.Where("id = ? AND owner_id = ?", id, s.ownerID).Delete(&models.Task{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return s.Refresh()
}

// Get fetches one task by id, scoped to the owner.
func (s *TaskStore) Get(id string) (*models.Task, error) {
	var task models.Task
	err := s.db.Where("id = ? AND owner_id = ?", id, s.ownerID).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load task: %w", err)
	}
	return &task, nil
}

// ToggleCompletion flips a task between completed and pending. A completed
// task goes back to pending; anything else, including in-progress, goes to
// completed. A toggle never restores in-progress.
func (s *TaskStore) ToggleCompletion(task *models.Task) (*models.Task, error) {
	next := models.TaskCompleted
	if task.Status == models.TaskCompleted {
		next = models.TaskPending
	}
	return s.Update(task.ID, TaskUpdate{Status: &next})
}
