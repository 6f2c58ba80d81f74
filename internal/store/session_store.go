package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/studyflow-app/studyflow/internal/models"
	"github.com/studyflow-app/studyflow/internal/schedule"
)

// SessionStore owns all reads and writes of one owner's study sessions,
// mirroring TaskStore: in-memory snapshot, re-synchronized after every
// successful mutation, untouched on failure. Every create and update runs
// the time-range validator before anything reaches the database.
type SessionStore struct {
	db       *gorm.DB
	ownerID  string
	sessions []models.Session
}

// NewSessionStore creates a store for the given owner and loads the initial
// snapshot.
func NewSessionStore(db *gorm.DB, ownerID string) (*SessionStore, error) {
	s := &SessionStore{db: db, ownerID: ownerID}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// OwnerID returns the owner this store is scoped to.
func (s *SessionStore) OwnerID() string { return s.ownerID }

// List returns the current snapshot, ordered by start time ascending.
// Callers must not mutate the returned slice.
func (s *SessionStore) List() []models.Session {
	return s.sessions
}

// Refresh reloads the snapshot from the database.
func (s *SessionStore) Refresh() error {
	var sessions []models.Session
	err := s.db.Where("owner_id = ?", s.ownerID).
		Order("start_time ASC").
		Find(&sessions).Error
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	s.sessions = sessions
	return nil
}

// CreateSessionRequest holds the data needed to create a new session.
type CreateSessionRequest struct {
	Title         string
	Description   string
	StartTime     time.Time
	EndTime       time.Time
	Subject       string
	Status        string // empty defaults to scheduled
	RelatedTaskID string
}

// Create validates the time range, persists a new session and refreshes the
// snapshot. An invalid range short-circuits before any database call.
func (s *SessionStore) Create(req CreateSessionRequest) (*models.Session, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrEmptyTitle
	}
	if err := schedule.ValidateRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	session := newSession(s.ownerID, req)
	if err := s.db.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return &session, nil
}

// CreateBatch persists the given sessions in one transaction, used by the
// planner's bulk commit. Either all rows are written or none are.
func (s *SessionStore) CreateBatch(reqs []CreateSessionRequest) ([]models.Session, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	sessions := make([]models.Session, 0, len(reqs))
	for _, req := range reqs {
		if err := schedule.ValidateRange(req.StartTime, req.EndTime); err != nil {
			return nil, err
		}
		sessions = append(sessions, newSession(s.ownerID, req))
	}

	if err := s.db.Create(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to create sessions: %w", err)
	}

	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// SessionUpdate describes a partial update; nil fields are left unchanged.
type SessionUpdate struct {
	Title         *string
	Description   *string
	StartTime     *time.Time
	EndTime       *time.Time
	Subject       *string
	Status        *string
	RelatedTaskID *string
}

// Update applies a partial update. The effective time range after the update
// is validated first; an invalid range never reaches the database. The update
// timestamp is always refreshed.
func (s *SessionStore) Update(id string, upd SessionUpdate) (*models.Session, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	start := session.StartTime
	end := session.EndTime
	if upd.StartTime != nil {
		start = *upd.StartTime
	}
	if upd.EndTime != nil {
		end = *upd.EndTime
	}
	if err := schedule.ValidateRange(start, end); err != nil {
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
	if upd.StartTime != nil {
		fields["start_time"] = *upd.StartTime
	}
	if upd.EndTime != nil {
		fields["end_time"] = *upd.EndTime
	}
	if upd.Subject != nil {
		fields["subject"] = *upd.Subject
	}
	if upd.Status != nil {
		fields["status"] = *upd.Status
	}
	if upd.RelatedTaskID != nil {
		fields["related_task_id"] = *upd.RelatedTaskID
	}

	if err := s.db.Model(session).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Delete removes the session with the given id. Deleting an id that no longer
// exists returns ErrNotFound; the snapshot is unchanged in that case.
func (s *SessionStore) Delete(id string) error {
	res := s.db.Where("id = ? AND owner_id = ?", id, s.ownerID).Delete(&models.Session{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return s.Refresh()
}

// Get fetches one session by id, scoped to the owner.
func (s *SessionStore) Get(id string) (*models.Session, error) {
	var session models.Session
	err := s.db.Where("id = ? AND owner_id = ?", id, s.ownerID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &session, nil
}

func newSession(ownerID string, req CreateSessionRequest) models.Session {
	status := req.Status
	if status == "" {
		status = models.SessionScheduled
	}
	return models.Session{
		OwnerID:       ownerID,
		Title:         req.Title,
		Description:   req.Description,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Subject:       req.Subject,
		Status:        status,
		RelatedTaskID: req.RelatedTaskID,
	}
}
