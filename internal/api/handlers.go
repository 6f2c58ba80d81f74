package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studyflow-app/studyflow/internal/dashboard"
	"github.com/studyflow-app/studyflow/internal/models"
	"github.com/studyflow-app/studyflow/internal/planner"
	"github.com/studyflow-app/studyflow/internal/schedule"
	"github.com/studyflow-app/studyflow/internal/store"
)

// Task handlers

func (s *Server) handleListTasks(c *gin.Context) {
	if err := s.tasks.Refresh(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tasks": s.tasks.List()})
}

type taskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Due         *time.Time `json:"due_date"`
	Priority    string     `json:"priority"`
	Subject     string     `json:"subject"`
	Status      string     `json:"status"`
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if req.Priority != "" && !models.ValidPriority(req.Priority) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "priority must be high, medium or low"})
		return
	}

	task, err := s.tasks.Create(store.CreateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		Due:         req.Due,
		Priority:    req.Priority,
		Subject:     req.Subject,
		Status:      req.Status,
	})
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "task": task})
}

type taskUpdateRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Due         *time.Time `json:"due_date"`
	ClearDue    bool       `json:"clear_due"`
	Priority    *string    `json:"priority"`
	Subject     *string    `json:"subject"`
	Status      *string    `json:"status"`
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var req taskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	task, err := s.tasks.Update(c.Param("id"), store.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Due:         req.Due,
		ClearDue:    req.ClearDue,
		Priority:    req.Priority,
		Subject:     req.Subject,
		Status:      req.Status,
	})
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "task": task})
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.tasks.Delete(c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleToggleTask(c *gin.Context) {
	task, err := s.tasks.Get(c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}
	task, err = s.tasks.ToggleCompletion(task)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "task": task})
}

// Session handlers

func (s *Server) handleListSessions(c *gin.Context) {
	if err := s.sessions.Refresh(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sessions": s.sessions.List()})
}

type sessionRequest struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Subject       string    `json:"subject"`
	Status        string    `json:"status"`
	RelatedTaskID string    `json:"related_task_id"`
}

func (s *Server) handleCreateSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	session, err := s.sessions.Create(store.CreateSessionRequest{
		Title:         req.Title,
		Description:   req.Description,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Subject:       req.Subject,
		Status:        req.Status,
		RelatedTaskID: req.RelatedTaskID,
	})
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "session": session})
}

type sessionUpdateRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	StartTime     *time.Time `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	Subject       *string    `json:"subject"`
	Status        *string    `json:"status"`
	RelatedTaskID *string    `json:"related_task_id"`
}

func (s *Server) handleUpdateSession(c *gin.Context) {
	var req sessionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	session, err := s.sessions.Update(c.Param("id"), store.SessionUpdate{
		Title:         req.Title,
		Description:   req.Description,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Subject:       req.Subject,
		Status:        req.Status,
		RelatedTaskID: req.RelatedTaskID,
	})
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "session": session})
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	if err := s.sessions.Delete(c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Calendar handlers

func (s *Server) handleCalendarDays(c *gin.Context) {
	days := schedule.DaysWithSessions(s.sessions.List())
	out := make([]string, 0, len(days))
	for d := range days {
		out = append(out, d.Time().Format("2006-01-02"))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "days": out})
}

func (s *Server) handleCalendarSessions(c *gin.Context) {
	day, err := time.ParseInLocation("2006-01-02", c.Query("date"), time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "date must be YYYY-MM-DD"})
		return
	}
	sessions := schedule.SessionsOnDay(s.sessions.List(), day)
	c.JSON(http.StatusOK, gin.H{"success": true, "sessions": sessions})
}

// Planner and dashboard handlers

func (s *Server) handleGenerate(c *gin.Context) {
	res := s.planner.Generate(c.Request.Context())
	status := http.StatusOK
	switch res.Outcome {
	case planner.OutcomeGenerationFailed, planner.OutcomePersistFailed:
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{
		"success":  res.Outcome == planner.OutcomeCommitted,
		"outcome":  res.Outcome.String(),
		"sessions": res.Sessions,
	})
}

func (s *Server) handleSummary(c *gin.Context) {
	summary := dashboard.Summarize(s.tasks.List(), s.sessions.List(), time.Now())
	c.JSON(http.StatusOK, gin.H{"success": true, "summary": summary})
}

// writeStoreError maps engine errors onto HTTP statuses: invalid input is a
// 400, a missing id is a 404, everything else is a store fault.
func writeStoreError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, schedule.ErrInvalidRange), errors.Is(err, store.ErrEmptyTitle):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}
