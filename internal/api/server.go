package api

import (
	"github.com/gin-gonic/gin"

	"github.com/studyflow-app/studyflow/internal/planner"
	"github.com/studyflow-app/studyflow/internal/store"
)

// Server exposes the scheduling engine as a JSON API for the web front end.
// All timestamps cross the wire as ISO-8601 (RFC 3339) strings.
type Server struct {
	tasks    *store.TaskStore
	sessions *store.SessionStore
	planner  *planner.Planner
	router   *gin.Engine
}

// NewServer wires the engine into a gin router.
func NewServer(tasks *store.TaskStore, sessions *store.SessionStore, pl *planner.Planner) *Server {
	router := gin.Default()

	s := &Server{
		tasks:    tasks,
		sessions: sessions,
		planner:  pl,
		router:   router,
	}

	api := router.Group("/api")
	{
		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleCreateTask)
		api.PUT("/tasks/:id", s.handleUpdateTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
		api.POST("/tasks/:id/toggle", s.handleToggleTask)

		api.GET("/sessions", s.handleListSessions)
		api.POST("/sessions", s.handleCreateSession)
		api.PUT("/sessions/:id", s.handleUpdateSession)
		api.DELETE("/sessions/:id", s.handleDeleteSession)

		api.GET("/calendar/days", s.handleCalendarDays)
		api.GET("/calendar/sessions", s.handleCalendarSessions)

		api.POST("/generate", s.handleGenerate)
		api.GET("/summary", s.handleSummary)
	}

	return s
}

// Run starts the API server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router returns the underlying gin engine, used by tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
