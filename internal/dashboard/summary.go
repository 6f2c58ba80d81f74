package dashboard

import (
	"time"

	"github.com/studyflow-app/studyflow/internal/models"
)

// Summary holds read-only rollups over the current task and session snapshots.
// It carries no invariants of its own beyond never dividing by zero.
type Summary struct {
	TasksTotal      int
	TasksPending    int
	TasksInProgress int
	TasksCompleted  int

	SessionsTotal     int
	SessionsScheduled int
	SessionsCompleted int
	SessionsCancelled int
	SessionsUpcoming  int

	TasksBySubject map[string]int

	TaskCompletionPct    float64
	SessionCompletionPct float64
}

// Summarize computes display rollups from the given snapshots. Upcoming
// sessions are those starting after now.
func Summarize(tasks []models.Task, sessions []models.Session, now time.Time) Summary {
	s := Summary{TasksBySubject: make(map[string]int)}

	s.TasksTotal = len(tasks)
	for _, t := range tasks {
		switch t.Status {
		case models.TaskPending:
			s.TasksPending++
		case models.TaskInProgress:
			s.TasksInProgress++
		case models.TaskCompleted:
			s.TasksCompleted++
		}
		if t.Subject != "" {
			s.TasksBySubject[t.Subject]++
		}
	}

	s.SessionsTotal = len(sessions)
	for _, sess := range sessions {
		switch sess.Status {
		case models.SessionScheduled:
			s.SessionsScheduled++
		case models.SessionCompleted:
			s.SessionsCompleted++
		case models.SessionCancelled:
			s.SessionsCancelled++
		}
		if sess.StartTime.After(now) {
			s.SessionsUpcoming++
		}
	}

	s.TaskCompletionPct = Percent(s.TasksCompleted, s.TasksTotal)
	s.SessionCompletionPct = Percent(s.SessionsCompleted, s.SessionsTotal)
	return s
}

// Percent returns part/total as a percentage; an empty denominator is 0.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
