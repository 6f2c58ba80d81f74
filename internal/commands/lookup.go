package commands

import (
	"fmt"
	"strings"

	"github.com/studyflow-app/studyflow/internal/models"
)

// findTask resolves a full id or unique id prefix against the task snapshot.
func findTask(eng *engine, ref string) (*models.Task, error) {
	tasks := eng.tasks.List()
	var match *models.Task
	for i := range tasks {
		t := &tasks[i]
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			if match != nil {
				return nil, fmt.Errorf("task id '%s' is ambiguous", ref)
			}
			match = t
		}
	}
	if match == nil {
		return nil, fmt.Errorf("task '%s' not found", ref)
	}
	return match, nil
}

// findSession resolves a full id or unique id prefix against the session snapshot.
func findSession(eng *engine, ref string) (*models.Session, error) {
	sessions := eng.sessions.List()
	var match *models.Session
	for i := range sessions {
		s := &sessions[i]
		if s.ID == ref {
			return s, nil
		}
		if strings.HasPrefix(s.ID, ref) {
			if match != nil {
				return nil, fmt.Errorf("session id '%s' is ambiguous", ref)
			}
			match = s
		}
	}
	if match == nil {
		return nil, fmt.Errorf("session '%s' not found", ref)
	}
	return match, nil
}
