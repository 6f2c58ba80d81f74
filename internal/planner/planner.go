package planner

import (
	"context"
	"fmt"
	"sync"

	"github.com/studyflow-app/studyflow/internal/models"
	"github.com/studyflow-app/studyflow/internal/notify"
	"github.com/studyflow-app/studyflow/internal/schedule"
	"github.com/studyflow-app/studyflow/internal/store"
)

// Outcome is the terminal state of one generate run.
type Outcome int

const (
	// OutcomeCommitted means the proposals were persisted.
	OutcomeCommitted Outcome = iota
	// OutcomeNoTasks means the owner has no tasks to plan from.
	OutcomeNoTasks
	// OutcomeGenerationFailed means the generator errored or proposed nothing.
	OutcomeGenerationFailed
	// OutcomePersistFailed means the bulk insert failed; proposals are discarded.
	OutcomePersistFailed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeCommitted:
		return "committed"
	case OutcomeNoTasks:
		return "no tasks"
	case OutcomeGenerationFailed:
		return "generation failed"
	case OutcomePersistFailed:
		return "persist failed"
	}
	return "unknown"
}

// Result is what one generate run produced. Sessions is empty for every
// outcome except OutcomeCommitted.
type Result struct {
	Outcome  Outcome
	Sessions []models.Session
}

// ownerLocks serializes generate runs per owner. Two concurrently triggered
// generations for the same owner queue behind each other instead of both
// committing.
var ownerLocks sync.Map // owner id -> *sync.Mutex

func lockOwner(ownerID string) *sync.Mutex {
	mu, _ := ownerLocks.LoadOrStore(ownerID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Planner turns the owner's task list into persisted study sessions:
// fetch tasks, ask the generator for proposals, tag and bulk-insert them.
// Every run ends in exactly one terminal outcome and emits exactly one
// notification. Failed runs leave existing data untouched and are not retried.
type Planner struct {
	tasks     *store.TaskStore
	sessions  *store.SessionStore
	generator Generator
	notifier  notify.Notifier
}

// New creates a planner over owner-scoped stores.
func New(tasks *store.TaskStore, sessions *store.SessionStore, generator Generator, notifier notify.Notifier) *Planner {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &Planner{
		tasks:     tasks,
		sessions:  sessions,
		generator: generator,
		notifier:  notifier,
	}
}

// Generate runs one plan cycle for the owner.
func (p *Planner) Generate(ctx context.Context) Result {
	mu := lockOwner(p.tasks.OwnerID())
	mu.Lock()
	defer mu.Unlock()

	if err := p.tasks.Refresh(); err != nil {
		notify.Error(p.notifier, "Error", "Failed to load tasks.")
		return Result{Outcome: OutcomeGenerationFailed}
	}
	tasks := p.tasks.List()
	if len(tasks) == 0 {
		notify.Info(p.notifier, "No tasks found", "Please add some tasks first to generate study sessions.")
		return Result{Outcome: OutcomeNoTasks}
	}

	proposals, err := p.generator.ProposeSessions(ctx, tasks)
	if err != nil || len(proposals) == 0 {
		notify.Error(p.notifier, "Generation failed", "Could not generate study sessions. Please try again.")
		return Result{Outcome: OutcomeGenerationFailed}
	}

	// Proposals are trusted verbatim: no dedup against existing sessions and
	// no overlap checking. Only the session time-range invariant is enforced;
	// proposals that fail it are dropped before the commit.
	reqs := make([]store.CreateSessionRequest, 0, len(proposals))
	for _, prop := range proposals {
		if schedule.ValidateRange(prop.StartTime, prop.EndTime) != nil {
			continue
		}
		reqs = append(reqs, store.CreateSessionRequest{
			Title:         prop.Title,
			Description:   prop.Description,
			StartTime:     prop.StartTime,
			EndTime:       prop.EndTime,
			Subject:       prop.Subject,
			Status:        models.SessionScheduled,
			RelatedTaskID: prop.RelatedTaskID,
		})
	}
	if len(reqs) == 0 {
		notify.Error(p.notifier, "Generation failed", "Could not generate study sessions. Please try again.")
		return Result{Outcome: OutcomeGenerationFailed}
	}

	created, err := p.sessions.CreateBatch(reqs)
	if err != nil {
		notify.Error(p.notifier, "Error", "Failed to save generated study sessions.")
		return Result{Outcome: OutcomePersistFailed}
	}

	notify.Success(p.notifier, "Success",
		fmt.Sprintf("Generated %d study sessions for your tasks.", len(created)))
	return Result{Outcome: OutcomeCommitted, Sessions: created}
}
