package planner

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/studyflow-app/studyflow/internal/models"
	"github.com/studyflow-app/studyflow/internal/notify"
	"github.com/studyflow-app/studyflow/internal/schedule"
	"github.com/studyflow-app/studyflow/internal/store"
)

type fakeGenerator struct {
	proposals []Proposal
	err       error
	calls     int
}

func (f *fakeGenerator) ProposeSessions(ctx context.Context, tasks []models.Task) ([]Proposal, error) {
	f.calls++
	return f.proposals, f.err
}

// gatedGenerator parks inside ProposeSessions: it signals on entered, then
// waits on release. seen records the session-store size at each entry.
type gatedGenerator struct {
	entered  chan struct{}
	release  chan struct{}
	snapshot func() int
	proposal Proposal

	mu   sync.Mutex
	seen []int
}

func (g *gatedGenerator) ProposeSessions(ctx context.Context, tasks []models.Task) ([]Proposal, error) {
	if g.snapshot != nil {
		g.mu.Lock()
		g.seen = append(g.seen, g.snapshot())
		g.mu.Unlock()
	}
	g.entered <- struct{}{}
	<-g.release
	return []Proposal{g.proposal}, nil
}

type recordingNotifier struct {
	events []notify.Notification
}

func (r *recordingNotifier) Notify(n notify.Notification) {
	r.events = append(r.events, n)
}

type fixture struct {
	db       *gorm.DB
	tasks    *store.TaskStore
	sessions *store.SessionStore
	notifier *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close(db) })

	tasks, err := store.NewTaskStore(db, "owner-1")
	if err != nil {
		t.Fatal(err)
	}
	sessions, err := store.NewSessionStore(db, "owner-1")
	if err != nil {
		t.Fatal(err)
	}
	return &fixture{db: db, tasks: tasks, sessions: sessions, notifier: &recordingNotifier{}}
}

func (f *fixture) planner(gen Generator) *Planner {
	return New(f.tasks, f.sessions, gen, f.notifier)
}

func TestGenerateNoTasks(t *testing.T) {
	f := newFixture(t)
	gen := &fakeGenerator{}

	res := f.planner(gen).Generate(context.Background())

	if res.Outcome != OutcomeNoTasks {
		t.Errorf("outcome = %v, want no tasks", res.Outcome)
	}
	if len(res.Sessions) != 0 {
		t.Errorf("got %d sessions, want 0", len(res.Sessions))
	}
	if gen.calls != 0 {
		t.Errorf("generator was called %d times with no tasks", gen.calls)
	}
	if len(f.sessions.List()) != 0 {
		t.Errorf("store was written with no tasks")
	}
	if len(f.notifier.events) != 1 || f.notifier.events[0].Severity != notify.SeverityInfo {
		t.Errorf("events = %+v, want exactly one info notice", f.notifier.events)
	}
}

func TestGenerateGenerationFailed(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"generator error", &fakeGenerator{err: errors.New("model unavailable")}},
		{"zero proposals", &fakeGenerator{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if _, err := f.tasks.Create(store.CreateTaskRequest{Title: "Finish essay"}); err != nil {
				t.Fatal(err)
			}

			res := f.planner(tt.gen).Generate(context.Background())

			if res.Outcome != OutcomeGenerationFailed {
				t.Errorf("outcome = %v, want generation failed", res.Outcome)
			}
			if tt.gen.calls != 1 {
				t.Errorf("generator called %d times, want 1 (no retry)", tt.gen.calls)
			}
			if len(f.sessions.List()) != 0 {
				t.Errorf("store was written on failed generation")
			}
			if len(f.notifier.events) != 1 || f.notifier.events[0].Severity != notify.SeverityError {
				t.Errorf("events = %+v, want exactly one error notice", f.notifier.events)
			}
		})
	}
}

func TestGenerateCommitted(t *testing.T) {
	f := newFixture(t)

	due := time.Now().AddDate(0, 0, 3)
	task, err := f.tasks.Create(store.CreateTaskRequest{Title: "Finish essay", Due: &due})
	if err != nil {
		t.Fatal(err)
	}

	tomorrow := time.Now().AddDate(0, 0, 1)
	start := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 9, 0, 0, 0, time.Local)
	gen := &fakeGenerator{proposals: []Proposal{{
		Title:         "Essay writing block",
		StartTime:     start,
		EndTime:       start.Add(90 * time.Minute),
		Subject:       "Literature",
		RelatedTaskID: task.ID,
	}}}

	res := f.planner(gen).Generate(context.Background())

	if res.Outcome != OutcomeCommitted {
		t.Fatalf("outcome = %v, want committed", res.Outcome)
	}
	if len(res.Sessions) != 1 {
		t.Fatalf("committed %d sessions, want 1", len(res.Sessions))
	}

	stored := f.sessions.List()
	if len(stored) != 1 {
		t.Fatalf("store has %d sessions, want 1", len(stored))
	}
	got := stored[0]
	if got.Status != models.SessionScheduled {
		t.Errorf("status = %q, want scheduled", got.Status)
	}
	if got.Subject != "Literature" {
		t.Errorf("subject = %q, want Literature", got.Subject)
	}
	if got.RelatedTaskID != task.ID {
		t.Errorf("related task = %q, want %q", got.RelatedTaskID, task.ID)
	}
	if got.OwnerID != "owner-1" {
		t.Errorf("owner = %q, want owner-1", got.OwnerID)
	}

	onDay := schedule.SessionsOnDay(stored, start)
	if len(onDay) != 1 || onDay[0].ID != got.ID {
		t.Errorf("SessionsOnDay(tomorrow) = %d sessions, want exactly the committed one", len(onDay))
	}

	if len(f.notifier.events) != 1 || f.notifier.events[0].Severity != notify.SeveritySuccess {
		t.Errorf("events = %+v, want exactly one success notice", f.notifier.events)
	}
}

func TestGenerateDropsInvalidProposals(t *testing.T) {
	f := newFixture(t)
	if _, err := f.tasks.Create(store.CreateTaskRequest{Title: "Finish essay"}); err != nil {
		t.Fatal(err)
	}

	start := time.Now().Add(24 * time.Hour)
	gen := &fakeGenerator{proposals: []Proposal{
		{Title: "good", StartTime: start, EndTime: start.Add(time.Hour)},
		{Title: "backwards", StartTime: start, EndTime: start.Add(-time.Hour)},
	}}

	res := f.planner(gen).Generate(context.Background())
	if res.Outcome != OutcomeCommitted {
		t.Fatalf("outcome = %v, want committed", res.Outcome)
	}
	if len(res.Sessions) != 1 || res.Sessions[0].Title != "good" {
		t.Errorf("committed %v, want only the well-formed proposal", res.Sessions)
	}

	t.Run("AllInvalid", func(t *testing.T) {
		f2 := newFixture(t)
		if _, err := f2.tasks.Create(store.CreateTaskRequest{Title: "t"}); err != nil {
			t.Fatal(err)
		}
		bad := &fakeGenerator{proposals: []Proposal{
			{Title: "backwards", StartTime: start, EndTime: start.Add(-time.Hour)},
		}}
		res := f2.planner(bad).Generate(context.Background())
		if res.Outcome != OutcomeGenerationFailed {
			t.Errorf("outcome = %v, want generation failed when every proposal is invalid", res.Outcome)
		}
	})
}

func TestGenerateSerializesSameOwner(t *testing.T) {
	f := newFixture(t)
	if _, err := f.tasks.Create(store.CreateTaskRequest{Title: "Finish essay"}); err != nil {
		t.Fatal(err)
	}

	start := time.Now().Add(24 * time.Hour)
	gen := &gatedGenerator{
		entered:  make(chan struct{}),
		release:  make(chan struct{}),
		snapshot: func() int { return len(f.sessions.List()) },
		proposal: Proposal{Title: "block", StartTime: start, EndTime: start.Add(time.Hour)},
	}
	p := f.planner(gen)

	results := make(chan Result, 2)
	go func() { results <- p.Generate(context.Background()) }()
	<-gen.entered // first run is inside the generator, holding the owner lock

	go func() { results <- p.Generate(context.Background()) }()

	select {
	case <-gen.entered:
		t.Fatal("second run entered the generator while the first still held the owner lock")
	case <-time.After(50 * time.Millisecond):
	}

	gen.release <- struct{}{}
	<-gen.entered // second run enters only after the first has committed
	gen.release <- struct{}{}

	for i := 0; i < 2; i++ {
		if res := <-results; res.Outcome != OutcomeCommitted {
			t.Fatalf("outcome = %v, want committed", res.Outcome)
		}
	}
	if n := len(f.sessions.List()); n != 2 {
		t.Errorf("store has %d sessions, want 2", n)
	}

	gen.mu.Lock()
	seen := append([]int(nil), gen.seen...)
	gen.mu.Unlock()
	if len(seen) != 2 || seen[0] != 0 || seen[1] != 1 {
		t.Errorf("session counts at generator entry = %v, want [0 1]", seen)
	}
}

func TestGenerateOwnersRunIndependently(t *testing.T) {
	f := newFixture(t)
	if _, err := f.tasks.Create(store.CreateTaskRequest{Title: "Finish essay"}); err != nil {
		t.Fatal(err)
	}

	start := time.Now().Add(24 * time.Hour)
	gen := &gatedGenerator{
		entered:  make(chan struct{}),
		release:  make(chan struct{}),
		proposal: Proposal{Title: "block", StartTime: start, EndTime: start.Add(time.Hour)},
	}

	done := make(chan Result, 1)
	go func() { done <- f.planner(gen).Generate(context.Background()) }()
	<-gen.entered // owner-1's run is parked, holding owner-1's lock

	// A second owner on the same database is not queued behind owner-1.
	tasks2, err := store.NewTaskStore(f.db, "owner-2")
	if err != nil {
		t.Fatal(err)
	}
	sessions2, err := store.NewSessionStore(f.db, "owner-2")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tasks2.Create(store.CreateTaskRequest{Title: "Revise notes"}); err != nil {
		t.Fatal(err)
	}
	other := New(tasks2, sessions2, &fakeGenerator{proposals: []Proposal{
		{Title: "revision block", StartTime: start, EndTime: start.Add(time.Hour)},
	}}, nil)

	if res := other.Generate(context.Background()); res.Outcome != OutcomeCommitted {
		t.Fatalf("other owner outcome = %v, want committed", res.Outcome)
	}

	gen.release <- struct{}{}
	if res := <-done; res.Outcome != OutcomeCommitted {
		t.Fatalf("outcome = %v, want committed", res.Outcome)
	}
	if n := len(sessions2.List()); n != 1 {
		t.Errorf("owner-2 has %d sessions, want 1", n)
	}
}

func TestGeneratePersistFailed(t *testing.T) {
	f := newFixture(t)
	if _, err := f.tasks.Create(store.CreateTaskRequest{Title: "Finish essay"}); err != nil {
		t.Fatal(err)
	}

	start := time.Now().Add(24 * time.Hour)
	gen := &fakeGenerator{proposals: []Proposal{
		{Title: "doomed", StartTime: start, EndTime: start.Add(time.Hour)},
	}}

	// Break the sessions table so the bulk insert fails while the task fetch
	// still succeeds.
	if err := f.db.Exec("DROP TABLE sessions").Error; err != nil {
		t.Fatal(err)
	}

	res := f.planner(gen).Generate(context.Background())

	if res.Outcome != OutcomePersistFailed {
		t.Errorf("outcome = %v, want persist failed", res.Outcome)
	}
	if len(res.Sessions) != 0 {
		t.Errorf("got %d sessions from a failed persist", len(res.Sessions))
	}
	if len(f.notifier.events) != 1 || f.notifier.events[0].Severity != notify.SeverityError {
		t.Errorf("events = %+v, want exactly one error notice", f.notifier.events)
	}
}
