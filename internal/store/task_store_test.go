package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/studyflow-app/studyflow/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { Close(db) })
	return db
}

func newTestTaskStore(t *testing.T) *TaskStore {
	t.Helper()
	s, err := NewTaskStore(testDB(t), "owner-1")
	if err != nil {
		t.Fatalf("NewTaskStore: %v", err)
	}
	return s
}

func TestTaskCreateDefaults(t *testing.T) {
	s := newTestTaskStore(t)

	task, err := s.Create(CreateTaskRequest{Title: "Finish essay"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.ID == "" {
		t.Error("store did not assign an id")
	}
	if task.Priority != models.PriorityMedium {
		t.Errorf("priority = %q, want medium", task.Priority)
	}
	if task.Status != models.TaskPending {
		t.Errorf("status = %q, want pending", task.Status)
	}
	if len(s.List()) != 1 {
		t.Errorf("snapshot has %d tasks, want 1", len(s.List()))
	}
}

func TestTaskCreateEmptyTitle(t *testing.T) {
	s := newTestTaskStore(t)

	if _, err := s.Create(CreateTaskRequest{Title: "   "}); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("Create with blank title = %v, want ErrEmptyTitle", err)
	}
	if len(s.List()) != 0 {
		t.Errorf("snapshot changed on failed create")
	}
}

func TestTaskListOrderedByDueNullsLast(t *testing.T) {
	s := newTestTaskStore(t)

	later := time.Now().AddDate(0, 0, 7)
	sooner := time.Now().AddDate(0, 0, 2)

	if _, err := s.Create(CreateTaskRequest{Title: "no due date"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Create(CreateTaskRequest{Title: "due later", Due: &later}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Create(CreateTaskRequest{Title: "due sooner", Due: &sooner}); err != nil {
		t.Fatal(err)
	}

	tasks := s.List()
	if len(tasks) != 3 {
		t.Fatalf("got %d tasks, want 3", len(tasks))
	}
	if tasks[0].Title != "due sooner" || tasks[1].Title != "due later" || tasks[2].Title != "no due date" {
		t.Errorf("order = [%s, %s, %s], want dated ascending with undated last",
			tasks[0].Title, tasks[1].Title, tasks[2].Title)
	}
}

func TestTaskUpdate(t *testing.T) {
	s := newTestTaskStore(t)

	task, err := s.Create(CreateTaskRequest{Title: "Read chapter 7"})
	if err != nil {
		t.Fatal(err)
	}
	createdUpdatedAt := task.UpdatedAt

	time.Sleep(10 * time.Millisecond)

	status := models.TaskInProgress
	updated, err := s.Update(task.ID, TaskUpdate{Status: &status})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != models.TaskInProgress {
		t.Errorf("status = %q, want in-progress", updated.Status)
	}
	if !updated.UpdatedAt.After(createdUpdatedAt) {
		t.Errorf("UpdatedAt was not refreshed: %v -> %v", createdUpdatedAt, updated.UpdatedAt)
	}

	if _, err := s.Update("missing-id", TaskUpdate{Status: &status}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update on missing id = %v, want ErrNotFound", err)
	}
}

func TestTaskDelete(t *testing.T) {
	s := newTestTaskStore(t)

	task, err := s.Create(CreateTaskRequest{Title: "temp"})
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Delete(task.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(s.List()) != 0 {
		t.Errorf("snapshot has %d tasks after delete, want 0", len(s.List()))
	}

	// Deleting again is a non-fatal NotFound; the snapshot is unchanged.
	if err := s.Delete(task.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestToggleCompletion(t *testing.T) {
	s := newTestTaskStore(t)

	t.Run("PendingRoundTrips", func(t *testing.T) {
		task, err := s.Create(CreateTaskRequest{Title: "toggle me"})
		if err != nil {
			t.Fatal(err)
		}

		task, err = s.ToggleCompletion(task)
		if err != nil {
			t.Fatal(err)
		}
		if task.Status != models.TaskCompleted {
			t.Errorf("after first toggle status = %q, want completed", task.Status)
		}

		task, err = s.ToggleCompletion(task)
		if err != nil {
			t.Fatal(err)
		}
		if task.Status != models.TaskPending {
			t.Errorf("after second toggle status = %q, want pending", task.Status)
		}
	})

	t.Run("InProgressNeverRestored", func(t *testing.T) {
		task, err := s.Create(CreateTaskRequest{Title: "half done", Status: models.TaskInProgress})
		if err != nil {
			t.Fatal(err)
		}

		task, err = s.ToggleCompletion(task)
		if err != nil {
			t.Fatal(err)
		}
		if task.Status != models.TaskCompleted {
			t.Errorf("toggling in-progress gave %q, want completed", task.Status)
		}

		task, err = s.ToggleCompletion(task)
		if err != nil {
			t.Fatal(err)
		}
		if task.Status != models.TaskPending {
			t.Errorf("toggling back gave %q, want pending (never in-progress)", task.Status)
		}
	})
}

func TestTaskStoreIgnoresOtherOwners(t *testing.T) {
	db := testDB(t)

	mine, err := NewTaskStore(db, "owner-1")
	if err != nil {
		t.Fatal(err)
	}
	theirs, err := NewTaskStore(db, "owner-2")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := theirs.Create(CreateTaskRequest{Title: "not mine"}); err != nil {
		t.Fatal(err)
	}
	if err := mine.Refresh(); err != nil {
		t.Fatal(err)
	}
	if len(mine.List()) != 0 {
		t.Errorf("owner-1 sees %d foreign tasks", len(mine.List()))
	}
}
