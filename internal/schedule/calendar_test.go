package schedule

import (
	"testing"
	"time"

	"github.com/studyflow-app/studyflow/internal/models"
)

func mkSession(id string, start time.Time, length time.Duration) models.Session {
	return models.Session{
		ID:        id,
		Title:     "session " + id,
		StartTime: start,
		EndTime:   start.Add(length),
	}
}

func TestSessionsOnDay(t *testing.T) {
	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.Local)

	late := mkSession("a", day.Add(23*time.Hour+50*time.Minute), 30*time.Minute) // 23:50
	early := mkSession("b", day.AddDate(0, 0, 1).Add(10*time.Minute), time.Hour) // 00:10 next day
	morning := mkSession("c", day.Add(9*time.Hour), 90*time.Minute)
	afternoon := mkSession("d", day.Add(14*time.Hour), time.Hour)

	// Deliberately unsorted input
	sessions := []models.Session{afternoon, early, late, morning}

	got := SessionsOnDay(sessions, day)
	if len(got) != 3 {
		t.Fatalf("SessionsOnDay returned %d sessions, want 3", len(got))
	}

	// Sorted ascending by start time
	wantOrder := []string{"c", "d", "a"}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Errorf("position %d: got session %s, want %s", i, got[i].ID, want)
		}
	}

	// 23:50 and 00:10 the next day are never grouped, even under an hour apart
	nextDay := SessionsOnDay(sessions, day.AddDate(0, 0, 1))
	if len(nextDay) != 1 || nextDay[0].ID != "b" {
		t.Errorf("next day sessions = %v, want just session b", nextDay)
	}

	// Pure: calling again yields the same result and leaves input untouched
	again := SessionsOnDay(sessions, day)
	if len(again) != len(got) {
		t.Errorf("second call returned %d sessions, want %d", len(again), len(got))
	}
	if sessions[0].ID != "d" {
		t.Errorf("input slice was reordered")
	}
}

func TestDaysWithSessions(t *testing.T) {
	day := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.Local)
	sessions := []models.Session{
		mkSession("a", day, time.Hour),
		mkSession("b", day.Add(4*time.Hour), time.Hour), // same day
	}

	days := DaysWithSessions(sessions)
	if len(days) != 1 {
		t.Fatalf("got %d days, want 1", len(days))
	}
	if _, ok := days[DayOf(day)]; !ok {
		t.Errorf("day %v missing from set", DayOf(day))
	}

	// Adding a session on a new day grows the set by exactly one
	sessions = append(sessions, mkSession("c", day.AddDate(0, 0, 3), time.Hour))
	days = DaysWithSessions(sessions)
	if len(days) != 2 {
		t.Errorf("after new-day session got %d days, want 2", len(days))
	}
}

func TestDayIndex(t *testing.T) {
	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.Local)
	a := mkSession("a", day.Add(14*time.Hour), time.Hour)
	b := mkSession("b", day.Add(9*time.Hour), time.Hour)

	idx := NewDayIndex([]models.Session{a, b})

	t.Run("BucketsSorted", func(t *testing.T) {
		got := idx.Day(day)
		if len(got) != 2 {
			t.Fatalf("got %d sessions, want 2", len(got))
		}
		if got[0].ID != "b" || got[1].ID != "a" {
			t.Errorf("bucket order = [%s %s], want [b a]", got[0].ID, got[1].ID)
		}
	})

	t.Run("AddKeepsOrder", func(t *testing.T) {
		idx.Add(mkSession("c", day.Add(11*time.Hour), time.Hour))
		got := idx.Day(day)
		if len(got) != 3 || got[1].ID != "c" {
			t.Fatalf("after Add bucket = %v, want c in the middle", ids(got))
		}
	})

	t.Run("RemoveDropsEmptyBucket", func(t *testing.T) {
		other := mkSession("d", day.AddDate(0, 0, 1).Add(9*time.Hour), time.Hour)
		idx.Add(other)
		if len(idx.Days()) != 2 {
			t.Fatalf("got %d days, want 2", len(idx.Days()))
		}
		idx.Remove(other)
		if len(idx.Days()) != 1 {
			t.Errorf("after Remove got %d days, want 1", len(idx.Days()))
		}
	})

	t.Run("RebuildReplaces", func(t *testing.T) {
		idx.Rebuild(nil)
		if len(idx.Days()) != 0 {
			t.Errorf("after Rebuild(nil) got %d days, want 0", len(idx.Days()))
		}
	})
}

func ids(sessions []models.Session) []string {
	out := make([]string, len(sessions))
	for i, s := range sessions {
		out[i] = s.ID
	}
	return out
}
