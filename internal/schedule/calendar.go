package schedule

import (
	"sort"
	"time"

	"github.com/studyflow-app/studyflow/internal/models"
)

// DayKey identifies a local calendar day. Sessions group by the (year, month,
// day) triple of their start time, never by 24-hour offset, so a session at
// 23:50 and one at 00:10 the next day land in different buckets.
type DayKey struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the local calendar day of t.
func DayOf(t time.Time) DayKey {
	y, m, d := t.Local().Date()
	return DayKey{Year: y, Month: m, Day: d}
}

// Time returns midnight local time of the day.
func (k DayKey) Time() time.Time {
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, time.Local)
}

// DaysWithSessions returns the set of calendar days containing at least one
// session start. Used to decorate calendar cells.
func DaysWithSessions(sessions []models.Session) map[DayKey]struct{} {
	days := make(map[DayKey]struct{}, len(sessions))
	for _, s := range sessions {
		days[DayOf(s.StartTime)] = struct{}{}
	}
	return days
}

// SessionsOnDay returns the sessions whose start time falls on the same local
// calendar day as day, sorted ascending by start time. Pure function of its
// inputs; the input slice is not modified.
func SessionsOnDay(sessions []models.Session, day time.Time) []models.Session {
	key := DayOf(day)
	var out []models.Session
	for _, s := range sessions {
		if DayOf(s.StartTime) == key {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

// DayIndex buckets sessions by calendar day so repeated day lookups do not
// rescan the full session list. Buckets keep their sessions ordered by start
// time. The index is maintained incrementally on write and can be rebuilt
// wholesale after a snapshot refresh.
type DayIndex struct {
	buckets map[DayKey][]models.Session
}

// NewDayIndex builds an index over the given sessions.
func NewDayIndex(sessions []models.Session) *DayIndex {
	idx := &DayIndex{}
	idx.Rebuild(sessions)
	return idx
}

// Rebuild replaces the index contents with the given snapshot.
func (idx *DayIndex) Rebuild(sessions []models.Session) {
	idx.buckets = make(map[DayKey][]models.Session)
	for _, s := range sessions {
		idx.insert(s)
	}
}

// Add inserts one session into its day bucket, keeping the bucket sorted.
func (idx *DayIndex) Add(s models.Session) {
	if idx.buckets == nil {
		idx.buckets = make(map[DayKey][]models.Session)
	}
	idx.insert(s)
}

// Remove drops the session with the given id from its day bucket, if present.
func (idx *DayIndex) Remove(s models.Session) {
	key := DayOf(s.StartTime)
	bucket := idx.buckets[key]
	for i, b := range bucket {
		if b.ID == s.ID {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(idx.buckets, key)
	} else {
		idx.buckets[key] = bucket
	}
}

// Day returns the ordered sessions on the given day. The returned slice is
// shared with the index and must not be mutated.
func (idx *DayIndex) Day(day time.Time) []models.Session {
	return idx.buckets[DayOf(day)]
}

// Days returns the set of days that have at least one session.
func (idx *DayIndex) Days() map[DayKey]struct{} {
	days := make(map[DayKey]struct{}, len(idx.buckets))
	for k := range idx.buckets {
		days[k] = struct{}{}
	}
	return days
}

func (idx *DayIndex) insert(s models.Session) {
	key := DayOf(s.StartTime)
	bucket := idx.buckets[key]
	pos := sort.Search(len(bucket), func(i int) bool {
		return bucket[i].StartTime.After(s.StartTime)
	})
	bucket = append(bucket, models.Session{})
	copy(bucket[pos+1:], bucket[pos:])
	bucket[pos] = s
	idx.buckets[key] = bucket
}
