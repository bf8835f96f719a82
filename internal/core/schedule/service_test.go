package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/justingrant1/mybeekeep/internal/core/calendar"
	apperr "github.com/justingrant1/mybeekeep/internal/core/errors"
	"github.com/justingrant1/mybeekeep/internal/core/seasonal"
	"github.com/justingrant1/mybeekeep/internal/core/storage"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// failingRepo errors on every read, for repository-failure paths.
type failingRepo struct {
	storage.EventRepository
	err error
}

func (r failingRepo) Query(ctx context.Context, ownerID string, start, end time.Time, filter storage.QueryFilter) ([]calendar.CalendarEvent, error) {
	return nil, r.err
}

func newTestScheduler(t *testing.T) (*Scheduler, *storage.MemoryRepository) {
	t.Helper()
	repo := storage.NewMemoryRepository()
	clock := fixedClock{t: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
	return NewScheduler(repo, clock), repo
}

func seed(t *testing.T, repo *storage.MemoryRepository, e calendar.CalendarEvent) calendar.CalendarEvent {
	t.Helper()
	stored, err := repo.Insert(context.Background(), e)
	require.NoError(t, err)
	return stored
}

func mkEvent(id, owner, title string, start time.Time) calendar.CalendarEvent {
	return calendar.CalendarEvent{
		ID:        calendar.PersistedID(id),
		OwnerID:   owner,
		Title:     title,
		StartDate: start,
		Type:      calendar.TypeInspection,
		Priority:  calendar.PriorityMedium,
	}
}

func dayEvents(t *testing.T, sched *Schedule, day time.Time) []calendar.CalendarEvent {
	t.Helper()
	for _, d := range sched.Days {
		if d.Date.Equal(day) {
			return d.Events
		}
	}
	return nil
}

func TestLoadEvents_RequestValidation(t *testing.T) {
	s, _ := newTestScheduler(t)
	ref := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	_, err := s.LoadEvents(context.Background(), LoadRequest{Reference: ref, View: calendar.ViewMonth})
	var valErr *apperr.ValidationError
	require.ErrorAs(t, err, &valErr)
	require.Equal(t, "owner_id", valErr.Field)

	_, err = s.LoadEvents(context.Background(), LoadRequest{OwnerID: "user-1", Reference: ref, View: "quarter"})
	require.ErrorAs(t, err, &valErr)
	require.Equal(t, "view", valErr.Field)
}

func TestLoadEvents_PrioritySortWithinDay(t *testing.T) {
	s, repo := newTestScheduler(t)
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	low := mkEvent("evt-low", "user-1", "Paint boxes", day.Add(8*time.Hour))
	low.Priority = calendar.PriorityLow
	high := mkEvent("evt-high", "user-1", "Treat for mites", day.Add(10*time.Hour))
	high.Priority = calendar.PriorityHigh
	medium := mkEvent("evt-med", "user-1", "Refill feeder", day.Add(9*time.Hour))

	seed(t, repo, low)
	seed(t, repo, high)
	seed(t, repo, medium)

	sched, err := s.LoadEvents(context.Background(), LoadRequest{
		OwnerID: "user-1", Reference: day, View: calendar.ViewDay,
	})
	require.NoError(t, err)

	evs := dayEvents(t, sched, day)
	require.Len(t, evs, 3)
	require.Equal(t, "Treat for mites", evs[0].Title)
	require.Equal(t, "Refill feeder", evs[1].Title)
	require.Equal(t, "Paint boxes", evs[2].Title)
}

func TestLoadEvents_AllDayBeforeTimedAtSamePriority(t *testing.T) {
	s, repo := newTestScheduler(t)
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	timed := mkEvent("evt-timed", "user-1", "Morning inspection", day.Add(7*time.Hour))
	allDay := mkEvent("evt-allday", "user-1", "Honey flow watch", day.Add(12*time.Hour))
	allDay.AllDay = true

	seed(t, repo, timed)
	seed(t, repo, allDay)

	sched, err := s.LoadEvents(context.Background(), LoadRequest{
		OwnerID: "user-1", Reference: day, View: calendar.ViewDay,
	})
	require.NoError(t, err)

	evs := dayEvents(t, sched, day)
	require.Len(t, evs, 2)
	require.Equal(t, "Honey flow watch", evs[0].Title)
	require.Equal(t, "Morning inspection", evs[1].Title)
}

func TestLoadEvents_RecurringBaseOutsideWindowExpandsIn(t *testing.T) {
	s, repo := newTestScheduler(t)

	base := mkEvent("evt-rec", "user-1", "Weekly check", time.Date(2025, 5, 15, 9, 0, 0, 0, time.UTC))
	base.Recurrence = &calendar.Recurrence{Frequency: calendar.FreqWeekly, Interval: 1}
	seed(t, repo, base)

	sched, err := s.LoadEvents(context.Background(), LoadRequest{
		OwnerID:   "user-1",
		Reference: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		View:      calendar.ViewMonth,
	})
	require.NoError(t, err)

	var total int
	for _, d := range sched.Days {
		for _, e := range d.Events {
			require.True(t, e.HasTag(calendar.TagRecurringInstance))
			require.Equal(t, time.Thursday, e.StartDate.Weekday())
			total++
		}
	}
	// The June grid runs Jun 1 through Jul 5: five Thursdays.
	require.Equal(t, 5, total)
}

func TestLoadEvents_InvalidStoredRuleSkipsExpansion(t *testing.T) {
	s, repo := newTestScheduler(t)
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	bad := mkEvent("evt-bad", "user-1", "Broken repeat", day.Add(9*time.Hour))
	bad.Recurrence = &calendar.Recurrence{Frequency: calendar.FreqDaily, Interval: 0}
	seed(t, repo, bad)

	sched, err := s.LoadEvents(context.Background(), LoadRequest{
		OwnerID: "user-1", Reference: day, View: calendar.ViewDay,
	})
	require.NoError(t, err)

	// The base still shows; only the expansion is dropped.
	evs := dayEvents(t, sched, day)
	require.Len(t, evs, 1)
	require.Equal(t, "Broken repeat", evs[0].Title)
}

func TestLoadEvents_AgendaIsFlatChronological(t *testing.T) {
	s, repo := newTestScheduler(t)
	ref := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	seed(t, repo, mkEvent("evt-1", "user-1", "Later", time.Date(2025, 7, 20, 9, 0, 0, 0, time.UTC)))
	seed(t, repo, mkEvent("evt-2", "user-1", "Sooner", time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)))
	seed(t, repo, mkEvent("evt-3", "user-1", "Middle", time.Date(2025, 6, 25, 9, 0, 0, 0, time.UTC)))
	// Outside the three-month horizon.
	seed(t, repo, mkEvent("evt-4", "user-1", "Too far", time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)))

	sched, err := s.LoadEvents(context.Background(), LoadRequest{
		OwnerID: "user-1", Reference: ref, View: calendar.ViewAgenda,
	})
	require.NoError(t, err)
	require.Empty(t, sched.Days)
	require.Len(t, sched.Events, 3)
	require.Equal(t, "Sooner", sched.Events[0].Title)
	require.Equal(t, "Middle", sched.Events[1].Title)
	require.Equal(t, "Later", sched.Events[2].Title)
}

func TestLoadEvents_SearchFilter(t *testing.T) {
	s, repo := newTestScheduler(t)
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	seed(t, repo, mkEvent("evt-1", "user-1", "Varroa treatment", day.Add(9*time.Hour)))
	seed(t, repo, mkEvent("evt-2", "user-1", "Feeder refill", day.Add(10*time.Hour)))

	sched, err := s.LoadEvents(context.Background(), LoadRequest{
		OwnerID: "user-1", Reference: day, View: calendar.ViewDay,
		Filter: Filter{Search: "varroa"},
	})
	require.NoError(t, err)

	evs := dayEvents(t, sched, day)
	require.Len(t, evs, 1)
	require.Equal(t, "Varroa treatment", evs[0].Title)
}

func TestLoadEvents_OwnerIsolation(t *testing.T) {
	s, repo := newTestScheduler(t)
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	seed(t, repo, mkEvent("evt-1", "user-1", "Mine", day.Add(9*time.Hour)))
	seed(t, repo, mkEvent("evt-2", "user-2", "Theirs", day.Add(9*time.Hour)))

	sched, err := s.LoadEvents(context.Background(), LoadRequest{
		OwnerID: "user-1", Reference: day, View: calendar.ViewDay,
	})
	require.NoError(t, err)

	evs := dayEvents(t, sched, day)
	require.Len(t, evs, 1)
	require.Equal(t, "Mine", evs[0].Title)
}

func TestLoadEvents_IncludeRecommendedMergesTemplates(t *testing.T) {
	s, repo := newTestScheduler(t)
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	seed(t, repo, mkEvent("evt-1", "user-1", "My own task", day.Add(9*time.Hour)))

	sched, err := s.LoadEvents(context.Background(), LoadRequest{
		OwnerID:            "user-1",
		Reference:          day,
		View:               calendar.ViewDay,
		IncludeRecommended: true,
		Zone:               seasonal.ZoneNortheast,
	})
	require.NoError(t, err)

	evs := dayEvents(t, sched, day)
	require.Len(t, evs, 2)

	var recommended *calendar.CalendarEvent
	for i := range evs {
		if evs[i].HasTag(calendar.TagRecommended) {
			recommended = &evs[i]
		}
	}
	require.NotNil(t, recommended)
	require.Equal(t, "summer-0-2025", recommended.ID.String())
	require.Equal(t, "user-1", recommended.OwnerID)
}

func TestLoadEvents_RecommendedUsesDefaultZoneWhenUnset(t *testing.T) {
	repo := storage.NewMemoryRepository()
	clock := fixedClock{t: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
	s := NewScheduler(repo, clock, WithDefaultZone(seasonal.ZoneSouthwest))

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	sched, err := s.LoadEvents(context.Background(), LoadRequest{
		OwnerID: "user-1", Reference: day, View: calendar.ViewDay,
		IncludeRecommended: true,
	})
	require.NoError(t, err)

	evs := dayEvents(t, sched, day)
	require.Len(t, evs, 1)
	require.Equal(t, "Mesquite harvest", evs[0].Title)
}

func TestLoadEvents_RepositoryFailure(t *testing.T) {
	s := NewScheduler(failingRepo{err: errors.New("connection reset")}, fixedClock{t: time.Now()})

	_, err := s.LoadEvents(context.Background(), LoadRequest{
		OwnerID:   "user-1",
		Reference: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		View:      calendar.ViewMonth,
	})
	var repoErr *apperr.RepositoryError
	require.ErrorAs(t, err, &repoErr)
	require.Equal(t, "query", repoErr.Op)
}

func TestScheduler_TodayUsesClock(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	s := NewScheduler(storage.NewMemoryRepository(), fixedClock{t: now})
	require.Equal(t, now, s.Today())
}

func TestNewScheduler_NilRepositoryPanics(t *testing.T) {
	require.Panics(t, func() { NewScheduler(nil, nil) })
}
