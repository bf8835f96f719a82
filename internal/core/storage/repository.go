package storage

import (
	"context"
	"errors"
	"time"

	"github.com/justingrant1/mybeekeep/internal/core/calendar"
)

// ErrNotFound is returned when an operation targets an unknown event id.
var ErrNotFound = errors.New("event not found")

// QueryFilter is the repository-level pre-filter: each field is optional and
// the set is conjunctive. The free-text search filter is applied by the
// scheduler, not here.
type QueryFilter struct {
	Types     []calendar.EventType
	ApiaryID  string
	HiveIDs   []string
	Completed *bool
}

// Matches reports whether an event passes every set field of the filter.
func (f QueryFilter) Matches(e *calendar.CalendarEvent) bool {
	if len(f.Types) > 0 {
		ok := false
		for _, t := range f.Types {
			if e.Type == t {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.ApiaryID != "" && e.ApiaryID != f.ApiaryID {
		return false
	}
	if len(f.HiveIDs) > 0 && !e.IntersectsHives(f.HiveIDs) {
		return false
	}
	if f.Completed != nil && e.Completed != *f.Completed {
		return false
	}
	return true
}

// EventPatch is a partial update. Nil fields are left untouched. There is
// deliberately no OwnerID field: ownership is fixed at creation.
type EventPatch struct {
	Title            *string
	Description      *string
	StartDate        *time.Time
	EndDate          *time.Time
	AllDay           *bool
	Type             *calendar.EventType
	Location         *string
	ApiaryID         *string
	HiveIDs          *[]string
	Reminders        *[]calendar.Reminder
	Recurrence       *calendar.Recurrence
	ClearRecurrence  bool
	Color            *string
	Priority         *calendar.Priority
	WeatherDependent *bool
	Completed        *bool
	CompletedAt      *time.Time
	Notes            *string
	Tags             *[]string
	UpdatedAt        *time.Time
}

// Apply copies the set fields onto the event.
func (p EventPatch) Apply(e *calendar.CalendarEvent) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.StartDate != nil {
		e.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		end := *p.EndDate
		e.EndDate = &end
	}
	if p.AllDay != nil {
		e.AllDay = *p.AllDay
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.ApiaryID != nil {
		e.ApiaryID = *p.ApiaryID
	}
	if p.HiveIDs != nil {
		e.HiveIDs = append([]string(nil), (*p.HiveIDs)...)
	}
	if p.Reminders != nil {
		e.Reminders = append([]calendar.Reminder(nil), (*p.Reminders)...)
	}
	if p.ClearRecurrence {
		e.Recurrence = nil
	} else if p.Recurrence != nil {
		rule := *p.Recurrence
		e.Recurrence = &rule
	}
	if p.Color != nil {
		e.Color = *p.Color
	}
	if p.Priority != nil {
		e.Priority = *p.Priority
	}
	if p.WeatherDependent != nil {
		e.WeatherDependent = *p.WeatherDependent
	}
	if p.Completed != nil {
		e.Completed = *p.Completed
		if !e.Completed {
			e.CompletedAt = nil
		}
	}
	if p.CompletedAt != nil {
		at := *p.CompletedAt
		e.CompletedAt = &at
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	if p.Tags != nil {
		e.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.UpdatedAt != nil {
		e.UpdatedAt = *p.UpdatedAt
	}
}

// EventRepository persists and retrieves base calendar events. All failures
// are reported as errors, never as silent empty results.
type EventRepository interface {
	// Query returns the owner's base events that can contribute occurrences
	// to [start, end]: events whose own start falls in the range, plus every
	// recurring event whose start is on or before end regardless of how far
	// back it began. The expander decides actual inclusion for the latter.
	// Results are pre-filtered by the QueryFilter.
	Query(ctx context.Context, ownerID string, start, end time.Time, filter QueryFilter) ([]calendar.CalendarEvent, error)

	// Get returns one event by persisted id, or ErrNotFound.
	Get(ctx context.Context, id string) (calendar.CalendarEvent, error)

	// Insert persists a new event and returns the stored form.
	Insert(ctx context.Context, event calendar.CalendarEvent) (calendar.CalendarEvent, error)

	// Update applies a patch to an existing event, or returns ErrNotFound.
	Update(ctx context.Context, id string, patch EventPatch) (calendar.CalendarEvent, error)

	// Delete removes an event, or returns ErrNotFound for an unknown id.
	Delete(ctx context.Context, id string) error
}
