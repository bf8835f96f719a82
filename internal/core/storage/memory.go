package storage

import (
	"context"
	"sync"
	"time"

	"github.com/justingrant1/mybeekeep/internal/core/calendar"
)

// MemoryRepository is an in-memory EventRepository. Useful for testing and
// single-user development mode.
type MemoryRepository struct {
	mu     sync.RWMutex
	events map[string]calendar.CalendarEvent
}

// NewMemoryRepository creates an empty in-memory event repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		events: make(map[string]calendar.CalendarEvent),
	}
}

func (r *MemoryRepository) Query(ctx context.Context, ownerID string, start, end time.Time, filter QueryFilter) ([]calendar.CalendarEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []calendar.CalendarEvent
	for _, e := range r.events {
		if e.OwnerID != ownerID {
			continue
		}
		inRange := !e.StartDate.Before(start) && !e.StartDate.After(end)
		recursIntoRange := e.Recurrence != nil && !e.StartDate.After(end)
		if !inRange && !recursIntoRange {
			continue
		}
		if !filter.Matches(&e) {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (calendar.CalendarEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.events[id]
	if !ok {
		return calendar.CalendarEvent{}, ErrNotFound
	}
	return e, nil
}

func (r *MemoryRepository) Insert(ctx context.Context, event calendar.CalendarEvent) (calendar.CalendarEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events[event.ID.String()] = event
	return event, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id string, patch EventPatch) (calendar.CalendarEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.events[id]
	if !ok {
		return calendar.CalendarEvent{}, ErrNotFound
	}
	patch.Apply(&e)
	r.events[id] = e
	return e, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return ErrNotFound
	}
	delete(r.events, id)
	return nil
}
