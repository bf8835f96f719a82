package schedule

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/justingrant1/mybeekeep/internal/core/calendar"
	apperr "github.com/justingrant1/mybeekeep/internal/core/errors"
	"github.com/justingrant1/mybeekeep/internal/core/storage"
)

// CreateEvent validates a draft and persists it with a server-assigned id
// and creation timestamps. The draft's ID and OwnerID fields are ignored;
// ownership comes from the ownerID argument.
func (s *Scheduler) CreateEvent(ctx context.Context, ownerID string, draft calendar.CalendarEvent) (calendar.CalendarEvent, error) {
	draft.OwnerID = ownerID
	if draft.Type == "" {
		draft.Type = calendar.TypeOther
	}
	if draft.Priority == "" {
		draft.Priority = calendar.PriorityMedium
	}
	if !draft.Completed {
		draft.CompletedAt = nil
	}
	if err := draft.Validate(); err != nil {
		return calendar.CalendarEvent{}, err
	}

	now := s.clock.Now()
	draft.ID = calendar.PersistedID(uuid.NewString())
	draft.CreatedAt = now
	draft.UpdatedAt = now

	stored, err := s.repo.Insert(ctx, draft)
	if err != nil {
		return calendar.CalendarEvent{}, &apperr.RepositoryError{Op: "insert", Err: err}
	}
	return stored, nil
}

// UpdateEvent applies a partial update. Ownership cannot change: the patch
// type has no owner field.
func (s *Scheduler) UpdateEvent(ctx context.Context, id string, patch storage.EventPatch) (calendar.CalendarEvent, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return calendar.CalendarEvent{}, apperr.NewValidation("title", "must not be empty")
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return calendar.CalendarEvent{}, mapStorageErr("get", id, err)
	}

	if patch.Recurrence != nil {
		start := existing.StartDate
		if patch.StartDate != nil {
			start = *patch.StartDate
		}
		if err := patch.Recurrence.Validate(start); err != nil {
			return calendar.CalendarEvent{}, err
		}
	}

	now := s.clock.Now()
	patch.UpdatedAt = &now

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return calendar.CalendarEvent{}, mapStorageErr("update", id, err)
	}
	return updated, nil
}

// DeleteEvent removes an event. Deleting an unknown id reports NotFound
// rather than failing silently or crashing.
func (s *Scheduler) DeleteEvent(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapStorageErr("delete", id, err)
	}
	return nil
}

// CompleteEvent marks an event done, stamping completed_at from the clock.
func (s *Scheduler) CompleteEvent(ctx context.Context, id string, notes string) (calendar.CalendarEvent, error) {
	now := s.clock.Now()
	done := true
	patch := storage.EventPatch{
		Completed:   &done,
		CompletedAt: &now,
		UpdatedAt:   &now,
	}
	if notes != "" {
		patch.Notes = &notes
	}
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return calendar.CalendarEvent{}, mapStorageErr("complete", id, err)
	}
	return updated, nil
}

func mapStorageErr(op, id string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return &apperr.NotFoundError{ID: id}
	}
	return &apperr.RepositoryError{Op: op, Err: err}
}
