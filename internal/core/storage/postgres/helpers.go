package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/justingrant1/mybeekeep/internal/core/calendar"
)

// eventJSON holds the marshalled JSONB columns of one event. Empty
// collections marshal to nil (SQL NULL) rather than a JSON "null" string.
type eventJSON struct {
	HiveIDs    []byte
	Reminders  []byte
	Recurrence []byte
	Tags       []byte
}

func marshalEventJSON(e *calendar.CalendarEvent) (eventJSON, error) {
	var out eventJSON
	var err error

	if len(e.HiveIDs) > 0 {
		if out.HiveIDs, err = json.Marshal(e.HiveIDs); err != nil {
			return out, fmt.Errorf("failed to marshal hive_ids: %w", err)
		}
	}
	if len(e.Reminders) > 0 {
		if out.Reminders, err = json.Marshal(e.Reminders); err != nil {
			return out, fmt.Errorf("failed to marshal reminders: %w", err)
		}
	}
	if e.Recurrence != nil {
		if out.Recurrence, err = json.Marshal(e.Recurrence); err != nil {
			return out, fmt.Errorf("failed to marshal recurrence: %w", err)
		}
	}
	if len(e.Tags) > 0 {
		if out.Tags, err = json.Marshal(e.Tags); err != nil {
			return out, fmt.Errorf("failed to marshal tags: %w", err)
		}
	}
	return out, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanEventRow scans one calendar_events row. Compatible with both sql.Row
// and sql.Rows.
func scanEventRow(row scanner) (calendar.CalendarEvent, error) {
	var (
		e          calendar.CalendarEvent
		id         string
		endDate    sql.NullTime
		completed  sql.NullTime
		hiveIDs    []byte
		reminders  []byte
		recurrence []byte
		tags       []byte
	)

	err := row.Scan(
		&id,
		&e.OwnerID,
		&e.Title,
		&e.Description,
		&e.StartDate,
		&endDate,
		&e.AllDay,
		&e.Type,
		&e.Location,
		&e.ApiaryID,
		&hiveIDs,
		&reminders,
		&recurrence,
		&e.Color,
		&e.Priority,
		&e.WeatherDependent,
		&e.Completed,
		&completed,
		&e.Notes,
		&tags,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return calendar.CalendarEvent{}, err
	}

	e.ID = calendar.PersistedID(id)
	if endDate.Valid {
		t := endDate.Time
		e.EndDate = &t
	}
	if completed.Valid {
		t := completed.Time
		e.CompletedAt = &t
	}
	if len(hiveIDs) > 0 {
		if err := json.Unmarshal(hiveIDs, &e.HiveIDs); err != nil {
			return calendar.CalendarEvent{}, fmt.Errorf("failed to unmarshal hive_ids: %w", err)
		}
	}
	if len(reminders) > 0 {
		if err := json.Unmarshal(reminders, &e.Reminders); err != nil {
			return calendar.CalendarEvent{}, fmt.Errorf("failed to unmarshal reminders: %w", err)
		}
	}
	if len(recurrence) > 0 {
		var rule calendar.Recurrence
		if err := json.Unmarshal(recurrence, &rule); err != nil {
			return calendar.CalendarEvent{}, fmt.Errorf("failed to unmarshal recurrence: %w", err)
		}
		e.Recurrence = &rule
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &e.Tags); err != nil {
			return calendar.CalendarEvent{}, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
	}
	return e, nil
}
