package calendar

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	apperr "github.com/justingrant1/mybeekeep/internal/core/errors"
)

// EventType is the fixed enumeration of beekeeping activity kinds.
type EventType string

const (
	TypeInspection      EventType = "inspection"
	TypeTreatment       EventType = "treatment"
	TypeHarvest         EventType = "harvest"
	TypeFeeding         EventType = "feeding"
	TypeEquipment       EventType = "equipment"
	TypeQueenCheck      EventType = "queen_check"
	TypeSwarmPrevention EventType = "swarm_prevention"
	TypeWeatherAlert    EventType = "weather_alert"
	TypeOther           EventType = "other"
)

// typeStyles is the compile-time presentation mapping for each event type.
var typeStyles = map[EventType]struct {
	Color string
	Icon  string
}{
	TypeInspection:      {Color: "#f59e0b", Icon: "search"},
	TypeTreatment:       {Color: "#ef4444", Icon: "shield"},
	TypeHarvest:         {Color: "#d97706", Icon: "droplet"},
	TypeFeeding:         {Color: "#10b981", Icon: "coffee"},
	TypeEquipment:       {Color: "#6b7280", Icon: "tool"},
	TypeQueenCheck:      {Color: "#8b5cf6", Icon: "crown"},
	TypeSwarmPrevention: {Color: "#f97316", Icon: "alert-triangle"},
	TypeWeatherAlert:    {Color: "#3b82f6", Icon: "cloud"},
	TypeOther:           {Color: "#64748b", Icon: "calendar"},
}

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	_, ok := typeStyles[t]
	return ok
}

// DefaultColor returns the type's compile-time display color.
func (t EventType) DefaultColor() string {
	return typeStyles[t].Color
}

// Icon returns the type's compile-time display icon name.
func (t EventType) Icon() string {
	return typeStyles[t].Icon
}

// Priority orders events within a day. High sorts first.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank maps a priority to its sort position; unset priorities rank as medium.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

// Frequency is the unit a recurrence rule advances by.
type Frequency string

const (
	FreqDaily   Frequency = "daily"
	FreqWeekly  Frequency = "weekly"
	FreqMonthly Frequency = "monthly"
	FreqYearly  Frequency = "yearly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FreqDaily, FreqWeekly, FreqMonthly, FreqYearly:
		return true
	}
	return false
}

// Recurrence describes how a base event repeats. When both Until and Count
// are set, expansion stops at whichever bound is reached first. Count == 0
// means unbounded.
type Recurrence struct {
	Frequency Frequency  `json:"frequency"`
	Interval  int        `json:"interval"`
	Until     *time.Time `json:"until,omitempty"`
	Count     int        `json:"count,omitempty"`
}

// Validate rejects rules that cannot be expanded. A non-positive interval is
// a hard error, not clamped.
func (r *Recurrence) Validate(start time.Time) error {
	if !r.Frequency.Valid() {
		return &apperr.InvalidRecurrenceError{Reason: fmt.Sprintf("unknown frequency %q", r.Frequency)}
	}
	if r.Interval <= 0 {
		return &apperr.InvalidRecurrenceError{Reason: fmt.Sprintf("interval must be positive, got %d", r.Interval)}
	}
	if r.Count < 0 {
		return &apperr.InvalidRecurrenceError{Reason: fmt.Sprintf("count must not be negative, got %d", r.Count)}
	}
	if r.Until != nil && r.Until.Before(start) {
		return &apperr.InvalidRecurrenceError{Reason: "until precedes the event start"}
	}
	return nil
}

// Reminder is scheduling metadata consumed by an external notifier.
// The core stores and round-trips it, nothing more.
type Reminder struct {
	Channel       string `json:"channel"`
	MinutesBefore int    `json:"minutes_before"`
	Sent          bool   `json:"sent"`
}

// Tags attached by the core when materializing synthetic events.
const (
	TagRecurringInstance = "recurring-instance"
	TagRecommended       = "recommended"
	TagSeasonal          = "seasonal"
)

// IDKind discriminates the EventID union.
type IDKind int

const (
	IDPersisted IDKind = iota
	IDOccurrence
	IDSeasonal
)

// EventID is a tagged union over the three id spaces: repository-assigned
// ids, ephemeral recurrence occurrences, and ephemeral seasonal templates.
// The legacy derived strings ("<base>-<unixMillis>", "<season>-<n>-<year>")
// are produced only at the serialization boundary, so two different bases
// can never collide inside the core.
type EventID struct {
	kind   IDKind
	base   string
	at     time.Time
	index  int
	year   int
	season string
}

// PersistedID wraps a repository-assigned identifier.
func PersistedID(id string) EventID {
	return EventID{kind: IDPersisted, base: id}
}

// OccurrenceID identifies one materialized occurrence of a recurring base.
func OccurrenceID(baseID string, at time.Time) EventID {
	return EventID{kind: IDOccurrence, base: baseID, at: at}
}

// SeasonalID identifies one generated seasonal template event.
func SeasonalID(season string, index, year int) EventID {
	return EventID{kind: IDSeasonal, season: season, index: index, year: year}
}

func (id EventID) Kind() IDKind { return id.kind }

// Base returns the persisted id this id derives from, or "" for seasonal ids.
func (id EventID) Base() string { return id.base }

func (id EventID) IsZero() bool {
	return id == EventID{}
}

// String renders the legacy derived identifier.
func (id EventID) String() string {
	switch id.kind {
	case IDOccurrence:
		return fmt.Sprintf("%s-%d", id.base, id.at.UnixMilli())
	case IDSeasonal:
		return fmt.Sprintf("%s-%d-%d", id.season, id.index, id.year)
	default:
		return id.base
	}
}

// MarshalJSON renders the derived string form.
func (id EventID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON reads a persisted id. Ephemeral ids never arrive on the
// wire: occurrences and seasonal templates are computed, not submitted.
func (id *EventID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*id = PersistedID(s)
	return nil
}

// CalendarEvent is a date-stamped beekeeping activity. It is either a base
// event as persisted by the repository, or an ephemeral occurrence/template
// materialized for one view load.
type CalendarEvent struct {
	ID               EventID     `json:"id"`
	OwnerID          string      `json:"owner_id"`
	Title            string      `json:"title"`
	Description      string      `json:"description,omitempty"`
	StartDate        time.Time   `json:"start_date"`
	EndDate          *time.Time  `json:"end_date,omitempty"`
	AllDay           bool        `json:"all_day"`
	Type             EventType   `json:"type"`
	Location         string      `json:"location,omitempty"`
	ApiaryID         string      `json:"apiary_id,omitempty"`
	HiveIDs          []string    `json:"hive_ids,omitempty"`
	Reminders        []Reminder  `json:"reminders,omitempty"`
	Recurrence       *Recurrence `json:"recurrence,omitempty"`
	Color            string      `json:"color,omitempty"`
	Priority         Priority    `json:"priority"`
	WeatherDependent bool        `json:"weather_dependent"`
	Completed        bool        `json:"completed"`
	CompletedAt      *time.Time  `json:"completed_at,omitempty"`
	Notes            string      `json:"notes,omitempty"`
	Tags             []string    `json:"tags,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// Validate checks the envelope invariants of a base event.
func (e *CalendarEvent) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return apperr.NewValidation("title", "must not be empty")
	}
	if e.StartDate.IsZero() {
		return apperr.NewValidation("start_date", "is required")
	}
	if e.OwnerID == "" {
		return apperr.NewValidation("owner_id", "is required")
	}
	if !e.Type.Valid() {
		return apperr.NewValidation("type", fmt.Sprintf("unknown event type %q", e.Type))
	}
	if e.Priority != "" && !e.Priority.Valid() {
		return apperr.NewValidation("priority", fmt.Sprintf("unknown priority %q", e.Priority))
	}
	if e.EndDate != nil && e.EndDate.Before(e.StartDate) {
		return apperr.NewValidation("end_date", "precedes start_date")
	}
	if e.Completed != (e.CompletedAt != nil) {
		return apperr.NewValidation("completed_at", "must be set exactly when completed is true")
	}
	if e.Recurrence != nil {
		if err := e.Recurrence.Validate(e.StartDate); err != nil {
			return err
		}
	}
	return nil
}

// EffectiveEnd returns the end instant, falling back to the start for
// point-in-time events.
func (e *CalendarEvent) EffectiveEnd() time.Time {
	if e.EndDate != nil {
		return *e.EndDate
	}
	return e.StartDate
}

// Duration returns EndDate - StartDate, or zero for point-in-time events.
func (e *CalendarEvent) Duration() time.Duration {
	return e.EffectiveEnd().Sub(e.StartDate)
}

// EffectiveColor returns the per-event override when set, else the type's
// default display color.
func (e *CalendarEvent) EffectiveColor() string {
	if e.Color != "" {
		return e.Color
	}
	return e.Type.DefaultColor()
}

// EffectivePriority treats an unset priority as medium.
func (e *CalendarEvent) EffectivePriority() Priority {
	if e.Priority == "" {
		return PriorityMedium
	}
	return e.Priority
}

// HasTag reports whether the event carries the given tag.
func (e *CalendarEvent) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IntersectsHives reports whether the event's hive set shares at least one
// id with the given set.
func (e *CalendarEvent) IntersectsHives(hiveIDs []string) bool {
	for _, want := range hiveIDs {
		for _, have := range e.HiveIDs {
			if want == have {
				return true
			}
		}
	}
	return false
}
