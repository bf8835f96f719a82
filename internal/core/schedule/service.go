package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/justingrant1/mybeekeep/internal/core/calendar"
	apperr "github.com/justingrant1/mybeekeep/internal/core/errors"
	"github.com/justingrant1/mybeekeep/internal/core/seasonal"
	"github.com/justingrant1/mybeekeep/internal/core/storage"
)

// Clock abstracts the current time so "today" navigation and completion
// stamps are deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Filter narrows a schedule load. Every field is optional and all set
// fields must match (AND semantics). HiveIDs matches on non-empty
// intersection with the event's hive set.
type Filter struct {
	Types     []calendar.EventType
	ApiaryID  string
	HiveIDs   []string
	Completed *bool
	Search    string
}

func (f Filter) repoFilter() storage.QueryFilter {
	return storage.QueryFilter{
		Types:     f.Types,
		ApiaryID:  f.ApiaryID,
		HiveIDs:   f.HiveIDs,
		Completed: f.Completed,
	}
}

// matchesSearch applies the case-insensitive substring filter the
// repository layer cannot: title and description.
func (f Filter) matchesSearch(e *calendar.CalendarEvent) bool {
	if f.Search == "" {
		return true
	}
	q := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(e.Title), q) ||
		strings.Contains(strings.ToLower(e.Description), q)
}

// key serializes the filter for load deduplication.
func (f Filter) key() string {
	var b strings.Builder
	for _, t := range f.Types {
		b.WriteString(string(t))
		b.WriteByte(',')
	}
	b.WriteByte('|')
	b.WriteString(f.ApiaryID)
	b.WriteByte('|')
	for _, h := range f.HiveIDs {
		b.WriteString(h)
		b.WriteByte(',')
	}
	b.WriteByte('|')
	if f.Completed != nil {
		fmt.Fprintf(&b, "%t", *f.Completed)
	}
	b.WriteByte('|')
	b.WriteString(strings.ToLower(f.Search))
	return b.String()
}

// LoadRequest describes one schedule load.
type LoadRequest struct {
	OwnerID   string
	Reference time.Time
	View      calendar.ViewMode
	Filter    Filter

	// IncludeRecommended merges seasonal template events for the window.
	IncludeRecommended bool
	// Zone selects the seasonal table when IncludeRecommended is set; the
	// scheduler's default zone applies when empty.
	Zone seasonal.Zone
	// ApiaryID/HiveIDs scope copied onto generated recommendations.
	RecommendedApiaryID string
	RecommendedHiveIDs  []string
}

// DaySchedule is one calendar day's ordered events.
type DaySchedule struct {
	Date   time.Time                `json:"date"`
	Events []calendar.CalendarEvent `json:"events"`
}

// Schedule is the ordered result of one load: grouped by day for
// month/week/day views, flat and chronological for agenda.
type Schedule struct {
	View   calendar.ViewMode        `json:"view"`
	Window calendar.Window          `json:"window"`
	Days   []DaySchedule            `json:"days,omitempty"`
	Events []calendar.CalendarEvent `json:"events,omitempty"`
}

// Scheduler orchestrates window calculation, repository queries, recurrence
// expansion, seasonal merging, and ordering. It holds no per-request state;
// loads are pure reads, so identical concurrent loads are collapsed into one
// repository round-trip.
type Scheduler struct {
	repo        storage.EventRepository
	clock       Clock
	calc        calendar.Calculator
	generator   seasonal.Generator
	defaultZone seasonal.Zone

	loads singleflight.Group
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithWeekStart overrides the first day of the week (default Sunday).
func WithWeekStart(d time.Weekday) Option {
	return func(s *Scheduler) { s.calc = calendar.NewCalculator(d) }
}

// WithDefaultZone sets the climate zone used for recommendations when the
// request does not name one.
func WithDefaultZone(z seasonal.Zone) Option {
	return func(s *Scheduler) { s.defaultZone = z }
}

// WithLocation anchors seasonal generation in a timezone other than UTC.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) { s.generator = seasonal.NewGenerator(loc) }
}

// NewScheduler builds a scheduler over the given repository and clock.
func NewScheduler(repo storage.EventRepository, clock Clock, opts ...Option) *Scheduler {
	if repo == nil {
		panic("schedule: repository must not be nil")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	s := &Scheduler{
		repo:        repo,
		clock:       clock,
		calc:        calendar.NewCalculator(time.Sunday),
		generator:   seasonal.NewGenerator(time.UTC),
		defaultZone: seasonal.DefaultZone,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Window exposes the view window for a reference date, for callers that
// need the displayed range without loading events.
func (s *Scheduler) Window(ref time.Time, view calendar.ViewMode) calendar.Window {
	return s.calc.Window(ref, view)
}

// Step moves a reference date by delta view-sized units.
func (s *Scheduler) Step(ref time.Time, view calendar.ViewMode, delta int) time.Time {
	return s.calc.Step(ref, view, delta)
}

// Today returns the clock's current instant, used to reset navigation.
func (s *Scheduler) Today() time.Time {
	return s.clock.Now()
}

// LoadEvents computes the ordered event list for one view. It is a
// stateless, idempotent read: cancelling the context abandons the load with
// no side effects.
func (s *Scheduler) LoadEvents(ctx context.Context, req LoadRequest) (*Schedule, error) {
	if req.OwnerID == "" {
		return nil, apperr.NewValidation("owner_id", "is required")
	}
	if !req.View.Valid() {
		return nil, apperr.NewValidation("view", fmt.Sprintf("unknown view mode %q", req.View))
	}

	// Month views query the padded grid window so leading/trailing cells of
	// adjacent months are populated.
	window := s.calc.GridWindow(req.Reference, req.View)

	key := s.loadKey(req, window)
	v, err, _ := s.loads.Do(key, func() (interface{}, error) {
		return s.load(ctx, req, window)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Schedule), nil
}

func (s *Scheduler) loadKey(req LoadRequest, w calendar.Window) string {
	zone := req.Zone
	if zone == "" {
		zone = s.defaultZone
	}
	return fmt.Sprintf("%s|%s|%d|%d|%t|%s|%s",
		req.OwnerID, req.View, w.Start.UnixMilli(), w.End.UnixMilli(),
		req.IncludeRecommended, zone, req.Filter.key())
}

func (s *Scheduler) load(ctx context.Context, req LoadRequest, window calendar.Window) (*Schedule, error) {
	bases, err := s.repo.Query(ctx, req.OwnerID, window.Start, window.End, req.Filter.repoFilter())
	if err != nil {
		return nil, &apperr.RepositoryError{Op: "query", Err: err}
	}

	candidates := make([]calendar.CalendarEvent, 0, len(bases))
	for _, base := range bases {
		occ, err := calendar.Expand(base, window)
		if err != nil {
			// A stored rule that fails validation should not blank the whole
			// calendar; surface the base occurrence and log the bad rule.
			slog.Warn("skipping expansion of invalid recurrence rule",
				"event_id", base.ID.String(), "error", err)
			if window.Contains(base.StartDate) {
				candidates = append(candidates, base)
			}
			continue
		}
		candidates = append(candidates, occ...)
	}

	if req.IncludeRecommended {
		candidates = append(candidates, s.recommendationsIn(req, window)...)
	}

	filtered := candidates[:0]
	for i := range candidates {
		if req.Filter.matchesSearch(&candidates[i]) {
			filtered = append(filtered, candidates[i])
		}
	}

	out := &Schedule{View: req.View, Window: window}
	if req.View == calendar.ViewAgenda {
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].StartDate.Before(filtered[j].StartDate)
		})
		out.Events = filtered
		return out, nil
	}

	out.Days = groupByDay(filtered)
	return out, nil
}

// recommendationsIn generates seasonal templates for every year the window
// touches and keeps the ones that fall inside it and pass the repository
// filter fields.
func (s *Scheduler) recommendationsIn(req LoadRequest, window calendar.Window) []calendar.CalendarEvent {
	zone := req.Zone
	if zone == "" {
		zone = s.defaultZone
	}
	repoFilter := req.Filter.repoFilter()

	var out []calendar.CalendarEvent
	for year := window.Start.Year(); year <= window.End.Year(); year++ {
		for _, ev := range s.generator.Generate(req.OwnerID, zone, req.RecommendedApiaryID, req.RecommendedHiveIDs, year) {
			if window.Contains(ev.StartDate) && repoFilter.Matches(&ev) {
				out = append(out, ev)
			}
		}
	}
	return out
}

// groupByDay buckets events by calendar day and orders each bucket by
// priority (high first), then all-day before timed, then start ascending.
func groupByDay(events []calendar.CalendarEvent) []DaySchedule {
	byDay := make(map[time.Time][]calendar.CalendarEvent)
	for _, e := range events {
		day := time.Date(e.StartDate.Year(), e.StartDate.Month(), e.StartDate.Day(), 0, 0, 0, 0, e.StartDate.Location())
		byDay[day] = append(byDay[day], e)
	}

	days := make([]DaySchedule, 0, len(byDay))
	for day, evs := range byDay {
		sort.SliceStable(evs, func(i, j int) bool {
			return lessWithinDay(&evs[i], &evs[j])
		})
		days = append(days, DaySchedule{Date: day, Events: evs})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}

func lessWithinDay(a, b *calendar.CalendarEvent) bool {
	if ra, rb := a.EffectivePriority().Rank(), b.EffectivePriority().Rank(); ra != rb {
		return ra < rb
	}
	if a.AllDay != b.AllDay {
		return a.AllDay
	}
	return a.StartDate.Before(b.StartDate)
}
