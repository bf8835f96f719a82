package calendar

import (
	"fmt"
	"time"
)

// ViewMode selects how much of the calendar one load displays.
type ViewMode string

const (
	ViewMonth  ViewMode = "month"
	ViewWeek   ViewMode = "week"
	ViewDay    ViewMode = "day"
	ViewAgenda ViewMode = "agenda"
)

func (v ViewMode) Valid() bool {
	switch v {
	case ViewMonth, ViewWeek, ViewDay, ViewAgenda:
		return true
	}
	return false
}

// ParseViewMode parses a view mode string, defaulting to month when empty.
func ParseViewMode(s string) (ViewMode, error) {
	if s == "" {
		return ViewMonth, nil
	}
	v := ViewMode(s)
	if !v.Valid() {
		return "", fmt.Errorf("unknown view mode %q", s)
	}
	return v, nil
}

// agendaHorizonMonths is how far ahead the agenda view looks.
const agendaHorizonMonths = 3

// Window is the inclusive [Start, End] instant range one view displays.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls within the window, inclusive at both ends.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Calculator computes view windows and navigation steps. WeekStart is the
// configured first day of the week (Sunday unless overridden).
type Calculator struct {
	WeekStart time.Weekday
}

// NewCalculator returns a calculator with the given first day of the week.
func NewCalculator(weekStart time.Weekday) Calculator {
	return Calculator{WeekStart: weekStart}
}

// Window computes the date range for one view anchored at ref.
//
//	month:  first day of ref's month 00:00 through last day 23:59:59.999
//	week:   configured week start on or before ref, through 6 days later, end of day
//	day:    ref's calendar day
//	agenda: ref itself through 3 calendar months later
func (c Calculator) Window(ref time.Time, view ViewMode) Window {
	switch view {
	case ViewWeek:
		start := c.weekStartOnOrBefore(startOfDay(ref))
		return Window{Start: start, End: endOfDay(start.AddDate(0, 0, 6))}
	case ViewDay:
		return Window{Start: startOfDay(ref), End: endOfDay(ref)}
	case ViewAgenda:
		return Window{Start: ref, End: AddMonths(ref, agendaHorizonMonths)}
	default:
		first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		last := first.AddDate(0, 1, -1)
		return Window{Start: first, End: endOfDay(last)}
	}
}

// GridWindow widens a month window to full display weeks so the leading and
// trailing grid cells of adjacent months are populated. Other views are
// returned unchanged.
func (c Calculator) GridWindow(ref time.Time, view ViewMode) Window {
	w := c.Window(ref, view)
	if view != ViewMonth {
		return w
	}
	start := c.weekStartOnOrBefore(w.Start)
	end := w.End
	for end.Weekday() != c.lastWeekday() {
		end = endOfDay(end.AddDate(0, 0, 1))
	}
	return Window{Start: start, End: end}
}

// Step moves the reference date by delta view-sized units. The agenda view
// steps by one month even though its window spans three; the shorter stride
// keeps consecutive agenda pages overlapping.
func (c Calculator) Step(ref time.Time, view ViewMode, delta int) time.Time {
	switch view {
	case ViewWeek:
		return ref.AddDate(0, 0, 7*delta)
	case ViewDay:
		return ref.AddDate(0, 0, delta)
	default: // month and agenda both stride one calendar month
		return AddMonths(ref, delta)
	}
}

// AddMonths shifts t by a number of calendar months, clamping the day of
// month to the target month's length (Jan 31 + 1 month is Feb 28/29, never
// Mar 2/3).
func AddMonths(t time.Time, months int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()).AddDate(0, months, 0)
	day := t.Day()
	if last := daysInMonth(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (c Calculator) weekStartOnOrBefore(t time.Time) time.Time {
	d := startOfDay(t)
	back := (int(d.Weekday()) - int(c.WeekStart) + 7) % 7
	return d.AddDate(0, 0, -back)
}

func (c Calculator) lastWeekday() time.Weekday {
	return time.Weekday((int(c.WeekStart) + 6) % 7)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay returns 23:59:59.999, matching the millisecond resolution of the
// instants this system stores.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
