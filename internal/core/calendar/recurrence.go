package calendar

import (
	"fmt"
	"time"

	apperr "github.com/justingrant1/mybeekeep/internal/core/errors"
)

// maxExpansionSteps caps how many rule steps one expansion will take. It
// bounds the walk from a base date far in the past up to the window without
// risking a runaway loop on pathological input.
const maxExpansionSteps = 10000

// Expand materializes every occurrence of base that falls inside the window.
//
// Non-recurring events yield the base itself if its start is in the window,
// else nothing. Recurring events are walked from the base start in
// frequency×interval strides; monthly and yearly strides are
// calendar-correct (day-of-month clamped). The base occurrence counts
// against the rule's count. Each materialized instance keeps every base
// field except the id, the shifted start/end, and the appended
// recurring-instance tag.
//
// Expansion is pure: no state is retained between calls.
func Expand(base CalendarEvent, w Window) ([]CalendarEvent, error) {
	if base.Recurrence == nil {
		if w.Contains(base.StartDate) {
			return []CalendarEvent{base}, nil
		}
		return nil, nil
	}

	rule := base.Recurrence
	if err := rule.Validate(base.StartDate); err != nil {
		return nil, err
	}

	var out []CalendarEvent
	cursor := base.StartDate
	for n := 0; n < maxExpansionSteps; n++ {
		if rule.Count > 0 && n >= rule.Count {
			break
		}
		if rule.Until != nil && cursor.After(*rule.Until) {
			break
		}
		if cursor.After(w.End) {
			break
		}
		if w.Contains(cursor) {
			if n == 0 {
				out = append(out, base)
			} else {
				out = append(out, materialize(base, cursor))
			}
		}
		next, err := advance(base, rule, n+1)
		if err != nil {
			return nil, err
		}
		cursor = next
	}
	return out, nil
}

// advance computes the nth occurrence start from the base start. Stepping is
// always anchored at the origin so monthly clamping never drifts (Jan 31 →
// Feb 28 → Mar 31, not Mar 28).
func advance(base CalendarEvent, rule *Recurrence, n int) (time.Time, error) {
	switch rule.Frequency {
	case FreqDaily:
		return base.StartDate.AddDate(0, 0, rule.Interval*n), nil
	case FreqWeekly:
		return base.StartDate.AddDate(0, 0, 7*rule.Interval*n), nil
	case FreqMonthly:
		return AddMonths(base.StartDate, rule.Interval*n), nil
	case FreqYearly:
		return AddMonths(base.StartDate, 12*rule.Interval*n), nil
	default:
		return base.StartDate, &apperr.InvalidRecurrenceError{Reason: fmt.Sprintf("unknown frequency %q", rule.Frequency)}
	}
}

func materialize(base CalendarEvent, at time.Time) CalendarEvent {
	inst := base
	inst.ID = OccurrenceID(base.ID.String(), at)
	inst.StartDate = at
	inst.EndDate = nil
	if base.EndDate != nil {
		end := at.Add(base.EndDate.Sub(base.StartDate))
		inst.EndDate = &end
	}
	inst.Tags = appendUnique(base.Tags, TagRecurringInstance)
	return inst
}

// appendUnique copies tags and unions in the extra tag.
func appendUnique(tags []string, extra string) []string {
	out := make([]string, 0, len(tags)+1)
	out = append(out, tags...)
	for _, t := range out {
		if t == extra {
			return out
		}
	}
	return append(out, extra)
}
