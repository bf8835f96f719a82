package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCalculator_MonthWindow(t *testing.T) {
	calc := NewCalculator(time.Sunday)
	ref := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

	w := calc.Window(ref, ViewMonth)
	require.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), w.Start)
	require.Equal(t, time.Date(2025, 3, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC), w.End)
}

func TestCalculator_MonthGridWindow(t *testing.T) {
	calc := NewCalculator(time.Sunday)
	ref := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

	// March 2025 starts on a Saturday and ends on a Monday; the display
	// grid pads out to full Sunday-Saturday weeks.
	w := calc.GridWindow(ref, ViewMonth)
	require.Equal(t, time.Date(2025, 2, 23, 0, 0, 0, 0, time.UTC), w.Start)
	require.Equal(t, time.Date(2025, 4, 5, 23, 59, 59, int(999*time.Millisecond), time.UTC), w.End)
}

func TestCalculator_WeekWindow(t *testing.T) {
	tests := []struct {
		name      string
		weekStart time.Weekday
		ref       time.Time
		wantStart time.Time
	}{
		{
			name:      "sunday start mid-week",
			weekStart: time.Sunday,
			ref:       time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC), // Saturday
			wantStart: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "ref on week start day",
			weekStart: time.Sunday,
			ref:       time.Date(2025, 3, 9, 8, 0, 0, 0, time.UTC),
			wantStart: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "monday start",
			weekStart: time.Monday,
			ref:       time.Date(2025, 3, 9, 8, 0, 0, 0, time.UTC), // Sunday
			wantStart: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewCalculator(tc.weekStart).Window(tc.ref, ViewWeek)
			require.Equal(t, tc.wantStart, w.Start)
			wantEnd := tc.wantStart.AddDate(0, 0, 6)
			require.Equal(t, time.Date(wantEnd.Year(), wantEnd.Month(), wantEnd.Day(), 23, 59, 59, int(999*time.Millisecond), time.UTC), w.End)
		})
	}
}

func TestCalculator_DayWindow(t *testing.T) {
	calc := NewCalculator(time.Sunday)
	ref := time.Date(2025, 6, 10, 14, 45, 0, 0, time.UTC)

	w := calc.Window(ref, ViewDay)
	require.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), w.Start)
	require.Equal(t, time.Date(2025, 6, 10, 23, 59, 59, int(999*time.Millisecond), time.UTC), w.End)
}

func TestCalculator_AgendaWindow(t *testing.T) {
	calc := NewCalculator(time.Sunday)
	ref := time.Date(2025, 11, 30, 9, 0, 0, 0, time.UTC)

	w := calc.Window(ref, ViewAgenda)
	require.Equal(t, ref, w.Start)
	// Nov 30 + 3 calendar months clamps to Feb 28 (2026 is not a leap year).
	require.Equal(t, time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC), w.End)
}

func TestCalculator_Step(t *testing.T) {
	calc := NewCalculator(time.Sunday)
	ref := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		view  ViewMode
		delta int
		want  time.Time
	}{
		{name: "month forward", view: ViewMonth, delta: 1, want: time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)},
		{name: "month back", view: ViewMonth, delta: -1, want: time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)},
		{name: "week forward", view: ViewWeek, delta: 1, want: time.Date(2025, 3, 22, 0, 0, 0, 0, time.UTC)},
		{name: "day back", view: ViewDay, delta: -1, want: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)},
		// Agenda spans three months but steps one.
		{name: "agenda forward", view: ViewAgenda, delta: 1, want: time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, calc.Step(ref, tc.view, tc.delta))
		})
	}
}

func TestStep_MonthEndClamped(t *testing.T) {
	calc := NewCalculator(time.Sunday)
	ref := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	require.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), calc.Step(ref, ViewMonth, 1))
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name   string
		from   time.Time
		months int
		want   time.Time
	}{
		{
			name:   "plain",
			from:   time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2025, 2, 15, 9, 0, 0, 0, time.UTC),
		},
		{
			name:   "clamp to feb",
			from:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "clamp to leap feb",
			from:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "across year boundary",
			from:   time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC),
			months: 2,
			want:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "backwards",
			from:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
			months: -1,
			want:   time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, AddMonths(tc.from, tc.months))
		})
	}
}

func TestWindow_Contains(t *testing.T) {
	w := Window{
		Start: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 30, 23, 59, 59, int(999*time.Millisecond), time.UTC),
	}

	require.True(t, w.Contains(w.Start))
	require.True(t, w.Contains(w.End))
	require.True(t, w.Contains(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)))
	require.False(t, w.Contains(w.Start.Add(-time.Millisecond)))
	require.False(t, w.Contains(w.End.Add(time.Millisecond)))
}

func TestParseViewMode(t *testing.T) {
	v, err := ParseViewMode("")
	require.NoError(t, err)
	require.Equal(t, ViewMonth, v)

	v, err = ParseViewMode("agenda")
	require.NoError(t, err)
	require.Equal(t, ViewAgenda, v)

	_, err = ParseViewMode("year")
	require.Error(t, err)
}
