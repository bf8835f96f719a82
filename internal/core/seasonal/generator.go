package seasonal

import (
	"time"

	"github.com/justingrant1/mybeekeep/internal/core/calendar"
)

// Season anchor months. Winter anchors at December 1 of the year passed to
// Generate: "winter 2025" is the winter that starts in December 2025, not
// the one that ends in it.
var seasonAnchorMonth = map[Season]time.Month{
	SeasonSpring: time.March,
	SeasonSummer: time.June,
	SeasonFall:   time.September,
	SeasonWinter: time.December,
}

// Activity spacing within a season. Winter tasks are spread wider because
// inspection cadence drops with the temperature.
const (
	activitySpacingDays       = 14
	winterActivitySpacingDays = 21
)

// Generator produces recommended (never persisted) events from the fixed
// zone tables. Location fixes which wall-clock the anchor dates use; it
// defaults to UTC so output depends on nothing but the inputs.
type Generator struct {
	Location *time.Location
}

// NewGenerator returns a generator anchored in the given location, or UTC
// when nil.
func NewGenerator(loc *time.Location) Generator {
	if loc == nil {
		loc = time.UTC
	}
	return Generator{Location: loc}
}

// Generate returns the zone's recommended activities for one calendar year,
// as all-day synthetic events scoped to the given owner, apiary, and hives.
// Unknown zones use the DefaultZone table. Output is deterministic in the
// inputs.
func (g Generator) Generate(ownerID string, zone Zone, apiaryID string, hiveIDs []string, year int) []calendar.CalendarEvent {
	loc := g.Location
	if loc == nil {
		loc = time.UTC
	}

	table := Templates(zone)
	var out []calendar.CalendarEvent
	for _, season := range seasonsInOrder {
		anchor := time.Date(year, seasonAnchorMonth[season], 1, 0, 0, 0, 0, loc)
		spacing := activitySpacingDays
		if season == SeasonWinter {
			spacing = winterActivitySpacingDays
		}
		for i, act := range table[season] {
			out = append(out, calendar.CalendarEvent{
				ID:          calendar.SeasonalID(string(season), i, year),
				OwnerID:     ownerID,
				Title:       act.Title,
				Description: act.Description,
				StartDate:   anchor.AddDate(0, 0, i*spacing),
				AllDay:      true,
				Type:        act.Type,
				ApiaryID:    apiaryID,
				HiveIDs:     hiveIDs,
				Priority:    act.Priority,
				Tags:        []string{calendar.TagRecommended, calendar.TagSeasonal, string(season)},
			})
		}
	}
	return out
}
