package postgres

// SQL for calendar event storage. All statements are prepared at startup.

const (
	queryInsertEvent = `
		INSERT INTO calendar_events (
			id, owner_id, title, description,
			start_date, end_date, all_day, type,
			location, apiary_id, hive_ids, reminders,
			recurrence, color, priority, weather_dependent,
			completed, completed_at, notes, tags,
			created_at, updated_at
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22
		)
	`

	queryGetEvent = `
		SELECT
			id, owner_id, title, description,
			start_date, end_date, all_day, type,
			location, apiary_id, hive_ids, reminders,
			recurrence, color, priority, weather_dependent,
			completed, completed_at, notes, tags,
			created_at, updated_at
		FROM calendar_events
		WHERE id = $1
	`

	// queryEventsInWindow fetches an owner's events that can contribute
	// occurrences to a window. A plain start_date range filter would miss
	// recurring events whose base started before the window, so recurring
	// rows are fetched whenever their base starts on or before the window
	// end and the expander decides actual inclusion.
	queryEventsInWindow = `
		SELECT
			id, owner_id, title, description,
			start_date, end_date, all_day, type,
			location, apiary_id, hive_ids, reminders,
			recurrence, color, priority, weather_dependent,
			completed, completed_at, notes, tags,
			created_at, updated_at
		FROM calendar_events
		WHERE owner_id = $1
		  AND (
			(start_date >= $2 AND start_date <= $3)
			OR (recurrence IS NOT NULL AND start_date <= $3)
		  )
		ORDER BY start_date ASC
	`

	queryUpdateEvent = `
		UPDATE calendar_events SET
			title = $2,
			description = $3,
			start_date = $4,
			end_date = $5,
			all_day = $6,
			type = $7,
			location = $8,
			apiary_id = $9,
			hive_ids = $10,
			reminders = $11,
			recurrence = $12,
			color = $13,
			priority = $14,
			weather_dependent = $15,
			completed = $16,
			completed_at = $17,
			notes = $18,
			tags = $19,
			updated_at = $20
		WHERE id = $1
	`

	queryDeleteEvent = `
		DELETE FROM calendar_events
		WHERE id = $1
	`
)
