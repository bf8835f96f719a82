package calendarapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/justingrant1/mybeekeep/internal/core/calendar"
	apperr "github.com/justingrant1/mybeekeep/internal/core/errors"
	"github.com/justingrant1/mybeekeep/internal/core/schedule"
	"github.com/justingrant1/mybeekeep/internal/core/seasonal"
	"github.com/justingrant1/mybeekeep/internal/core/storage"
)

// dateLayouts are the accepted reference-date formats, tried in order.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// HandleLoadSchedule handles GET /v1/calendar/:owner_id/events.
// Query parameters: view, date, types, apiary_id, hive_ids, completed,
// search, include_recommended, zone.
func (s *Service) HandleLoadSchedule(c *gin.Context) {
	ownerID := c.Param("owner_id")

	view, err := calendar.ParseViewMode(c.Query("view"))
	if err != nil {
		writeBadRequest(c, "Invalid view mode", err.Error())
		return
	}

	ref := s.scheduler.Today()
	if raw := c.Query("date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			writeBadRequest(c, "Invalid reference date", err.Error())
			return
		}
		ref = parsed
	}

	filter, err := parseFilter(c)
	if err != nil {
		writeBadRequest(c, "Invalid filter", err.Error())
		return
	}

	req := schedule.LoadRequest{
		OwnerID:            ownerID,
		Reference:          ref,
		View:               view,
		Filter:             filter,
		IncludeRecommended: c.Query("include_recommended") == "true",
		Zone:               seasonal.Zone(c.Query("zone")),
	}
	if req.IncludeRecommended {
		req.RecommendedApiaryID = filter.ApiaryID
		req.RecommendedHiveIDs = filter.HiveIDs
	}

	result, err := s.scheduler.LoadEvents(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// HandleCreateEvent handles POST /v1/calendar/:owner_id/events.
func (s *Service) HandleCreateEvent(c *gin.Context) {
	ownerID := c.Param("owner_id")

	var draft calendar.CalendarEvent
	if !s.bindBody(c, &draft) {
		return
	}

	created, err := s.scheduler.CreateEvent(c.Request.Context(), ownerID, draft)
	if err != nil {
		writeError(c, err)
		return
	}

	slog.Info("Created calendar event",
		"event_id", created.ID.String(),
		"owner_id", ownerID,
		"type", created.Type)
	c.JSON(http.StatusCreated, created)
}

// eventPatchRequest is the wire form of a partial update. Owner is
// deliberately absent.
type eventPatchRequest struct {
	Title            *string              `json:"title"`
	Description      *string              `json:"description"`
	StartDate        *time.Time           `json:"start_date"`
	EndDate          *time.Time           `json:"end_date"`
	AllDay           *bool                `json:"all_day"`
	Type             *calendar.EventType  `json:"type"`
	Location         *string              `json:"location"`
	ApiaryID         *string              `json:"apiary_id"`
	HiveIDs          *[]string            `json:"hive_ids"`
	Reminders        *[]calendar.Reminder `json:"reminders"`
	Recurrence       *calendar.Recurrence `json:"recurrence"`
	ClearRecurrence  bool                 `json:"clear_recurrence"`
	Color            *string              `json:"color"`
	Priority         *calendar.Priority   `json:"priority"`
	WeatherDependent *bool                `json:"weather_dependent"`
	Notes            *string              `json:"notes"`
	Tags             *[]string            `json:"tags"`
}

func (r *eventPatchRequest) toPatch() storage.EventPatch {
	return storage.EventPatch{
		Title:            r.Title,
		Description:      r.Description,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		AllDay:           r.AllDay,
		Type:             r.Type,
		Location:         r.Location,
		ApiaryID:         r.ApiaryID,
		HiveIDs:          r.HiveIDs,
		Reminders:        r.Reminders,
		Recurrence:       r.Recurrence,
		ClearRecurrence:  r.ClearRecurrence,
		Color:            r.Color,
		Priority:         r.Priority,
		WeatherDependent: r.WeatherDependent,
		Notes:            r.Notes,
		Tags:             r.Tags,
	}
}

// HandleUpdateEvent handles PATCH /v1/events/:id.
func (s *Service) HandleUpdateEvent(c *gin.Context) {
	id := c.Param("id")

	var req eventPatchRequest
	if !s.bindBody(c, &req) {
		return
	}

	updated, err := s.scheduler.UpdateEvent(c.Request.Context(), id, req.toPatch())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// HandleDeleteEvent handles DELETE /v1/events/:id.
func (s *Service) HandleDeleteEvent(c *gin.Context) {
	id := c.Param("id")

	if err := s.scheduler.DeleteEvent(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// HandleCompleteEvent handles POST /v1/events/:id/complete.
func (s *Service) HandleCompleteEvent(c *gin.Context) {
	id := c.Param("id")

	var body struct {
		Notes string `json:"notes"`
	}
	if c.Request.ContentLength > 0 {
		if !s.bindBody(c, &body) {
			return
		}
	}

	completed, err := s.scheduler.CompleteEvent(c.Request.Context(), id, body.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, completed)
}

// HandleRecommended handles GET /v1/calendar/:owner_id/recommended.
// Query parameters: zone, year, apiary_id, hive_ids.
func (s *Service) HandleRecommended(c *gin.Context) {
	ownerID := c.Param("owner_id")

	zone := seasonal.Zone(c.Query("zone"))
	if zone == "" {
		zone = s.defaultZone
	}

	year := s.scheduler.Today().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeBadRequest(c, "Invalid year", err.Error())
			return
		}
		year = parsed
	}

	events := s.generator.Generate(ownerID, zone, c.Query("apiary_id"), splitCSV(c.Query("hive_ids")), year)
	c.JSON(http.StatusOK, gin.H{
		"zone":   zone,
		"year":   year,
		"events": events,
	})
}

// bindBody reads and binds a size-limited JSON body. Returns false after
// writing an error response.
func (s *Service) bindBody(c *gin.Context, dst interface{}) bool {
	maxBytes := int64(s.maxBodySizeBytes)
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBytes+1))
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		c.JSON(http.StatusInternalServerError, apperr.ErrorResponse{
			ErrorType: apperr.HttpInternalError,
			Message:   "Failed to read request body",
		})
		return false
	}
	if int64(len(body)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(body), "max", maxBytes)
		c.JSON(http.StatusRequestEntityTooLarge, apperr.ErrorResponse{
			ErrorType: apperr.HttpInvalidRequestError,
			Message:   "Request body exceeds maximum allowed size",
			Details:   map[string]interface{}{"max_size_mb": maxBytes / (1024 * 1024)},
		})
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(body))
		writeBadRequest(c, "Invalid JSON body", err.Error())
		return false
	}
	return true
}

func parseDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func parseFilter(c *gin.Context) (schedule.Filter, error) {
	f := schedule.Filter{
		ApiaryID: c.Query("apiary_id"),
		HiveIDs:  splitCSV(c.Query("hive_ids")),
		Search:   c.Query("search"),
	}

	for _, raw := range splitCSV(c.Query("types")) {
		t := calendar.EventType(raw)
		if !t.Valid() {
			return schedule.Filter{}, errors.New("unknown event type " + strconv.Quote(raw))
		}
		f.Types = append(f.Types, t)
	}

	if raw := c.Query("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return schedule.Filter{}, errors.New("completed must be true or false")
		}
		f.Completed = &completed
	}

	return f, nil
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func writeBadRequest(c *gin.Context, message string, details interface{}) {
	c.JSON(http.StatusBadRequest, apperr.ErrorResponse{
		ErrorType: apperr.HttpInvalidRequestError,
		Message:   message,
		Details:   details,
	})
}

// writeError maps core error types to HTTP statuses.
func writeError(c *gin.Context, err error) {
	var (
		validation *apperr.ValidationError
		recurrence *apperr.InvalidRecurrenceError
		notFound   *apperr.NotFoundError
		repository *apperr.RepositoryError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, apperr.ErrorResponse{
			ErrorType: apperr.HttpValidationError,
			Message:   validation.Error(),
		})
	case errors.As(err, &recurrence):
		c.JSON(http.StatusBadRequest, apperr.ErrorResponse{
			ErrorType: apperr.HttpInvalidRecurrenceError,
			Message:   recurrence.Error(),
		})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, apperr.ErrorResponse{
			ErrorType: apperr.HttpNotFoundError,
			Message:   notFound.Error(),
		})
	case errors.As(err, &repository):
		slog.Error("Repository operation failed", "op", repository.Op, "error", repository.Err)
		c.JSON(http.StatusInternalServerError, apperr.ErrorResponse{
			ErrorType: apperr.HttpRepositoryError,
			Message:   "The event store is currently unavailable",
		})
	default:
		slog.Error("Unhandled error", "error", err)
		c.JSON(http.StatusInternalServerError, apperr.ErrorResponse{
			ErrorType: apperr.HttpInternalError,
			Message:   "Internal error",
		})
	}
}
