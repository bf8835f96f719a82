package calendarapi

import (
	"github.com/gin-gonic/gin"

	"github.com/justingrant1/mybeekeep/internal/core/schedule"
	"github.com/justingrant1/mybeekeep/internal/core/seasonal"
)

// Service exposes the schedule and mutation operations over HTTP.
type Service struct {
	scheduler        *schedule.Scheduler
	generator        seasonal.Generator
	defaultZone      seasonal.Zone
	maxBodySizeBytes int
}

func NewService(scheduler *schedule.Scheduler, generator seasonal.Generator, defaultZone seasonal.Zone, maxBodySizeMB int) *Service {
	if scheduler == nil {
		panic("calendarapi: scheduler must not be nil")
	}
	if defaultZone == "" {
		defaultZone = seasonal.DefaultZone
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1
	}
	return &Service{
		scheduler:        scheduler,
		generator:        generator,
		defaultZone:      defaultZone,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
	}
}

// RegisterRoutes registers the calendar API routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/calendar/:owner_id/events", s.HandleLoadSchedule)
	r.POST("/v1/calendar/:owner_id/events", s.HandleCreateEvent)
	r.GET("/v1/calendar/:owner_id/recommended", s.HandleRecommended)

	r.PATCH("/v1/events/:id", s.HandleUpdateEvent)
	r.DELETE("/v1/events/:id", s.HandleDeleteEvent)
	r.POST("/v1/events/:id/complete", s.HandleCompleteEvent)
}
