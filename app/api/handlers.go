package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HighwayofLife/TrailBlazeApp-Scrapers/app/database"
	"github.com/HighwayofLife/TrailBlazeApp-Scrapers/app/scraper"
	"github.com/HighwayofLife/TrailBlazeApp-Scrapers/app/tasks"
)

func NewHandler(eventRepo database.EventRepository, configCache *scraper.ConfigCache,
	fetcher *scraper.Fetcher, engine *scraper.Engine, sources map[string]scraper.Source,
	scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		eventRepo:   eventRepo,
		configCache: configCache,
		fetcher:     fetcher,
		engine:      engine,
		sources:     sources,
		scheduler:   scheduler,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if eventCount, err := h.eventRepo.GetEventCount(); err == nil {
		health["events"] = eventCount
	}

	health["loaded_configurations"] = h.configCache.GetConfigCount()

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	configs := h.configCache.GetConfigs()

	sources := make([]map[string]interface{}, 0, len(configs))
	for _, sourceConfig := range configs {
		sourceInfo := map[string]interface{}{
			"name":             sourceConfig.Name,
			"url":              sourceConfig.URL,
			"enabled":          sourceConfig.Settings.Enabled,
			"refresh_interval": (time.Duration(sourceConfig.Settings.RefreshInterval) * time.Second).String(),
		}

		if total, multiDay, canceled, err := h.eventRepo.GetSourceStats(sourceConfig.Name); err == nil {
			sourceInfo["events"] = map[string]interface{}{
				"total":     total,
				"multi_day": multiDay,
				"canceled":  canceled,
			}
		}

		sources = append(sources, sourceInfo)
	}

	hits, misses := h.fetcher.CacheStats()

	c.JSON(http.StatusOK, map[string]interface{}{
		"sources": sources,
		"cache": map[string]interface{}{
			"hits":   hits,
			"misses": misses,
		},
	})
}

func (h *Handler) GetEvents(c *gin.Context) {
	source := c.Query("source")
	if source == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing source query parameter"})
		return
	}

	events, err := h.eventRepo.GetEventsBySource(source)
	if err != nil {
		slog.Error("Database error", "operation", "get_events", "source", source, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	payload := make([]map[string]interface{}, 0, len(events))
	for i := range events {
		payload = append(payload, eventPayload(&events[i]))
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"events": payload,
		"total":  len(payload),
	})
}

func (h *Handler) GetEvent(c *gin.Context) {
	source := c.Param("source")
	rideID := c.Param("rideId")

	event, err := h.eventRepo.GetEvent(source, rideID)
	if err != nil {
		slog.Error("Database error", "operation", "get_event", "source", source, "ride_id", rideID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if event == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, eventPayload(event))
}

// APITriggerScrape enqueues an immediate scrape for one source, outside its
// regular refresh schedule.
func (h *Handler) APITriggerScrape(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing source name parameter"})
		return
	}

	sourceConfig, err := h.configCache.GetConfig(name)
	if err != nil {
		slog.Error("Source configuration not found", "source", name, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Source configuration not found"})
		return
	}

	source, ok := h.sources[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No scraper registered for source"})
		return
	}

	scrapeTask := tasks.NewScrapeSourceTask(name, sourceConfig, h.engine, source)
	if err := h.scheduler.EnqueueTask(scrapeTask); err != nil {
		slog.Error("Error enqueueing scrape task", "source", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue scrape task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Scrape task enqueued successfully",
		"task": gin.H{
			"id":     scrapeTask.ID,
			"type":   scrapeTask.Type,
			"source": name,
		},
	})
}

func eventPayload(event *database.Event) map[string]interface{} {
	payload := map[string]interface{}{
		"source":             event.Source,
		"ride_id":            event.RideID,
		"name":               event.Name,
		"region":             event.Region,
		"location_name":      event.LocationName,
		"city":               event.City,
		"state":              event.State,
		"country":            event.Country,
		"ride_manager":       event.RideManager,
		"manager_phone":      event.ManagerPhone,
		"manager_email":      event.ManagerEmail,
		"website":            event.Website,
		"flyer_url":          event.FlyerURL,
		"is_canceled":        event.IsCanceled,
		"is_multi_day_event": event.IsMultiDayEvent,
		"is_pioneer_ride":    event.IsPioneerRide,
		"ride_days":          event.RideDays,
		"event_type":         event.EventType,
		"has_intro_ride":     event.HasIntroRide,
		"description":        event.Description,
		"directions":         event.Directions,
		"control_judges":     event.ControlJudges,
		"distances":          event.Distances,
		"updated_at":         event.UpdatedAt.Format(time.RFC3339),
	}

	if event.DateStart != nil {
		payload["date_start"] = event.DateStart.Format("2006-01-02")
	}
	if event.DateEnd != nil {
		payload["date_end"] = event.DateEnd.Format("2006-01-02")
	}

	return payload
}
