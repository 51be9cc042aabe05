package api

import (
	"github.com/HighwayofLife/TrailBlazeApp-Scrapers/app/database"
	"github.com/HighwayofLife/TrailBlazeApp-Scrapers/app/scraper"
	"github.com/HighwayofLife/TrailBlazeApp-Scrapers/app/tasks"
)

type Handler struct {
	eventRepo   database.EventRepository
	configCache *scraper.ConfigCache
	fetcher     *scraper.Fetcher
	engine      *scraper.Engine
	sources     map[string]scraper.Source
	scheduler   tasks.TaskSchedulerInterface
}
