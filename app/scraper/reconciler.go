package scraper

import (
	"context"
	"log/slog"
	"time"

	"github.com/HighwayofLife/TrailBlazeApp-Scrapers/app/database"
)

// Reconciler applies consolidated events to the persistent store with
// idempotent insert-or-update semantics. One failed event is reported and
// does not block the rest.
type Reconciler struct {
	repo database.EventRepository
}

func NewReconciler(repo database.EventRepository) *Reconciler {
	return &Reconciler{repo: repo}
}

// ReconcileResult holds the per-run persistence counters.
type ReconcileResult struct {
	Inserted int
	Updated  int
	Failed   int
	Errors   []error
}

// Run reconciles every event in order, collecting per-event outcomes.
func (r *Reconciler) Run(ctx context.Context, events []*ConsolidatedEvent) ReconcileResult {
	result := ReconcileResult{}

	for _, event := range events {
		outcome, err := r.repo.Reconcile(ctx, toRecord(event))
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, &PersistenceError{
				Source: event.Source,
				RideID: event.RideID,
				Err:    err,
			})
			slog.Error("Failed to reconcile event",
				"source", event.Source, "ride_id", event.RideID,
				"constraint", database.IsConstraintViolation(err),
				"connectivity", database.IsConnectivityError(err),
				"error", err)
			continue
		}

		switch outcome {
		case database.OutcomeInserted:
			result.Inserted++
		case database.OutcomeUpdated:
			result.Updated++
		}
	}

	return result
}

// toRecord maps a consolidated event onto the write-side record. Every
// mutable field is set from the event, so fields the scrape no longer
// carries overwrite stale stored values with their zero value.
func toRecord(event *ConsolidatedEvent) database.EventRecord {
	record := database.EventRecord{
		Source:          event.Source,
		RideID:          event.RideID,
		Name:            event.Name,
		Region:          event.Region,
		DateStart:       parseDate(event.DateStart),
		DateEnd:         parseDate(event.DateEnd),
		LocationName:    event.LocationName,
		City:            event.City,
		State:           event.State,
		Country:         event.Country,
		RideManager:     event.RideManager,
		ManagerPhone:    event.ManagerPhone,
		ManagerEmail:    event.ManagerEmail,
		Website:         event.Website,
		FlyerURL:        event.FlyerURL,
		IsCanceled:      event.IsCanceled,
		IsMultiDayEvent: event.IsMultiDayEvent,
		IsPioneerRide:   event.IsPioneerRide,
		RideDays:        event.RideDays,
		EventType:       event.EventType,
		HasIntroRide:    event.HasIntroRide,
		Description:     event.Description,
		Directions:      event.Directions,
		ControlJudges:   make([]database.Judge, 0, len(event.ControlJudges)),
		Distances:       make([]database.DistanceEntry, 0, len(event.Distances)),
	}

	for _, judge := range event.ControlJudges {
		record.ControlJudges = append(record.ControlJudges, database.Judge{
			Name: judge.Name,
			Role: judge.Role,
		})
	}
	for _, distance := range event.Distances {
		record.Distances = append(record.Distances, database.DistanceEntry{
			Distance:  distance.Distance,
			Date:      distance.Date,
			StartTime: distance.StartTime,
		})
	}

	return record
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil
	}
	return &parsed
}
