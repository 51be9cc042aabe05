package scraper

import (
	"log/slog"

	"github.com/google/uuid"
)

// ConsolidationResult holds the merged events in first-seen order plus the
// counters the merge pass accumulated.
type ConsolidationResult struct {
	Events        []*ConsolidatedEvent
	SyntheticKeys int
	Discrepancies int
}

// Consolidate folds raw rows sharing an identity key (source, ride id) into
// single logical events. The first row for a key is authoritative for every
// scalar field; later rows contribute their distances and their start
// dates, and the classification is recomputed after each merge. Rows
// without a ride id become singleton events under a synthesized key and are
// never merged.
func Consolidate(rows []RawRow) ConsolidationResult {
	result := ConsolidationResult{}
	byKey := make(map[string]*ConsolidatedEvent)
	rowDates := make(map[string][]string)

	for _, row := range rows {
		rideID := row.RideID
		if rideID == "" {
			rideID = uuid.NewString()
			row.RideID = rideID
			result.SyntheticKeys++
			slog.Warn("Row without ride id, keeping as singleton event",
				"source", row.Source, "name", row.Name, "synthesized_id", rideID)
		}

		key := row.Source + "|" + rideID
		existing, ok := byKey[key]
		if !ok {
			event := &ConsolidatedEvent{RawRow: row}
			event.applyClassification(Classify(event.Distances, event.DateStart))
			byKey[key] = event
			result.Events = append(result.Events, event)
			continue
		}

		result.Discrepancies += reportScalarConflicts(existing, &row)

		if row.DateStart != "" {
			rowDates[key] = append(rowDates[key], row.DateStart)
		}
		existing.Distances = mergeDistances(existing.Distances, row.Distances)
		existing.applyClassification(Classify(existing.Distances, existing.DateStart, rowDates[key]...))
	}

	return result
}

// mergeDistances appends the incoming distances that are not already in the
// merged list, preserving first-seen order. Calendar rows sharing a ride id
// usually resolve the same details block, so a later row's list repeating
// the seeded one is the normal case, not the exception.
func mergeDistances(merged, incoming []Distance) []Distance {
	for _, distance := range incoming {
		if !containsDistance(merged, distance) {
			merged = append(merged, distance)
		}
	}
	return merged
}

func containsDistance(distances []Distance, d Distance) bool {
	for _, have := range distances {
		if have == d {
			return true
		}
	}
	return false
}

func (e *ConsolidatedEvent) applyClassification(c Classification) {
	e.IsMultiDayEvent = c.IsMultiDayEvent
	e.IsPioneerRide = c.IsPioneerRide
	e.RideDays = c.RideDays
	e.DateEnd = c.DateEnd
}

// reportScalarConflicts logs fields where a later row contradicts the
// seeded event. The first-seen value always wins; the conflict is surfaced
// as a discrepancy count rather than silently resolved.
func reportScalarConflicts(event *ConsolidatedEvent, row *RawRow) int {
	conflicts := 0
	check := func(field, seeded, incoming string) {
		if incoming != "" && seeded != "" && incoming != seeded {
			conflicts++
			slog.Warn("Conflicting scalar field during consolidation, keeping first-seen value",
				"source", event.Source, "ride_id", event.RideID,
				"field", field, "kept", seeded, "ignored", incoming)
		}
	}

	check("name", event.Name, row.Name)
	check("region", event.Region, row.Region)
	check("location_name", event.LocationName, row.LocationName)
	check("ride_manager", event.RideManager, row.RideManager)
	check("manager_phone", event.ManagerPhone, row.ManagerPhone)
	check("manager_email", event.ManagerEmail, row.ManagerEmail)
	check("website", event.Website, row.Website)
	check("flyer_url", event.FlyerURL, row.FlyerURL)
	check("description", event.Description, row.Description)
	check("directions", event.Directions, row.Directions)

	return conflicts
}
