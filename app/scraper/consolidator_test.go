package scraper

import (
	"testing"
)

func TestConsolidateMergesSharedRideID(t *testing.T) {
	rows := []RawRow{
		{
			Source: "AERC", RideID: "123", Name: "Desert Classic",
			DateStart: "2024-05-01",
			Distances: []Distance{{Distance: "25", Date: "2024-05-01"}},
		},
		{
			Source: "AERC", RideID: "123", Name: "Desert Classic",
			DateStart: "2024-05-02",
			Distances: []Distance{{Distance: "50", Date: "2024-05-02"}},
		},
	}

	result := Consolidate(rows)

	if len(result.Events) != 1 {
		t.Fatalf("Expected 1 consolidated event, got %d", len(result.Events))
	}

	event := result.Events[0]
	if len(event.Distances) != 2 {
		t.Errorf("Expected 2 distances after merge, got %d", len(event.Distances))
	}
	if event.DateStart != "2024-05-01" {
		t.Errorf("Expected date start 2024-05-01, got %s", event.DateStart)
	}
	if event.DateEnd != "2024-05-02" {
		t.Errorf("Expected date end 2024-05-02, got %s", event.DateEnd)
	}
	if event.RideDays != 2 {
		t.Errorf("Expected 2 ride days, got %d", event.RideDays)
	}
	if !event.IsMultiDayEvent {
		t.Error("Expected multi-day event")
	}
	if event.IsPioneerRide {
		t.Error("Expected two-day event not to be a pioneer ride")
	}
}

func TestConsolidateDistancesInFirstSeenOrder(t *testing.T) {
	rows := []RawRow{
		{Source: "AERC", RideID: "7", DateStart: "2024-05-01",
			Distances: []Distance{{Distance: "25", Date: "2024-05-01"}, {Distance: "50", Date: "2024-05-01"}}},
		{Source: "AERC", RideID: "7", DateStart: "2024-05-02",
			Distances: []Distance{{Distance: "75", Date: "2024-05-02"}}},
	}

	result := Consolidate(rows)

	event := result.Events[0]
	want := []string{"25", "50", "75"}
	if len(event.Distances) != len(want) {
		t.Fatalf("Expected %d distances, got %d", len(want), len(event.Distances))
	}
	for i, label := range want {
		if event.Distances[i].Distance != label {
			t.Errorf("Expected distance %s at position %d, got %s", label, i, event.Distances[i].Distance)
		}
	}
}

func TestConsolidateSharedDistanceListNotDuplicated(t *testing.T) {
	// Rows sharing a ride id resolve the same details block, so each one
	// carries the full distance list.
	sharedDistances := []Distance{
		{Distance: "50", Date: "2025-03-20", StartTime: "07:00 am"},
		{Distance: "50", Date: "2025-03-21", StartTime: "07:30 am"},
	}
	rows := []RawRow{
		{Source: "AERC", RideID: "14446", Name: "Cuyama XP",
			DateStart: "2025-03-20", Distances: sharedDistances},
		{Source: "AERC", RideID: "14446", Name: "Cuyama XP",
			DateStart: "2025-03-21", Distances: sharedDistances},
	}

	result := Consolidate(rows)

	if len(result.Events) != 1 {
		t.Fatalf("Expected 1 consolidated event, got %d", len(result.Events))
	}

	event := result.Events[0]
	if len(event.Distances) != 2 {
		t.Fatalf("Expected the union of 2 distances, got %d: %+v", len(event.Distances), event.Distances)
	}
	if event.Distances[0].Date != "2025-03-20" || event.Distances[1].Date != "2025-03-21" {
		t.Errorf("Expected first-seen order preserved, got %+v", event.Distances)
	}
	if event.RideDays != 2 || !event.IsMultiDayEvent {
		t.Errorf("Expected 2-day classification, got days=%d multi_day=%v", event.RideDays, event.IsMultiDayEvent)
	}
}

func TestConsolidateRowStartDatesClassify(t *testing.T) {
	// No per-distance dates at all: the rows' own start dates must still
	// drive the classification.
	rows := []RawRow{
		{Source: "AERC", RideID: "77", Name: "Bare Ride", DateStart: "2024-05-01"},
		{Source: "AERC", RideID: "77", Name: "Bare Ride", DateStart: "2024-05-02"},
	}

	result := Consolidate(rows)

	if len(result.Events) != 1 {
		t.Fatalf("Expected 1 consolidated event, got %d", len(result.Events))
	}

	event := result.Events[0]
	if !event.IsMultiDayEvent {
		t.Error("Expected rows on consecutive start dates to classify as multi-day")
	}
	if event.RideDays != 2 {
		t.Errorf("Expected 2 ride days, got %d", event.RideDays)
	}
	if event.DateEnd != "2024-05-02" {
		t.Errorf("Expected date end 2024-05-02, got %s", event.DateEnd)
	}
	if event.DateStart != "2024-05-01" {
		t.Errorf("Expected seeded date start kept, got %s", event.DateStart)
	}
}

func TestConsolidateFirstSeenScalarsWin(t *testing.T) {
	rows := []RawRow{
		{Source: "AERC", RideID: "9", Name: "First Name", RideManager: "Alice",
			DateStart: "2024-05-01"},
		{Source: "AERC", RideID: "9", Name: "Second Name", RideManager: "Bob",
			DateStart: "2024-05-02"},
	}

	result := Consolidate(rows)

	event := result.Events[0]
	if event.Name != "First Name" {
		t.Errorf("Expected first-seen name to win, got %s", event.Name)
	}
	if event.RideManager != "Alice" {
		t.Errorf("Expected first-seen manager to win, got %s", event.RideManager)
	}
	if result.Discrepancies != 2 {
		t.Errorf("Expected 2 recorded discrepancies, got %d", result.Discrepancies)
	}
}

func TestConsolidateContactFieldConflictsCounted(t *testing.T) {
	rows := []RawRow{
		{Source: "AERC", RideID: "9", Name: "Ride", DateStart: "2024-05-01",
			ManagerPhone: "111-222-3333", Website: "https://example.com/a"},
		{Source: "AERC", RideID: "9", Name: "Ride", DateStart: "2024-05-01",
			ManagerPhone: "444-555-6666", Website: "https://example.com/b"},
	}

	result := Consolidate(rows)

	event := result.Events[0]
	if event.ManagerPhone != "111-222-3333" {
		t.Errorf("Expected first-seen phone to win, got %s", event.ManagerPhone)
	}
	if event.Website != "https://example.com/a" {
		t.Errorf("Expected first-seen website to win, got %s", event.Website)
	}
	if result.Discrepancies != 2 {
		t.Errorf("Expected phone and website conflicts recorded, got %d", result.Discrepancies)
	}
}

func TestConsolidateMissingRideIDNeverMerged(t *testing.T) {
	rows := []RawRow{
		{Source: "AERC", Name: "Mystery Ride A", DateStart: "2024-05-01"},
		{Source: "AERC", Name: "Mystery Ride B", DateStart: "2024-05-01"},
	}

	result := Consolidate(rows)

	if len(result.Events) != 2 {
		t.Fatalf("Expected 2 singleton events, got %d", len(result.Events))
	}
	if result.SyntheticKeys != 2 {
		t.Errorf("Expected 2 synthesized keys, got %d", result.SyntheticKeys)
	}
	if result.Events[0].RideID == result.Events[1].RideID {
		t.Error("Expected distinct synthesized ride ids")
	}
	if result.Events[0].RideID == "" || result.Events[1].RideID == "" {
		t.Error("Expected synthesized ride ids to be non-empty")
	}
}

func TestConsolidateDistinctSourcesNotMerged(t *testing.T) {
	rows := []RawRow{
		{Source: "AERC", RideID: "123", DateStart: "2024-05-01"},
		{Source: "SERA", RideID: "123", DateStart: "2024-05-01"},
	}

	result := Consolidate(rows)

	if len(result.Events) != 2 {
		t.Errorf("Expected events from distinct sources to stay separate, got %d", len(result.Events))
	}
}

func TestConsolidateNeverGrows(t *testing.T) {
	cases := []struct {
		name       string
		rows       []RawRow
		wantUnique bool
	}{
		{"all_unique", []RawRow{
			{Source: "AERC", RideID: "1", DateStart: "2024-05-01"},
			{Source: "AERC", RideID: "2", DateStart: "2024-05-01"},
		}, true},
		{"dupes", []RawRow{
			{Source: "AERC", RideID: "1", DateStart: "2024-05-01"},
			{Source: "AERC", RideID: "1", DateStart: "2024-05-02"},
			{Source: "AERC", RideID: "2", DateStart: "2024-05-01"},
		}, false},
	}

	for _, tc := range cases {
		result := Consolidate(tc.rows)

		if len(result.Events) > len(tc.rows) {
			t.Errorf("%s: consolidation must never produce more events than rows", tc.name)
		}
		if tc.wantUnique && len(result.Events) != len(tc.rows) {
			t.Errorf("%s: expected equality when every identity key is unique, got %d events for %d rows",
				tc.name, len(result.Events), len(tc.rows))
		}
		if !tc.wantUnique && len(result.Events) == len(tc.rows) {
			t.Errorf("%s: expected fewer events than rows when keys repeat", tc.name)
		}
	}
}

func TestConsolidateSingleRowPioneer(t *testing.T) {
	rows := []RawRow{
		{
			Source: "AERC", RideID: "14457", Name: "Cuyama Oaks XP",
			DateStart: "2024-04-05",
			Distances: []Distance{
				{Distance: "50", Date: "2024-04-05"},
				{Distance: "50", Date: "2024-04-06"},
				{Distance: "50", Date: "2024-04-07"},
			},
		},
	}

	result := Consolidate(rows)

	event := result.Events[0]
	if event.RideDays != 3 {
		t.Errorf("Expected 3 ride days, got %d", event.RideDays)
	}
	if !event.IsPioneerRide {
		t.Error("Expected single row spanning three dates to classify as pioneer")
	}
}

func TestConsolidatePreservesFirstSeenOrder(t *testing.T) {
	rows := []RawRow{
		{Source: "AERC", RideID: "30", DateStart: "2024-05-01"},
		{Source: "AERC", RideID: "10", DateStart: "2024-05-01"},
		{Source: "AERC", RideID: "30", DateStart: "2024-05-02"},
		{Source: "AERC", RideID: "20", DateStart: "2024-05-01"},
	}

	result := Consolidate(rows)

	want := []string{"30", "10", "20"}
	if len(result.Events) != len(want) {
		t.Fatalf("Expected %d events, got %d", len(want), len(result.Events))
	}
	for i, id := range want {
		if result.Events[i].RideID != id {
			t.Errorf("Expected ride id %s at position %d, got %s", id, i, result.Events[i].RideID)
		}
	}
}
