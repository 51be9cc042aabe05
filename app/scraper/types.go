package scraper

// Scraping pipeline types. Dates travel as "2006-01-02" strings until they
// cross into the database layer, matching the calendar markup's day
// granularity.

type Distance struct {
	Distance  string
	Date      string
	StartTime string
}

type ControlJudge struct {
	Name string
	Role string
}

// RawRow is the typed result of extracting one calendar row. It is built
// fresh per markup block and never mutated after extraction.
type RawRow struct {
	Source     string
	RideID     string
	Name       string
	IsCanceled bool

	Region       string
	DateStart    string
	LocationName string
	City         string
	State        string
	Country      string

	RideManager  string
	ManagerPhone string
	ManagerEmail string

	Website  string
	FlyerURL string

	ControlJudges []ControlJudge
	Distances     []Distance

	Description string
	Directions  string

	EventType    string
	HasIntroRide bool
}

// ConsolidatedEvent is one logical event, keyed by (Source, RideID). Scalar
// fields come from the first row seen for the key; distances are the
// first-seen-order union of every contributing row's distances.
type ConsolidatedEvent struct {
	RawRow

	IsMultiDayEvent bool
	IsPioneerRide   bool
	RideDays        int
	DateEnd         string
}

// Summary carries per-run counters. Each pipeline stage fills its own
// fields and the engine returns the folded value; there is no shared
// mutable metrics state.
type Summary struct {
	RowsFound     int
	RowsSkipped   int
	RawRows       int
	Consolidated  int
	MultiDay      int
	SyntheticKeys int
	Discrepancies int
	Inserted      int
	Updated       int
	Failed        int
	CacheHits     int
	CacheMisses   int
}
