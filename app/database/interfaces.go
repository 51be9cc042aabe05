package database

import (
	"context"
	"time"
)

// EventRecord is the write-side projection of a consolidated event. A
// reconcile replaces every mutable field of the stored row at once; fields
// left at their zero value unset whatever a previous scrape stored.
type EventRecord struct {
	Source          string
	RideID          string
	Name            string
	Region          string
	DateStart       *time.Time
	DateEnd         *time.Time
	LocationName    string
	City            string
	State           string
	Country         string
	RideManager     string
	ManagerPhone    string
	ManagerEmail    string
	Website         string
	FlyerURL        string
	IsCanceled      bool
	IsMultiDayEvent bool
	IsPioneerRide   bool
	RideDays        int
	EventType       string
	HasIntroRide    bool
	Description     string
	Directions      string
	ControlJudges   []Judge
	Distances       []DistanceEntry
}

// ReconcileOutcome reports whether a reconcile inserted a new row or
// updated an existing one.
type ReconcileOutcome int

const (
	OutcomeInserted ReconcileOutcome = iota
	OutcomeUpdated
)

func (o ReconcileOutcome) String() string {
	if o == OutcomeInserted {
		return "inserted"
	}
	return "updated"
}

type EventRepository interface {
	Reconcile(ctx context.Context, record EventRecord) (ReconcileOutcome, error)

	GetEvent(source, rideID string) (*Event, error)
	GetEventsBySource(source string) ([]Event, error)
	GetEventCount() (int, error)
	GetSourceStats(source string) (total, multiDay, canceled int, err error)
}
