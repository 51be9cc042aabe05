package database

import (
	"time"
)

// Event represents a stored event row read back from the database.
type Event struct {
	ID              string
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
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Judge and DistanceEntry are the structured blobs crossing the persistence
// boundary. The JSON field names are stable and form part of the contract
// with downstream consumers.

type Judge struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type DistanceEntry struct {
	Distance  string `json:"distance_label"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
}
