package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var _ EventRepository = (*PostgresEventRepository)(nil)

// PostgresEventRepository handles database operations for scraped events
type PostgresEventRepository struct {
	db *DB
}

func NewEventRepository(db *DB) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

// Reconcile inserts the record if no row exists for (source, ride_id) and
// otherwise overwrites every mutable field. The exists-check and the write
// run in one transaction with the existing row locked, so two concurrent
// runs cannot race an insert against an update for the same key.
func (r *PostgresEventRepository) Reconcile(ctx context.Context, record EventRecord) (ReconcileOutcome, error) {
	judges, err := json.Marshal(record.ControlJudges)
	if err != nil {
		return 0, fmt.Errorf("failed to encode control judges: %w", err)
	}
	distances, err := json.Marshal(record.Distances)
	if err != nil {
		return 0, fmt.Errorf("failed to encode distances: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM events WHERE source = $1 AND ride_id = $2 FOR UPDATE
	`, record.Source, record.RideID).Scan(&id)

	var outcome ReconcileOutcome
	switch {
	case err == sql.ErrNoRows:
		outcome = OutcomeInserted
		_, err = tx.ExecContext(ctx, `
			INSERT INTO events (
				source, ride_id, name, region, date_start, date_end,
				location_name, city, state, country,
				ride_manager, manager_phone, manager_email,
				website, flyer_url,
				is_canceled, is_multi_day_event, is_pioneer_ride, ride_days,
				event_type, has_intro_ride, description, directions,
				control_judges, distances
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
				$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25
			)
		`, record.Source, record.RideID, record.Name, record.Region,
			record.DateStart, record.DateEnd,
			record.LocationName, record.City, record.State, record.Country,
			record.RideManager, record.ManagerPhone, record.ManagerEmail,
			record.Website, record.FlyerURL,
			record.IsCanceled, record.IsMultiDayEvent, record.IsPioneerRide, record.RideDays,
			record.EventType, record.HasIntroRide, record.Description, record.Directions,
			judges, distances)
	case err != nil:
		return 0, fmt.Errorf("failed to check existing event: %w", err)
	default:
		outcome = OutcomeUpdated
		_, err = tx.ExecContext(ctx, `
			UPDATE events SET
				name = $2, region = $3, date_start = $4, date_end = $5,
				location_name = $6, city = $7, state = $8, country = $9,
				ride_manager = $10, manager_phone = $11, manager_email = $12,
				website = $13, flyer_url = $14,
				is_canceled = $15, is_multi_day_event = $16, is_pioneer_ride = $17,
				ride_days = $18, event_type = $19, has_intro_ride = $20,
				description = $21, directions = $22,
				control_judges = $23, distances = $24,
				updated_at = NOW()
			WHERE id = $1
		`, id, record.Name, record.Region, record.DateStart, record.DateEnd,
			record.LocationName, record.City, record.State, record.Country,
			record.RideManager, record.ManagerPhone, record.ManagerEmail,
			record.Website, record.FlyerURL,
			record.IsCanceled, record.IsMultiDayEvent, record.IsPioneerRide,
			record.RideDays, record.EventType, record.HasIntroRide,
			record.Description, record.Directions,
			judges, distances)
	}

	if err != nil {
		return 0, fmt.Errorf("failed to %s event: %w", outcome, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit reconcile: %w", err)
	}

	return outcome, nil
}

// GetEvent retrieves one event by its identity key, or nil if absent.
func (r *PostgresEventRepository) GetEvent(source, rideID string) (*Event, error) {
	row := r.db.QueryRow(eventSelect+`
		WHERE source = $1 AND ride_id = $2
	`, source, rideID)

	event, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

// GetEventsBySource returns all stored events for one source ordered by
// start date.
func (r *PostgresEventRepository) GetEventsBySource(source string) ([]Event, error) {
	rows, err := r.db.Query(eventSelect+`
		WHERE source = $1
		ORDER BY date_start NULLS LAST, ride_id
	`, source)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, *event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, nil
}

func (r *PostgresEventRepository) GetEventCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM events").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get event count: %w", err)
	}
	return count, nil
}

// GetSourceStats returns aggregate counts for one source.
func (r *PostgresEventRepository) GetSourceStats(source string) (total, multiDay, canceled int, err error) {
	err = r.db.QueryRow(`
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN is_multi_day_event THEN 1 ELSE 0 END), 0) AS multi_day,
			COALESCE(SUM(CASE WHEN is_canceled THEN 1 ELSE 0 END), 0) AS canceled
		FROM events
		WHERE source = $1
	`, source).Scan(&total, &multiDay, &canceled)

	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to get source stats: %w", err)
	}

	return total, multiDay, canceled, nil
}

const eventSelect = `
	SELECT id, source, ride_id, COALESCE(name, ''), COALESCE(region, ''),
	       date_start, date_end,
	       COALESCE(location_name, ''), COALESCE(city, ''),
	       COALESCE(state, ''), COALESCE(country, ''),
	       COALESCE(ride_manager, ''), COALESCE(manager_phone, ''),
	       COALESCE(manager_email, ''), COALESCE(website, ''),
	       COALESCE(flyer_url, ''),
	       is_canceled, is_multi_day_event, is_pioneer_ride, ride_days,
	       event_type, has_intro_ride,
	       COALESCE(description, ''), COALESCE(directions, ''),
	       control_judges, distances, created_at, updated_at
	FROM events
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*Event, error) {
	var event Event
	var judges, distances []byte

	err := row.Scan(
		&event.ID, &event.Source, &event.RideID, &event.Name, &event.Region,
		&event.DateStart, &event.DateEnd,
		&event.LocationName, &event.City, &event.State, &event.Country,
		&event.RideManager, &event.ManagerPhone, &event.ManagerEmail,
		&event.Website, &event.FlyerURL,
		&event.IsCanceled, &event.IsMultiDayEvent, &event.IsPioneerRide, &event.RideDays,
		&event.EventType, &event.HasIntroRide,
		&event.Description, &event.Directions,
		&judges, &distances, &event.CreatedAt, &event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(judges, &event.ControlJudges); err != nil {
		return nil, fmt.Errorf("failed to decode control judges: %w", err)
	}
	if err := json.Unmarshal(distances, &event.Distances); err != nil {
		return nil, fmt.Errorf("failed to decode distances: %w", err)
	}

	return &event, nil
}

// IsConstraintViolation reports whether err is a Postgres integrity
// constraint failure (error class 23).
func IsConstraintViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "23"
	}
	return false
}

// IsConnectivityError reports whether err is a Postgres connection failure
// (error class 08) or a driver-level transport error.
func IsConnectivityError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "08"
	}
	return errors.Is(err, sql.ErrConnDone) || errors.Is(err, sql.ErrTxDone)
}
