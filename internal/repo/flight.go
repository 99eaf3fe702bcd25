package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-agency/backend/internal/domain"
)

// FlightRepo defines the persistence operations for Flights, the optional
// 1:1 attachment to a trip.
type FlightRepo interface {
	// Create inserts a flight serving the given trip and assigns the
	// DB-generated ID. The unique constraint on trip_id enforces at most
	// one flight per trip.
	Create(ctx context.Context, f *domain.Flight, tripID uuid.UUID) error

	// GetByTrip retrieves the flight serving a trip.
	// Returns domain.ErrNotFound when the trip has no flight.
	GetByTrip(ctx context.Context, tripID uuid.UUID) (*domain.Flight, error)
}

type pgFlightRepo struct {
	db db
}

// NewFlightRepo constructs a FlightRepo backed by the provided db connection.
func NewFlightRepo(db db) FlightRepo {
	return &pgFlightRepo{db: db}
}

func (r *pgFlightRepo) Create(ctx context.Context, f *domain.Flight, tripID uuid.UUID) error {
	const q = `
		INSERT INTO flights (trip_id, flight_number, airline,
		                     departure_airport, arrival_airport, departure_time, arrival_time)
		VALUES (@trip_id, @flight_number, @airline,
		        @departure_airport, @arrival_airport, @departure_time, @arrival_time)
		RETURNING id`

	args := pgx.NamedArgs{
		"trip_id":           tripID,
		"flight_number":     f.FlightNumber,
		"airline":           f.Airline,
		"departure_airport": f.DepartureAirport,
		"arrival_airport":   f.ArrivalAirport,
		"departure_time":    f.DepartureTime,
		"arrival_time":      f.ArrivalTime,
	}

	var id pgtype.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&id); err != nil {
		return fmt.Errorf("repo.FlightRepo.Create: %w", err)
	}
	f.ID = uuid.UUID(id.Bytes)
	return nil
}

func (r *pgFlightRepo) GetByTrip(ctx context.Context, tripID uuid.UUID) (*domain.Flight, error) {
	const q = `
		SELECT id, flight_number, airline,
		       departure_airport, arrival_airport, departure_time, arrival_time
		FROM flights
		WHERE trip_id = @trip_id`

	var (
		f  domain.Flight
		id pgtype.UUID
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID}).
		Scan(&id, &f.FlightNumber, &f.Airline,
			&f.DepartureAirport, &f.ArrivalAirport, &f.DepartureTime, &f.ArrivalTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("repo.FlightRepo.GetByTrip: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.FlightRepo.GetByTrip: %w", err)
	}

	f.ID = uuid.UUID(id.Bytes)
	return &f, nil
}
