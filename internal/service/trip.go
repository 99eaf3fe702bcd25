// Package service contains the business logic for the travel agency API.
// Services validate inputs, enforce business rules, orchestrate repo calls,
// and rehydrate the domain object graph so that derived values (final
// price, available spots, total price) are always computed from live data.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-agency/backend/internal/domain"
	"github.com/pkordes/travel-agency/backend/internal/repo"
)

// TripInput carries the fields needed to create or update a trip. Kind
// selects the variant; only that variant's extra fields are read.
type TripInput struct {
	Code            string
	Name            string
	Description     string
	DestinationID   uuid.UUID
	DepartureDate   time.Time
	ReturnDate      time.Time
	BasePrice       domain.Money
	MaxParticipants int

	Kind domain.TripKind

	// Cultural
	GuidedTours     bool
	HistoricalSites []string

	// Adventure
	Difficulty        domain.DifficultyLevel
	EquipmentIncluded bool

	// Vacation
	ResortName   string
	AllInclusive bool
}

// TripService implements business logic for Trip operations.
type TripService struct {
	trips        repo.TripRepo
	destinations repo.DestinationRepo
	reservations repo.ReservationRepo
	flights      repo.FlightRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, destinations repo.DestinationRepo,
	reservations repo.ReservationRepo, flights repo.FlightRepo) *TripService {
	return &TripService{trips: trips, destinations: destinations, reservations: reservations, flights: flights}
}

// Create validates and persists a new trip under an existing destination.
// Returns domain.ErrInvalidArgument for rule violations and
// domain.ErrNotFound when the destination does not exist.
func (s *TripService) Create(ctx context.Context, input TripInput) (*domain.Trip, error) {
	if err := validateTripInput(input); err != nil {
		return nil, err
	}

	dest, err := s.destinations.GetByID(ctx, input.DestinationID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Create: %w", err)
	}

	trip := buildTrip(input, dest)
	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return trip, nil
}

// GetByID returns a trip with its reservations attached, so availability
// reflects the current booking set.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	if err := s.attachReservations(ctx, trip); err != nil {
		return nil, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// List returns all trips with reservations attached, ordered by departure.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context) ([]*domain.Trip, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if err := s.attachAllReservations(ctx, trips); err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []*domain.Trip{}, nil
	}
	return trips, nil
}

// ListAvailable returns the trips that can still be booked today.
func (s *TripService) ListAvailable(ctx context.Context) ([]*domain.Trip, error) {
	trips, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	available := []*domain.Trip{}
	for _, t := range trips {
		if t.IsAvailable() {
			available = append(available, t)
		}
	}
	return available, nil
}

// Update validates and overwrites the mutable fields of an existing trip.
// The variant is fixed at creation: an input whose Kind differs from the
// stored trip fails with domain.ErrInvalidArgument.
func (s *TripService) Update(ctx context.Context, id uuid.UUID, input TripInput) (*domain.Trip, error) {
	if err := validateTripInput(input); err != nil {
		return nil, err
	}

	existing, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if existing.Kind() != input.Kind {
		return nil, fmt.Errorf("%w: trip type cannot change from %s to %s",
			domain.ErrInvalidArgument, existing.Kind(), input.Kind)
	}

	dest, err := s.destinations.GetByID(ctx, input.DestinationID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Update: %w", err)
	}

	trip := buildTrip(input, dest)
	trip.ID = id
	if err := s.trips.Update(ctx, trip); err != nil {
		return nil, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return trip, nil
}

// Delete removes a trip by ID.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// AttachFlight records the flight serving a trip.
// Returns domain.ErrNotFound when the trip does not exist.
func (s *TripService) AttachFlight(ctx context.Context, tripID uuid.UUID, f *domain.Flight) error {
	if f == nil {
		return fmt.Errorf("%w: flight is required", domain.ErrInvalidArgument)
	}
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return fmt.Errorf("service.TripService.AttachFlight: %w", err)
	}
	trip.SetFlight(f)
	if err := s.flights.Create(ctx, f, trip.ID); err != nil {
		return fmt.Errorf("service.TripService.AttachFlight: %w", err)
	}
	return nil
}

// Flight returns the flight serving a trip.
func (s *TripService) Flight(ctx context.Context, tripID uuid.UUID) (*domain.Flight, error) {
	f, err := s.flights.GetByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Flight: %w", err)
	}
	return f, nil
}

// attachReservations links the trip's live reservation set so derived
// availability is correct.
func (s *TripService) attachReservations(ctx context.Context, trip *domain.Trip) error {
	resvs, err := s.reservations.ListByTrip(ctx, trip.ID)
	if err != nil {
		return err
	}
	for _, r := range resvs {
		trip.AddReservation(r)
	}
	return nil
}

// attachAllReservations hydrates many trips with one reservation query.
func (s *TripService) attachAllReservations(ctx context.Context, trips []*domain.Trip) error {
	if len(trips) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*domain.Trip, len(trips))
	for _, t := range trips {
		byID[t.ID] = t
	}
	resvs, err := s.reservations.List(ctx)
	if err != nil {
		return err
	}
	for _, r := range resvs {
		if r.Trip() == nil {
			continue
		}
		if t, ok := byID[r.Trip().ID]; ok {
			t.AddReservation(r)
		}
	}
	return nil
}

// buildTrip constructs the domain trip for the input's variant.
// validateTripInput must have accepted the input first.
func buildTrip(input TripInput, dest *domain.Destination) *domain.Trip {
	switch input.Kind {
	case domain.TripKindCultural:
		trip := domain.NewCulturalTrip(input.Code, input.Name, input.Description, dest,
			input.DepartureDate, input.ReturnDate, input.BasePrice, input.MaxParticipants,
			input.GuidedTours)
		cultural, _ := trip.Cultural()
		for _, site := range input.HistoricalSites {
			cultural.AddHistoricalSite(site)
		}
		return trip
	case domain.TripKindAdventure:
		return domain.NewAdventureTrip(input.Code, input.Name, input.Description, dest,
			input.DepartureDate, input.ReturnDate, input.BasePrice, input.MaxParticipants,
			input.Difficulty, input.EquipmentIncluded)
	default:
		return domain.NewVacationTrip(input.Code, input.Name, input.Description, dest,
			input.DepartureDate, input.ReturnDate, input.BasePrice, input.MaxParticipants,
			input.ResortName, input.AllInclusive)
	}
}

// validateTripInput enforces business rules common to Create and Update.
//   - Code and name must be non-empty (whitespace-only is rejected).
//   - Base price must be positive, max participants at least 1.
//   - Return must not precede departure.
//   - The kind must be one of the three variants, with a known difficulty
//     for adventure trips.
func validateTripInput(input TripInput) error {
	if strings.TrimSpace(input.Code) == "" {
		return fmt.Errorf("%w: trip code is required", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidArgument)
	}
	if !input.BasePrice.IsPositive() {
		return fmt.Errorf("%w: base price must be positive", domain.ErrInvalidArgument)
	}
	if input.MaxParticipants < 1 {
		return fmt.Errorf("%w: max participants must be at least 1", domain.ErrInvalidArgument)
	}
	if input.ReturnDate.Before(input.DepartureDate) {
		return fmt.Errorf("%w: return date must not be before departure date", domain.ErrInvalidArgument)
	}
	switch input.Kind {
	case domain.TripKindCultural, domain.TripKindVacation:
	case domain.TripKindAdventure:
		switch input.Difficulty {
		case domain.DifficultyEasy, domain.DifficultyModerate, domain.DifficultyHard:
		default:
			return fmt.Errorf("%w: unknown difficulty level %q", domain.ErrInvalidArgument, input.Difficulty)
		}
	default:
		return fmt.Errorf("%w: unknown trip type %q", domain.ErrInvalidArgument, input.Kind)
	}
	return nil
}
