package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travel-agency/backend/internal/domain"
	"github.com/pkordes/travel-agency/backend/internal/repo"
)

// DestinationInput carries the fields needed to create a destination.
type DestinationInput struct {
	Name        string
	Country     string
	Description string
	Climate     string
}

// DestinationService implements business logic for Destination operations.
type DestinationService struct {
	destinations repo.DestinationRepo
	trips        repo.TripRepo
	reservations repo.ReservationRepo
}

// NewDestinationService constructs a DestinationService backed by the
// provided repos.
func NewDestinationService(destinations repo.DestinationRepo, trips repo.TripRepo,
	reservations repo.ReservationRepo) *DestinationService {
	return &DestinationService{destinations: destinations, trips: trips, reservations: reservations}
}

// Create validates and persists a new destination.
func (s *DestinationService) Create(ctx context.Context, input DestinationInput) (*domain.Destination, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(input.Country) == "" {
		return nil, fmt.Errorf("%w: country is required", domain.ErrInvalidArgument)
	}

	dest := domain.NewDestination(input.Name, input.Country, input.Description, input.Climate)
	if err := s.destinations.Create(ctx, dest); err != nil {
		return nil, fmt.Errorf("service.DestinationService.Create: %w", err)
	}
	return dest, nil
}

// GetByID returns a destination by ID.
func (s *DestinationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	dest, err := s.destinations.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.GetByID: %w", err)
	}
	return dest, nil
}

// List returns all destinations ordered by name. Always returns a non-nil
// slice so callers can safely range over it.
func (s *DestinationService) List(ctx context.Context) ([]*domain.Destination, error) {
	dests, err := s.destinations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.List: %w", err)
	}
	if dests == nil {
		return []*domain.Destination{}, nil
	}
	return dests, nil
}

// Trips returns the trips offered at a destination with reservations
// attached. When availableOnly is set, only trips that can still be booked
// today are returned.
func (s *DestinationService) Trips(ctx context.Context, destinationID uuid.UUID, availableOnly bool) ([]*domain.Trip, error) {
	if _, err := s.destinations.GetByID(ctx, destinationID); err != nil {
		return nil, fmt.Errorf("service.DestinationService.Trips: %w", err)
	}
	trips, err := s.trips.ListByDestination(ctx, destinationID)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.Trips: %w", err)
	}

	out := []*domain.Trip{}
	for _, t := range trips {
		resvs, err := s.reservations.ListByTrip(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("service.DestinationService.Trips: %w", err)
		}
		for _, r := range resvs {
			t.AddReservation(r)
		}
		if availableOnly && !t.IsAvailable() {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}
