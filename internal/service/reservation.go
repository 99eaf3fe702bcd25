package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-agency/backend/internal/domain"
	"github.com/pkordes/travel-agency/backend/internal/repo"
)

// PaymentInput carries the fields needed to record a payment against a
// reservation. A zero PaymentDate defaults to the current time.
type PaymentInput struct {
	Amount               domain.Money
	Method               domain.PaymentMethod
	TransactionReference string
	PaymentDate          time.Time
}

// ReservationService implements business logic for the reservation
// lifecycle. Booking and every status transition run inside a single
// database transaction so concurrent requests cannot observe or produce
// inconsistent state.
type ReservationService struct {
	repos repo.Repos
	uow   repo.UnitOfWork
}

// NewReservationService constructs a ReservationService. repos serves
// read-only queries; uow scopes each mutating operation to a transaction.
func NewReservationService(repos repo.Repos, uow repo.UnitOfWork) *ReservationService {
	return &ReservationService{repos: repos, uow: uow}
}

// Book reserves partySize spots on a trip for a customer and returns the
// new pending reservation. The trip row is locked for the duration of the
// transaction, so two concurrent bookings for the last spots cannot both
// succeed.
//
// Returns domain.ErrNotFound when the customer or trip does not exist,
// domain.ErrInvalidState when the trip has already departed, and
// domain.ErrInvalidArgument when partySize is invalid or exceeds the
// remaining spots.
func (s *ReservationService) Book(ctx context.Context, customerID, tripID uuid.UUID, partySize int) (*domain.Reservation, error) {
	if partySize < 1 {
		return nil, fmt.Errorf("%w: party size must be at least 1", domain.ErrInvalidArgument)
	}

	var resv *domain.Reservation
	err := s.uow.Run(ctx, func(r repo.Repos) error {
		if err := r.Trips.LockForBooking(ctx, tripID); err != nil {
			return err
		}
		trip, err := r.Trips.GetByID(ctx, tripID)
		if err != nil {
			return err
		}
		customer, err := r.Customers.GetByID(ctx, customerID)
		if err != nil {
			return err
		}

		existing, err := r.Reservations.ListByTrip(ctx, tripID)
		if err != nil {
			return err
		}
		for _, e := range existing {
			trip.AddReservation(e)
		}

		if !trip.DepartureDate.After(time.Now()) {
			return fmt.Errorf("%w: trip %s has already departed", domain.ErrInvalidState, trip.Code)
		}
		if !trip.HasEnoughSpots(partySize) {
			return fmt.Errorf("%w: only %d spots left on trip %s",
				domain.ErrInvalidArgument, trip.AvailableSpots(), trip.Code)
		}

		resv, err = domain.NewReservation(customer, trip, partySize)
		if err != nil {
			return err
		}
		return r.Reservations.Create(ctx, resv)
	})
	if err != nil {
		return nil, fmt.Errorf("service.ReservationService.Book: %w", err)
	}
	return resv, nil
}

// Confirm moves a pending reservation to confirmed.
func (s *ReservationService) Confirm(ctx context.Context, number string) (*domain.Reservation, error) {
	return s.transition(ctx, "Confirm", number, func(r *domain.Reservation) error {
		return r.Confirm()
	})
}

// RecordPayment validates and records a payment against a pending
// reservation, confirming it. The payment amount must equal the
// reservation's total price exactly.
func (s *ReservationService) RecordPayment(ctx context.Context, number string, input PaymentInput) (*domain.Reservation, error) {
	paidAt := input.PaymentDate
	if paidAt.IsZero() {
		paidAt = time.Now()
	}
	payment, err := domain.NewPayment(input.Amount, paidAt, input.Method, input.TransactionReference)
	if err != nil {
		return nil, fmt.Errorf("service.ReservationService.RecordPayment: %w", err)
	}

	var resv *domain.Reservation
	err = s.uow.Run(ctx, func(r repo.Repos) error {
		var err error
		resv, err = r.Reservations.GetByNumber(ctx, number)
		if err != nil {
			return err
		}
		if err := resv.RecordPayment(payment); err != nil {
			return err
		}
		if err := r.Payments.Create(ctx, payment); err != nil {
			return err
		}
		return r.Reservations.UpdateStatus(ctx, resv.ID, resv.Status)
	})
	if err != nil {
		return nil, fmt.Errorf("service.ReservationService.RecordPayment: %w", err)
	}
	return resv, nil
}

// Cancel cancels a pending or confirmed reservation, releasing its spots.
func (s *ReservationService) Cancel(ctx context.Context, number string) (*domain.Reservation, error) {
	return s.transition(ctx, "Cancel", number, func(r *domain.Reservation) error {
		return r.Cancel()
	})
}

// Complete marks a confirmed reservation as completed once the trip has
// departed.
func (s *ReservationService) Complete(ctx context.Context, number string) (*domain.Reservation, error) {
	return s.transition(ctx, "Complete", number, func(r *domain.Reservation) error {
		return r.Complete()
	})
}

// GetByNumber returns a reservation by its business number, with any
// recorded payment attached.
func (s *ReservationService) GetByNumber(ctx context.Context, number string) (*domain.Reservation, error) {
	resv, err := s.repos.Reservations.GetByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("service.ReservationService.GetByNumber: %w", err)
	}
	if err := s.attachPayment(ctx, s.repos, resv); err != nil {
		return nil, fmt.Errorf("service.ReservationService.GetByNumber: %w", err)
	}
	return resv, nil
}

// List returns all reservations, most recent booking first. Always
// returns a non-nil slice so callers can safely range over it.
func (s *ReservationService) List(ctx context.Context) ([]*domain.Reservation, error) {
	resvs, err := s.repos.Reservations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ReservationService.List: %w", err)
	}
	if resvs == nil {
		return []*domain.Reservation{}, nil
	}
	return resvs, nil
}

// ListByCustomer returns a customer's reservations, most recent first.
// Returns domain.ErrNotFound when the customer does not exist.
func (s *ReservationService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.Reservation, error) {
	if _, err := s.repos.Customers.GetByID(ctx, customerID); err != nil {
		return nil, fmt.Errorf("service.ReservationService.ListByCustomer: %w", err)
	}
	resvs, err := s.repos.Reservations.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("service.ReservationService.ListByCustomer: %w", err)
	}
	if resvs == nil {
		return []*domain.Reservation{}, nil
	}
	return resvs, nil
}

// ListByTrip returns a trip's reservations, most recent first.
// Returns domain.ErrNotFound when the trip does not exist.
func (s *ReservationService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]*domain.Reservation, error) {
	if _, err := s.repos.Trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.ReservationService.ListByTrip: %w", err)
	}
	resvs, err := s.repos.Reservations.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ReservationService.ListByTrip: %w", err)
	}
	if resvs == nil {
		return []*domain.Reservation{}, nil
	}
	return resvs, nil
}

// transition loads a reservation by number, applies a domain state change
// and persists the new status, all inside one transaction.
func (s *ReservationService) transition(ctx context.Context, op, number string, apply func(*domain.Reservation) error) (*domain.Reservation, error) {
	var resv *domain.Reservation
	err := s.uow.Run(ctx, func(r repo.Repos) error {
		var err error
		resv, err = r.Reservations.GetByNumber(ctx, number)
		if err != nil {
			return err
		}
		if err := s.attachPayment(ctx, r, resv); err != nil {
			return err
		}
		if err := apply(resv); err != nil {
			return err
		}
		return r.Reservations.UpdateStatus(ctx, resv.ID, resv.Status)
	})
	if err != nil {
		return nil, fmt.Errorf("service.ReservationService.%s: %w", op, err)
	}
	return resv, nil
}

// attachPayment links the recorded payment, if any. A missing payment is
// not an error: pending reservations have none.
func (s *ReservationService) attachPayment(ctx context.Context, r repo.Repos, resv *domain.Reservation) error {
	payment, err := r.Payments.GetByReservation(ctx, resv.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	resv.AttachPayment(payment)
	return nil
}
