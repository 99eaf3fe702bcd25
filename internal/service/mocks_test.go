package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/travel-agency/backend/internal/domain"
	"github.com/pkordes/travel-agency/backend/internal/repo"
)

// Function-field mocks. A nil field panics on use, which makes an
// unexpected repo call fail the test loudly.

type mockDestinationRepo struct {
	createFn  func(ctx context.Context, d *domain.Destination) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Destination, error)
	listFn    func(ctx context.Context) ([]*domain.Destination, error)
}

var _ repo.DestinationRepo = (*mockDestinationRepo)(nil)

func (m *mockDestinationRepo) Create(ctx context.Context, d *domain.Destination) error {
	return m.createFn(ctx, d)
}

func (m *mockDestinationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockDestinationRepo) List(ctx context.Context) ([]*domain.Destination, error) {
	return m.listFn(ctx)
}

type mockTripRepo struct {
	createFn            func(ctx context.Context, t *domain.Trip) error
	getByIDFn           func(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
	getByCodeFn         func(ctx context.Context, code string) (*domain.Trip, error)
	listFn              func(ctx context.Context) ([]*domain.Trip, error)
	listByDestinationFn func(ctx context.Context, destinationID uuid.UUID) ([]*domain.Trip, error)
	updateFn            func(ctx context.Context, t *domain.Trip) error
	deleteFn            func(ctx context.Context, id uuid.UUID) error
	lockForBookingFn    func(ctx context.Context, id uuid.UUID) error
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

func (m *mockTripRepo) Create(ctx context.Context, t *domain.Trip) error {
	return m.createFn(ctx, t)
}

func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockTripRepo) GetByCode(ctx context.Context, code string) (*domain.Trip, error) {
	return m.getByCodeFn(ctx, code)
}

func (m *mockTripRepo) List(ctx context.Context) ([]*domain.Trip, error) {
	return m.listFn(ctx)
}

func (m *mockTripRepo) ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]*domain.Trip, error) {
	return m.listByDestinationFn(ctx, destinationID)
}

func (m *mockTripRepo) Update(ctx context.Context, t *domain.Trip) error {
	return m.updateFn(ctx, t)
}

func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockTripRepo) LockForBooking(ctx context.Context, id uuid.UUID) error {
	return m.lockForBookingFn(ctx, id)
}

type mockCustomerRepo struct {
	createFn     func(ctx context.Context, c *domain.Customer) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.Customer, error)
	listFn       func(ctx context.Context) ([]*domain.Customer, error)
}

var _ repo.CustomerRepo = (*mockCustomerRepo)(nil)

func (m *mockCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	return m.createFn(ctx, c)
}

func (m *mockCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockCustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return m.getByEmailFn(ctx, email)
}

func (m *mockCustomerRepo) List(ctx context.Context) ([]*domain.Customer, error) {
	return m.listFn(ctx)
}

type mockReservationRepo struct {
	createFn         func(ctx context.Context, r *domain.Reservation) error
	getByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	getByNumberFn    func(ctx context.Context, number string) (*domain.Reservation, error)
	listFn           func(ctx context.Context) ([]*domain.Reservation, error)
	listByCustomerFn func(ctx context.Context, customerID uuid.UUID) ([]*domain.Reservation, error)
	listByTripFn     func(ctx context.Context, tripID uuid.UUID) ([]*domain.Reservation, error)
	updateStatusFn   func(ctx context.Context, id uuid.UUID, status domain.ReservationStatus) error
}

var _ repo.ReservationRepo = (*mockReservationRepo)(nil)

func (m *mockReservationRepo) Create(ctx context.Context, r *domain.Reservation) error {
	return m.createFn(ctx, r)
}

func (m *mockReservationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockReservationRepo) GetByNumber(ctx context.Context, number string) (*domain.Reservation, error) {
	return m.getByNumberFn(ctx, number)
}

func (m *mockReservationRepo) List(ctx context.Context) ([]*domain.Reservation, error) {
	return m.listFn(ctx)
}

func (m *mockReservationRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.Reservation, error) {
	return m.listByCustomerFn(ctx, customerID)
}

func (m *mockReservationRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]*domain.Reservation, error) {
	return m.listByTripFn(ctx, tripID)
}

func (m *mockReservationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReservationStatus) error {
	return m.updateStatusFn(ctx, id, status)
}

type mockPaymentRepo struct {
	createFn           func(ctx context.Context, p *domain.Payment) error
	getByReservationFn func(ctx context.Context, reservationID uuid.UUID) (*domain.Payment, error)
}

var _ repo.PaymentRepo = (*mockPaymentRepo)(nil)

func (m *mockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	return m.createFn(ctx, p)
}

func (m *mockPaymentRepo) GetByReservation(ctx context.Context, reservationID uuid.UUID) (*domain.Payment, error) {
	return m.getByReservationFn(ctx, reservationID)
}

type mockFlightRepo struct {
	createFn    func(ctx context.Context, f *domain.Flight, tripID uuid.UUID) error
	getByTripFn func(ctx context.Context, tripID uuid.UUID) (*domain.Flight, error)
}

var _ repo.FlightRepo = (*mockFlightRepo)(nil)

func (m *mockFlightRepo) Create(ctx context.Context, f *domain.Flight, tripID uuid.UUID) error {
	return m.createFn(ctx, f, tripID)
}

func (m *mockFlightRepo) GetByTrip(ctx context.Context, tripID uuid.UUID) (*domain.Flight, error) {
	return m.getByTripFn(ctx, tripID)
}

// mockUnitOfWork runs the callback against a fixed repo bundle, standing
// in for a real transaction.
type mockUnitOfWork struct {
	repos repo.Repos
	err   error
}

var _ repo.UnitOfWork = (*mockUnitOfWork)(nil)

func (m *mockUnitOfWork) Run(ctx context.Context, fn func(repo.Repos) error) error {
	if m.err != nil {
		return m.err
	}
	return fn(m.repos)
}
