package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-agency/backend/internal/domain"
	"github.com/pkordes/travel-agency/backend/internal/handler"
	"github.com/pkordes/travel-agency/backend/internal/service"
)

// Test doubles for the servicer interfaces. Set only the method fields
// your test needs; an unexpected call panics on the nil field.

type mockDestinationServicer struct {
	create  func(ctx context.Context, input service.DestinationInput) (*domain.Destination, error)
	getByID func(ctx context.Context, id uuid.UUID) (*domain.Destination, error)
	list    func(ctx context.Context) ([]*domain.Destination, error)
	trips   func(ctx context.Context, destinationID uuid.UUID, availableOnly bool) ([]*domain.Trip, error)
}

var _ handler.DestinationServicer = (*mockDestinationServicer)(nil)

func (m *mockDestinationServicer) Create(ctx context.Context, input service.DestinationInput) (*domain.Destination, error) {
	return m.create(ctx, input)
}
func (m *mockDestinationServicer) GetByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	return m.getByID(ctx, id)
}
func (m *mockDestinationServicer) List(ctx context.Context) ([]*domain.Destination, error) {
	return m.list(ctx)
}
func (m *mockDestinationServicer) Trips(ctx context.Context, destinationID uuid.UUID, availableOnly bool) ([]*domain.Trip, error) {
	return m.trips(ctx, destinationID, availableOnly)
}

type mockTripServicer struct {
	create        func(ctx context.Context, input service.TripInput) (*domain.Trip, error)
	getByID       func(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
	list          func(ctx context.Context) ([]*domain.Trip, error)
	listAvailable func(ctx context.Context) ([]*domain.Trip, error)
	update        func(ctx context.Context, id uuid.UUID, input service.TripInput) (*domain.Trip, error)
	delete        func(ctx context.Context, id uuid.UUID) error
	attachFlight  func(ctx context.Context, tripID uuid.UUID, f *domain.Flight) error
	flight        func(ctx context.Context, tripID uuid.UUID) (*domain.Flight, error)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

func (m *mockTripServicer) Create(ctx context.Context, input service.TripInput) (*domain.Trip, error) {
	return m.create(ctx, input)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) List(ctx context.Context) ([]*domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripServicer) ListAvailable(ctx context.Context) ([]*domain.Trip, error) {
	return m.listAvailable(ctx)
}
func (m *mockTripServicer) Update(ctx context.Context, id uuid.UUID, input service.TripInput) (*domain.Trip, error) {
	return m.update(ctx, id, input)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTripServicer) AttachFlight(ctx context.Context, tripID uuid.UUID, f *domain.Flight) error {
	return m.attachFlight(ctx, tripID, f)
}
func (m *mockTripServicer) Flight(ctx context.Context, tripID uuid.UUID) (*domain.Flight, error) {
	return m.flight(ctx, tripID)
}

type mockCustomerServicer struct {
	register func(ctx context.Context, input service.CustomerInput) (*domain.Customer, error)
	getByID  func(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	list     func(ctx context.Context) ([]*domain.Customer, error)
}

var _ handler.CustomerServicer = (*mockCustomerServicer)(nil)

func (m *mockCustomerServicer) Register(ctx context.Context, input service.CustomerInput) (*domain.Customer, error) {
	return m.register(ctx, input)
}
func (m *mockCustomerServicer) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return m.getByID(ctx, id)
}
func (m *mockCustomerServicer) List(ctx context.Context) ([]*domain.Customer, error) {
	return m.list(ctx)
}

type mockReservationServicer struct {
	book           func(ctx context.Context, customerID, tripID uuid.UUID, partySize int) (*domain.Reservation, error)
	confirm        func(ctx context.Context, number string) (*domain.Reservation, error)
	recordPayment  func(ctx context.Context, number string, input service.PaymentInput) (*domain.Reservation, error)
	cancel         func(ctx context.Context, number string) (*domain.Reservation, error)
	complete       func(ctx context.Context, number string) (*domain.Reservation, error)
	getByNumber    func(ctx context.Context, number string) (*domain.Reservation, error)
	list           func(ctx context.Context) ([]*domain.Reservation, error)
	listByCustomer func(ctx context.Context, customerID uuid.UUID) ([]*domain.Reservation, error)
	listByTrip     func(ctx context.Context, tripID uuid.UUID) ([]*domain.Reservation, error)
}

var _ handler.ReservationServicer = (*mockReservationServicer)(nil)

func (m *mockReservationServicer) Book(ctx context.Context, customerID, tripID uuid.UUID, partySize int) (*domain.Reservation, error) {
	return m.book(ctx, customerID, tripID, partySize)
}
func (m *mockReservationServicer) Confirm(ctx context.Context, number string) (*domain.Reservation, error) {
	return m.confirm(ctx, number)
}
func (m *mockReservationServicer) RecordPayment(ctx context.Context, number string, input service.PaymentInput) (*domain.Reservation, error) {
	return m.recordPayment(ctx, number, input)
}
func (m *mockReservationServicer) Cancel(ctx context.Context, number string) (*domain.Reservation, error) {
	return m.cancel(ctx, number)
}
func (m *mockReservationServicer) Complete(ctx context.Context, number string) (*domain.Reservation, error) {
	return m.complete(ctx, number)
}
func (m *mockReservationServicer) GetByNumber(ctx context.Context, number string) (*domain.Reservation, error) {
	return m.getByNumber(ctx, number)
}
func (m *mockReservationServicer) List(ctx context.Context) ([]*domain.Reservation, error) {
	return m.list(ctx)
}
func (m *mockReservationServicer) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.Reservation, error) {
	return m.listByCustomer(ctx, customerID)
}
func (m *mockReservationServicer) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]*domain.Reservation, error) {
	return m.listByTrip(ctx, tripID)
}

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks into its router,
// mirroring how main.go wires it in production. Pass nil for servicers
// the test never touches.
func newHTTPHandler(dests handler.DestinationServicer, trips handler.TripServicer,
	customers handler.CustomerServicer, resvs handler.ReservationServicer) http.Handler {
	return handler.NewServer(dests, trips, customers, resvs).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func doRequest(t *testing.T, h http.Handler, method, path string, body *bytes.Buffer) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func destinationFixture() *domain.Destination {
	d := domain.NewDestination("Paris", "France", "City of Light", "Temperate")
	d.ID = uuid.New()
	return d
}

func culturalTripFixture() *domain.Trip {
	trip := domain.NewCulturalTrip("CUL-PAR-001", "Paris Museums Week", "Seven days of museums",
		destinationFixture(),
		time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 11, 8, 0, 0, 0, 0, time.UTC),
		domain.MoneyFromCents(120000), 20, true)
	trip.ID = uuid.New()
	cultural, _ := trip.Cultural()
	cultural.AddHistoricalSite("Louvre")
	cultural.AddHistoricalSite("Notre-Dame")
	return trip
}

func customerFixture() *domain.Customer {
	c := domain.NewCustomer("Maria", "Garcia", "maria.garcia@example.com", "+34-600-123456",
		domain.Address{Street: "Calle Mayor 12", City: "Madrid", PostalCode: "28013", Country: "Spain"})
	c.ID = uuid.New()
	return c
}

func reservationFixture(t *testing.T) *domain.Reservation {
	t.Helper()
	resv, err := domain.NewReservation(customerFixture(), culturalTripFixture(), 2)
	require.NoError(t, err)
	resv.ID = uuid.New()
	return resv
}
