// Package handler implements the HTTP handlers for the Travel Agency API.
// All handlers are methods on Server, split into domain-specific files
// (destination.go, trip.go, customer.go, reservation.go) that share the
// same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/travel-agency/backend/internal/domain"
	"github.com/pkordes/travel-agency/backend/internal/service"
	"github.com/pkordes/travel-agency/backend/spec"
)

// The servicer interfaces below define the business operations each handler
// depends on. Defining them here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.

// DestinationServicer defines the destination operations the handlers use.
type DestinationServicer interface {
	Create(ctx context.Context, input service.DestinationInput) (*domain.Destination, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error)
	List(ctx context.Context) ([]*domain.Destination, error)
	Trips(ctx context.Context, destinationID uuid.UUID, availableOnly bool) ([]*domain.Trip, error)
}

// TripServicer defines the trip operations the handlers use.
type TripServicer interface {
	Create(ctx context.Context, input service.TripInput) (*domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
	List(ctx context.Context) ([]*domain.Trip, error)
	ListAvailable(ctx context.Context) ([]*domain.Trip, error)
	Update(ctx context.Context, id uuid.UUID, input service.TripInput) (*domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AttachFlight(ctx context.Context, tripID uuid.UUID, f *domain.Flight) error
	Flight(ctx context.Context, tripID uuid.UUID) (*domain.Flight, error)
}

// CustomerServicer defines the customer operations the handlers use.
type CustomerServicer interface {
	Register(ctx context.Context, input service.CustomerInput) (*domain.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
}

// ReservationServicer defines the reservation operations the handlers use.
type ReservationServicer interface {
	Book(ctx context.Context, customerID, tripID uuid.UUID, partySize int) (*domain.Reservation, error)
	Confirm(ctx context.Context, number string) (*domain.Reservation, error)
	RecordPayment(ctx context.Context, number string, input service.PaymentInput) (*domain.Reservation, error)
	Cancel(ctx context.Context, number string) (*domain.Reservation, error)
	Complete(ctx context.Context, number string) (*domain.Reservation, error)
	GetByNumber(ctx context.Context, number string) (*domain.Reservation, error)
	List(ctx context.Context) ([]*domain.Reservation, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.Reservation, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]*domain.Reservation, error)
}

// Server holds the handlers' dependencies. Methods are in domain-specific
// files but all operate on this struct.
type Server struct {
	destinations DestinationServicer
	trips        TripServicer
	customers    CustomerServicer
	reservations ReservationServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(destinations DestinationServicer, trips TripServicer,
	customers CustomerServicer, reservations ReservationServicer) *Server {
	return &Server{
		destinations: destinations,
		trips:        trips,
		customers:    customers,
		reservations: reservations,
	}
}

// Routes registers every endpoint on a fresh chi router. Middleware is the
// caller's concern; main.go applies it around this router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Route("/destinations", func(r chi.Router) {
			r.Post("/", s.CreateDestination)
			r.Get("/", s.ListDestinations)
			r.Get("/{id}", s.GetDestination)
			r.Get("/{id}/trips", s.ListDestinationTrips)
		})
		r.Route("/trips", func(r chi.Router) {
			r.Post("/", s.CreateTrip)
			r.Get("/", s.ListTrips)
			r.Get("/{id}", s.GetTrip)
			r.Put("/{id}", s.UpdateTrip)
			r.Delete("/{id}", s.DeleteTrip)
			r.Get("/{id}/reservations", s.ListTripReservations)
			r.Post("/{id}/flight", s.AttachFlight)
			r.Get("/{id}/flight", s.GetFlight)
		})
		r.Route("/customers", func(r chi.Router) {
			r.Post("/", s.RegisterCustomer)
			r.Get("/", s.ListCustomers)
			r.Get("/{id}", s.GetCustomer)
			r.Get("/{id}/reservations", s.ListCustomerReservations)
		})
		r.Route("/reservations", func(r chi.Router) {
			r.Post("/", s.BookReservation)
			r.Get("/", s.ListReservations)
			r.Get("/{number}", s.GetReservation)
			r.Post("/{number}/confirm", s.ConfirmReservation)
			r.Post("/{number}/payment", s.RecordPayment)
			r.Post("/{number}/cancel", s.CancelReservation)
			r.Post("/{number}/complete", s.CompleteReservation)
		})
	})

	return r
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetOpenAPI handles GET /openapi.yaml, serving the embedded API spec.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}

// writeJSON serializes v with the given status. Encoding errors after the
// header is written can only be logged, not reported to the client.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// readJSON decodes the request body into v, rejecting unknown fields so
// client typos fail fast instead of being silently dropped.
func readJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// pathID parses the {id} route parameter as a UUID.
func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}
