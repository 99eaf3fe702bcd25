package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-agency/backend/internal/domain"
	"github.com/pkordes/travel-agency/backend/internal/service"
)

// RegisterCustomerRequest is the JSON body of POST /api/customers.
type RegisterCustomerRequest struct {
	FirstName   string         `json:"firstName"`
	LastName    string         `json:"lastName"`
	Email       string         `json:"email"`
	PhoneNumber string         `json:"phoneNumber,omitempty"`
	Address     AddressRequest `json:"address"`
}

// AddressRequest mirrors the embedded address value object.
type AddressRequest struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// CustomerResponse is the JSON shape of a customer.
type CustomerResponse struct {
	ID               uuid.UUID      `json:"id"`
	Username         string         `json:"username"`
	FirstName        string         `json:"firstName"`
	LastName         string         `json:"lastName"`
	DisplayName      string         `json:"displayName"`
	Email            string         `json:"email"`
	PhoneNumber      string         `json:"phoneNumber,omitempty"`
	Address          AddressRequest `json:"address"`
	FullAddress      string         `json:"fullAddress"`
	RegistrationDate time.Time      `json:"registrationDate"`
}

// RegisterCustomer handles POST /api/customers.
func (s *Server) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req RegisterCustomerRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "malformed request body")
		return
	}

	customer, err := s.customers.Register(r.Context(), service.CustomerInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address: domain.Address{
			Street:     req.Address.Street,
			City:       req.Address.City,
			PostalCode: req.Address.PostalCode,
			Country:    req.Address.Country,
		},
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, customerToResponse(customer))
}

// ListCustomers handles GET /api/customers.
func (s *Server) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.customers.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	data := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		data[i] = customerToResponse(c)
	}
	writeJSON(w, http.StatusOK, data)
}

// GetCustomer handles GET /api/customers/{id}.
func (s *Server) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "malformed customer id")
		return
	}

	customer, err := s.customers.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customerToResponse(customer))
}

// ListCustomerReservations handles GET /api/customers/{id}/reservations.
// Reservations come back most recent booking first.
func (s *Server) ListCustomerReservations(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "malformed customer id")
		return
	}

	resvs, err := s.reservations.ListByCustomer(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	data := make([]ReservationResponse, len(resvs))
	for i, resv := range resvs {
		data[i] = reservationToResponse(resv)
	}
	writeJSON(w, http.StatusOK, data)
}

// customerToResponse converts a domain.Customer into its JSON shape.
func customerToResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		Username:    c.Username(),
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		DisplayName: c.DisplayName(),
		Email:       c.Email,
		PhoneNumber: c.Phone,
		Address: AddressRequest{
			Street:     c.Address.Street,
			City:       c.Address.City,
			PostalCode: c.Address.PostalCode,
			Country:    c.Address.Country,
		},
		FullAddress:      c.Address.FullAddress(),
		RegistrationDate: c.RegistrationDate,
	}
}
