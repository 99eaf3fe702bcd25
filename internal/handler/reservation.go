package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/travel-agency/backend/internal/domain"
	"github.com/pkordes/travel-agency/backend/internal/service"
)

// BookReservationRequest is the JSON body of POST /api/reservations.
type BookReservationRequest struct {
	CustomerID uuid.UUID `json:"customerId"`
	TripID     uuid.UUID `json:"tripId"`
	PartySize  int       `json:"partySize"`
}

// RecordPaymentRequest is the JSON body of POST /api/reservations/{number}/payment.
// The amount must equal the reservation's total price exactly.
type RecordPaymentRequest struct {
	Amount               string     `json:"amount"`
	Method               string     `json:"method"`
	TransactionReference string     `json:"transactionReference,omitempty"`
	PaymentDate          *time.Time `json:"paymentDate,omitempty"`
}

// PaymentResponse is the JSON shape of a recorded payment.
type PaymentResponse struct {
	ID                   uuid.UUID `json:"id"`
	Amount               string    `json:"amount"`
	Method               string    `json:"method"`
	TransactionReference string    `json:"transactionReference,omitempty"`
	PaymentDate          time.Time `json:"paymentDate"`
}

// ReservationResponse is the JSON shape of a reservation. TotalPrice and
// CanRefund are derived from the attached trip at serialization time.
type ReservationResponse struct {
	ID          uuid.UUID         `json:"id"`
	Number      string            `json:"reservationNumber"`
	BookingDate time.Time         `json:"bookingDate"`
	Status      string            `json:"status"`
	PartySize   int               `json:"partySize"`
	TotalPrice  string            `json:"totalPrice"`
	CanRefund   bool              `json:"canRefund"`
	Customer    *CustomerResponse `json:"customer,omitempty"`
	Trip        *TripResponse     `json:"trip,omitempty"`
	Payment     *PaymentResponse  `json:"payment,omitempty"`
}

// BookReservation handles POST /api/reservations.
func (s *Server) BookReservation(w http.ResponseWriter, r *http.Request) {
	var req BookReservationRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "malformed request body")
		return
	}

	resv, err := s.reservations.Book(r.Context(), req.CustomerID, req.TripID, req.PartySize)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reservationToResponse(resv))
}

// ListReservations handles GET /api/reservations.
func (s *Server) ListReservations(w http.ResponseWriter, r *http.Request) {
	resvs, err := s.reservations.List(r.Context())
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

// GetReservation handles GET /api/reservations/{number}.
func (s *Server) GetReservation(w http.ResponseWriter, r *http.Request) {
	resv, err := s.reservations.GetByNumber(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservationToResponse(resv))
}

// ConfirmReservation handles POST /api/reservations/{number}/confirm.
func (s *Server) ConfirmReservation(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.reservations.Confirm)
}

// CancelReservation handles POST /api/reservations/{number}/cancel.
func (s *Server) CancelReservation(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.reservations.Cancel)
}

// CompleteReservation handles POST /api/reservations/{number}/complete.
func (s *Server) CompleteReservation(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.reservations.Complete)
}

// RecordPayment handles POST /api/reservations/{number}/payment.
func (s *Server) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req RecordPaymentRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "malformed request body")
		return
	}
	amount, err := domain.ParseMoney(req.Amount)
	if err != nil {
		respondError(w, err)
		return
	}

	input := service.PaymentInput{
		Amount:               amount,
		Method:               domain.PaymentMethod(req.Method),
		TransactionReference: req.TransactionReference,
	}
	if req.PaymentDate != nil {
		input.PaymentDate = *req.PaymentDate
	}

	resv, err := s.reservations.RecordPayment(r.Context(), chi.URLParam(r, "number"), input)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservationToResponse(resv))
}

// transition runs one of the status-change operations keyed by the
// {number} path parameter and writes the updated reservation.
func (s *Server) transition(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, number string) (*domain.Reservation, error)) {
	resv, err := op(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservationToResponse(resv))
}

// reservationToResponse converts a domain.Reservation into its JSON shape.
// The customer's reservation history and the trip's reservation set are
// deliberately not nested again to keep the payload acyclic.
func reservationToResponse(resv *domain.Reservation) ReservationResponse {
	out := ReservationResponse{
		ID:          resv.ID,
		Number:      resv.Number,
		BookingDate: resv.BookingDate,
		Status:      string(resv.Status),
		PartySize:   resv.PartySize,
		TotalPrice:  resv.TotalPrice().String(),
		CanRefund:   resv.CanRefund(),
	}
	if c := resv.Customer(); c != nil {
		cr := customerToResponse(c)
		out.Customer = &cr
	}
	if t := resv.Trip(); t != nil {
		tr := tripToResponse(t)
		out.Trip = &tr
	}
	if p := resv.Payment(); p != nil {
		pr := paymentToResponse(p)
		out.Payment = &pr
	}
	return out
}

// paymentToResponse converts a domain.Payment into its JSON shape.
func paymentToResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                   p.ID,
		Amount:               p.Amount.String(),
		Method:               string(p.Method),
		TransactionReference: p.TransactionReference,
		PaymentDate:          p.PaymentDate,
	}
}
