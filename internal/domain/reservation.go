package domain

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// ReservationStatus is the reservation state machine's state set.
//
// Transitions: PENDING → CONFIRMED → COMPLETED, and PENDING or CONFIRMED →
// CANCELLED. CANCELLED and COMPLETED are terminal; no operation leaves them.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationCompleted ReservationStatus = "COMPLETED"
)

// Known reports whether s is one of the four reservation statuses.
func (s ReservationStatus) Known() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCancelled, ReservationCompleted:
		return true
	}
	return false
}

// Terminal reports whether s permits no further transitions.
func (s ReservationStatus) Terminal() bool {
	return s == ReservationCancelled || s == ReservationCompleted
}

// Reservation links one customer to one trip for a party of a given size.
// It is the join entity of the Customer↔Trip relationship, modeled as its
// own entity because it carries state beyond the association: a unique
// reservation number, a booking date, the status machine, and at most one
// payment. Reservations are never deleted, only transitioned to a terminal
// status.
type Reservation struct {
	ID          uuid.UUID
	Number      string // system-generated, unique, e.g. "RES-20260829143055123-417"
	BookingDate time.Time
	Status      ReservationStatus
	PartySize   int

	customer *Customer
	trip     *Trip
	payment  *Payment
}

// NewReservation books a trip for a customer. The reservation starts
// PENDING with a generated number and today's booking date, and is linked
// into both the customer's and the trip's collections.
// Returns ErrInvalidArgument for a nil customer or trip, or a party size
// below 1.
func NewReservation(customer *Customer, trip *Trip, partySize int) (*Reservation, error) {
	if customer == nil {
		return nil, fmt.Errorf("%w: customer is required", ErrInvalidArgument)
	}
	if trip == nil {
		return nil, fmt.Errorf("%w: trip is required", ErrInvalidArgument)
	}
	if partySize < 1 {
		return nil, fmt.Errorf("%w: party size must be at least 1", ErrInvalidArgument)
	}
	r := &Reservation{
		Number:      NewReservationNumber(),
		BookingDate: time.Now(),
		Status:      ReservationPending,
		PartySize:   partySize,
	}
	r.SetCustomer(customer)
	r.SetTrip(trip)
	return r, nil
}

// NewReservationNumber generates a reservation number from the current
// millisecond timestamp plus a 3-digit random suffix. The unique constraint
// on the reservations table is the hard guard against the residual
// same-millisecond collision window.
func NewReservationNumber() string {
	now := time.Now()
	return fmt.Sprintf("RES-%s%03d-%d",
		now.Format("20060102150405"), now.Nanosecond()/1e6, 100+rand.IntN(900))
}

// Customer returns the booking customer, or nil when detached.
func (r *Reservation) Customer() *Customer {
	return r.customer
}

// Trip returns the booked trip, or nil when detached.
func (r *Reservation) Trip() *Trip {
	return r.trip
}

// Payment returns the attached payment, or nil before confirmation.
func (r *Reservation) Payment() *Payment {
	return r.payment
}

// SetPartySize changes the party size. Returns ErrInvalidArgument below 1.
func (r *Reservation) SetPartySize(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: party size must be at least 1", ErrInvalidArgument)
	}
	r.PartySize = n
	return nil
}

// TotalPrice is the trip's final price times the party size. Derived on
// every call, never stored; zero when no trip is attached.
func (r *Reservation) TotalPrice() Money {
	if r.trip == nil {
		return 0
	}
	return r.trip.FinalPrice().MulInt(r.PartySize)
}

// CanRefund reports whether at least 10 days remain until departure.
func (r *Reservation) CanRefund() bool {
	if r.trip == nil {
		return false
	}
	return daysBetween(time.Now(), r.trip.DepartureDate) >= 10
}

// Confirm moves a pending reservation to CONFIRMED.
// Returns ErrInvalidState from any other status.
func (r *Reservation) Confirm() error {
	if r.Status != ReservationPending {
		return fmt.Errorf("%w: can only confirm a pending reservation, status is %s", ErrInvalidState, r.Status)
	}
	r.Status = ReservationConfirmed
	return nil
}

// RecordPayment attaches a payment to a pending reservation and confirms
// it. The payment must be valid and its amount must equal TotalPrice
// exactly; both are checked before anything is mutated.
func (r *Reservation) RecordPayment(p *Payment) error {
	if r.Status != ReservationPending {
		return fmt.Errorf("%w: can only pay a pending reservation, status is %s", ErrInvalidState, r.Status)
	}
	if p == nil || !p.IsValid() {
		return fmt.Errorf("%w: payment is not valid", ErrInvalidArgument)
	}
	if p.Amount != r.TotalPrice() {
		return fmt.Errorf("%w: payment amount %s does not match total price %s",
			ErrInvalidArgument, p.Amount, r.TotalPrice())
	}
	r.payment = p
	p.setReservation(r)
	r.Status = ReservationConfirmed
	return nil
}

// AttachPayment links an already-recorded payment without touching the
// status machine. Used when rebuilding a reservation from storage; new
// payments go through RecordPayment.
func (r *Reservation) AttachPayment(p *Payment) {
	if p == nil || r.payment == p {
		return
	}
	r.payment = p
	p.setReservation(r)
}

// Cancel moves a pending or confirmed reservation to CANCELLED.
// Returns ErrInvalidState from a terminal status.
func (r *Reservation) Cancel() error {
	if r.Status.Terminal() {
		return fmt.Errorf("%w: cannot cancel a %s reservation", ErrInvalidState, r.Status)
	}
	r.Status = ReservationCancelled
	return nil
}

// Complete moves a confirmed reservation to COMPLETED once the trip has
// departed. Returns ErrInvalidState when not confirmed or the trip's
// departure date is still in the future.
func (r *Reservation) Complete() error {
	if r.Status != ReservationConfirmed {
		return fmt.Errorf("%w: can only complete a confirmed reservation, status is %s", ErrInvalidState, r.Status)
	}
	if r.trip != nil && r.trip.DepartureDate.After(time.Now()) {
		return fmt.Errorf("%w: trip has not departed yet", ErrInvalidState)
	}
	r.Status = ReservationCompleted
	return nil
}

// SetCustomer re-links the reservation to a customer as one atomic step:
// it detaches from the prior customer's collection, then attaches to the
// new one. Passing nil detaches entirely.
func (r *Reservation) SetCustomer(c *Customer) {
	if r.customer == c {
		return
	}
	if r.customer != nil {
		r.customer.RemoveReservation(r)
	}
	r.customer = c
	if c != nil {
		c.AddReservation(r)
	}
}

// SetTrip re-links the reservation to a trip, symmetric to SetCustomer.
func (r *Reservation) SetTrip(t *Trip) {
	if r.trip == t {
		return
	}
	if r.trip != nil {
		r.trip.RemoveReservation(r)
	}
	r.trip = t
	if t != nil {
		t.AddReservation(r)
	}
}

// daysBetween counts whole calendar days from a to b, ignoring the time of
// day on both ends. Negative when b precedes a.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}
