package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is the closed set of settlement methods. A payment carries
// exactly one — the exclusive choice is enforced by the field being a
// single enumeration value rather than a set of flags.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// Known reports whether m is one of the supported payment methods.
func (m PaymentMethod) Known() bool {
	return m == PaymentCash || m == PaymentBankTransfer
}

// Payment settles exactly one reservation. It is created at the moment of
// confirmation and immutable afterwards except for the method field, which
// SetMethod replaces wholesale.
type Payment struct {
	ID                   uuid.UUID
	Amount               Money
	Method               PaymentMethod
	PaymentDate          time.Time
	TransactionReference string

	reservation *Reservation
}

// NewPayment constructs a payment. The method is mandatory: an empty or
// unknown method fails with ErrInvalidArgument, which enforces the
// exclusive-choice constraint at construction time.
func NewPayment(amount Money, date time.Time, method PaymentMethod, transactionRef string) (*Payment, error) {
	if !method.Known() {
		return nil, fmt.Errorf("%w: payment method is required", ErrInvalidArgument)
	}
	return &Payment{
		Amount:               amount,
		Method:               method,
		PaymentDate:          date,
		TransactionReference: transactionRef,
	}, nil
}

// Reservation returns the reservation this payment settles, or nil until
// the payment is recorded against one.
func (p *Payment) Reservation() *Reservation {
	return p.reservation
}

// setReservation is called by Reservation.RecordPayment to establish the
// 1:1 back-link.
func (p *Payment) setReservation(r *Reservation) {
	p.reservation = r
}

// IsValid reports whether the payment can settle a reservation: positive
// amount, a method, and a payment date.
func (p *Payment) IsValid() bool {
	return p.Amount.IsPositive() && p.Method.Known() && !p.PaymentDate.IsZero()
}

// Validate returns ErrInvalidState when IsValid is false.
func (p *Payment) Validate() error {
	if !p.IsValid() {
		return fmt.Errorf("%w: payment is not valid", ErrInvalidState)
	}
	return nil
}

// SetMethod replaces the payment method with another single method.
// Returns ErrInvalidArgument for an empty or unknown method.
func (p *Payment) SetMethod(method PaymentMethod) error {
	if !method.Known() {
		return fmt.Errorf("%w: payment method is required", ErrInvalidArgument)
	}
	p.Method = method
	return nil
}
