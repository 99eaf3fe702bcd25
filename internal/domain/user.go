package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UserRole tags which side of the party hierarchy a user belongs to.
type UserRole string

const (
	RoleCustomer UserRole = "CUSTOMER"
	RoleAdmin    UserRole = "ADMIN"
)

// User is the closed party hierarchy: every user is exactly one of
// *Customer or *Admin. The unexported method keeps the set closed to this
// package.
type User interface {
	// DisplayName is the polymorphic identity rule of the variant:
	// "First Last" for customers, "Admin: username (department)" for admins.
	DisplayName() string

	// Role returns the variant tag.
	Role() UserRole

	isUser()
}

// Customer is a booking participant. The username is the email address;
// Phone is optional and empty when not provided.
type Customer struct {
	ID               uuid.UUID
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	Address          Address
	RegistrationDate time.Time

	reservations []*Reservation
}

// NewCustomer registers a customer; construction implies registration, so
// RegistrationDate defaults to the current date. Pass an empty phone when
// the customer did not provide one.
func NewCustomer(firstName, lastName, email, phone string, address Address) *Customer {
	return &Customer{
		FirstName:        firstName,
		LastName:         lastName,
		Email:            email,
		Phone:            phone,
		Address:          address,
		RegistrationDate: time.Now(),
	}
}

func (c *Customer) isUser() {}

// Role returns RoleCustomer.
func (c *Customer) Role() UserRole { return RoleCustomer }

// Username returns the customer's login identity, which is always the
// e-mail address.
func (c *Customer) Username() string {
	return c.Email
}

// FullName concatenates first and last name.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// DisplayName for a customer is the full name.
func (c *Customer) DisplayName() string {
	return c.FullName()
}

// HasBookedTrip reports whether any of the customer's non-cancelled
// reservations references the given trip.
func (c *Customer) HasBookedTrip(t *Trip) bool {
	for _, r := range c.reservations {
		if r.Status != ReservationCancelled && r.Trip() == t {
			return true
		}
	}
	return false
}

// Reservations returns the customer's reservations, most recent first.
// The returned slice is a copy.
func (c *Customer) Reservations() []*Reservation {
	out := make([]*Reservation, len(c.reservations))
	for i, r := range c.reservations {
		out[len(c.reservations)-1-i] = r
	}
	return out
}

// AddReservation attaches a reservation to this customer and mirrors the
// link on the reservation side. No-op if already attached.
func (c *Customer) AddReservation(r *Reservation) {
	for _, existing := range c.reservations {
		if existing == r {
			return
		}
	}
	c.reservations = append(c.reservations, r)
	if r.Customer() != c {
		r.SetCustomer(c)
	}
}

// RemoveReservation detaches a reservation from this customer and clears
// the reservation's customer reference if it still points here.
func (c *Customer) RemoveReservation(r *Reservation) {
	for i, existing := range c.reservations {
		if existing == r {
			c.reservations = append(c.reservations[:i], c.reservations[i+1:]...)
			if r.Customer() == c {
				r.SetCustomer(nil)
			}
			return
		}
	}
}

// Admin is a capability actor, not a booking participant. Its management
// methods validate arguments and delegate to the target entity's own
// mutators; persistence is the caller's concern.
type Admin struct {
	ID         uuid.UUID
	Username   string
	Password   string
	EmployeeID string
	Department string
}

// NewAdmin constructs an administrator.
func NewAdmin(username, password, employeeID, department string) *Admin {
	return &Admin{
		Username:   username,
		Password:   password,
		EmployeeID: employeeID,
		Department: department,
	}
}

func (a *Admin) isUser() {}

// Role returns RoleAdmin.
func (a *Admin) Role() UserRole { return RoleAdmin }

// DisplayName for an admin includes the username and department.
func (a *Admin) DisplayName() string {
	return fmt.Sprintf("Admin: %s (%s)", a.Username, a.Department)
}

// CreateTrip validates a trip for creation.
func (a *Admin) CreateTrip(t *Trip) error {
	if t == nil {
		return fmt.Errorf("%w: trip is required", ErrInvalidArgument)
	}
	return nil
}

// UpdateTrip validates a trip for update.
func (a *Admin) UpdateTrip(t *Trip) error {
	if t == nil {
		return fmt.Errorf("%w: trip is required", ErrInvalidArgument)
	}
	return nil
}

// DeleteTrip validates a trip ID for deletion.
func (a *Admin) DeleteTrip(tripID uuid.UUID) error {
	if tripID == uuid.Nil {
		return fmt.Errorf("%w: trip id is required", ErrInvalidArgument)
	}
	return nil
}

// UpdateReservationStatus sets a reservation's status directly.
// This is an administrative override: it bypasses the transition rules that
// Confirm/Cancel/Complete enforce.
func (a *Admin) UpdateReservationStatus(r *Reservation, status ReservationStatus) error {
	if r == nil {
		return fmt.Errorf("%w: reservation is required", ErrInvalidArgument)
	}
	if !status.Known() {
		return fmt.Errorf("%w: unknown reservation status %q", ErrInvalidArgument, status)
	}
	r.Status = status
	return nil
}

// RecordPayment records a payment against a reservation on the customer's
// behalf, going through the reservation's own transition logic.
func (a *Admin) RecordPayment(r *Reservation, p *Payment) error {
	if r == nil || p == nil {
		return fmt.Errorf("%w: reservation and payment are required", ErrInvalidArgument)
	}
	return r.RecordPayment(p)
}
