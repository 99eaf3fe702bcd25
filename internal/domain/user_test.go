package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-agency/backend/internal/domain"
)

func TestDisplayName_Polymorphic(t *testing.T) {
	var users []domain.User = []domain.User{
		domain.NewCustomer("Anna", "Kowalska", "anna@example.com", "", domain.Address{}),
		domain.NewAdmin("admin", "admin123", "EMP-001", "Operations"),
	}

	assert.Equal(t, "Anna Kowalska", users[0].DisplayName())
	assert.Equal(t, "Admin: admin (Operations)", users[1].DisplayName())
	assert.Equal(t, domain.RoleCustomer, users[0].Role())
	assert.Equal(t, domain.RoleAdmin, users[1].Role())
}

func TestCustomerHasBookedTrip(t *testing.T) {
	customer := testCustomer()
	booked := futureCulturalTrip()
	other := futureCulturalTrip()

	r, err := domain.NewReservation(customer, booked, 2)
	require.NoError(t, err)

	assert.True(t, customer.HasBookedTrip(booked))
	assert.False(t, customer.HasBookedTrip(other))

	// A cancelled reservation no longer counts as a booking.
	require.NoError(t, r.Cancel())
	assert.False(t, customer.HasBookedTrip(booked))
}

func TestCustomerReservations_MostRecentFirst(t *testing.T) {
	customer := testCustomer()
	trip := futureCulturalTrip()

	first, err := domain.NewReservation(customer, trip, 1)
	require.NoError(t, err)
	second, err := domain.NewReservation(customer, trip, 2)
	require.NoError(t, err)

	got := customer.Reservations()

	require.Len(t, got, 2)
	assert.Equal(t, second, got[0])
	assert.Equal(t, first, got[1])
}

func TestCustomerRegistrationDate_DefaultsToNow(t *testing.T) {
	customer := domain.NewCustomer("Jan", "Nowak", "jan@example.com", "", domain.Address{})
	assert.False(t, customer.RegistrationDate.IsZero())
}

// ---- admin capability methods ----------------------------------------------

func TestAdminTripOperations_RejectNil(t *testing.T) {
	admin := domain.NewAdmin("admin", "pw", "EMP-001", "Operations")

	assert.ErrorIs(t, admin.CreateTrip(nil), domain.ErrInvalidArgument)
	assert.ErrorIs(t, admin.UpdateTrip(nil), domain.ErrInvalidArgument)
	assert.NoError(t, admin.CreateTrip(futureCulturalTrip()))
}

func TestAdminUpdateReservationStatus(t *testing.T) {
	admin := domain.NewAdmin("admin", "pw", "EMP-001", "Operations")
	r, err := domain.NewReservation(testCustomer(), futureCulturalTrip(), 1)
	require.NoError(t, err)

	// The admin override can move a reservation straight to COMPLETED.
	require.NoError(t, admin.UpdateReservationStatus(r, domain.ReservationCompleted))
	assert.Equal(t, domain.ReservationCompleted, r.Status)

	assert.ErrorIs(t, admin.UpdateReservationStatus(nil, domain.ReservationPending), domain.ErrInvalidArgument)
	assert.ErrorIs(t, admin.UpdateReservationStatus(r, "SHIPPED"), domain.ErrInvalidArgument)
}

func TestAdminRecordPayment_Delegates(t *testing.T) {
	admin := domain.NewAdmin("admin", "pw", "EMP-001", "Operations")
	r, err := domain.NewReservation(testCustomer(), futureCulturalTrip(), 1)
	require.NoError(t, err)
	p := validPayment(t, r.TotalPrice())

	require.NoError(t, admin.RecordPayment(r, p))
	assert.Equal(t, domain.ReservationConfirmed, r.Status)

	assert.ErrorIs(t, admin.RecordPayment(nil, p), domain.ErrInvalidArgument)
	assert.ErrorIs(t, admin.RecordPayment(r, nil), domain.ErrInvalidArgument)
}
