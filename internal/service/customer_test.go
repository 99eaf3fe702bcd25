package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-agency/backend/internal/domain"
	"github.com/pkordes/travel-agency/backend/internal/service"
)

func validCustomerInput() service.CustomerInput {
	return service.CustomerInput{
		FirstName:   "Maria",
		LastName:    "Garcia",
		Email:       "maria.garcia@example.com",
		PhoneNumber: "+34-600-123456",
		Address: domain.Address{
			Street: "Calle Mayor 12", City: "Madrid", PostalCode: "28013", Country: "Spain",
		},
	}
}

func TestCustomerServiceRegister(t *testing.T) {
	var created *domain.Customer
	customers := &mockCustomerRepo{
		createFn: func(_ context.Context, c *domain.Customer) error {
			created = c
			c.ID = uuid.New()
			return nil
		},
	}
	svc := service.NewCustomerService(customers, nil)

	customer, err := svc.Register(context.Background(), validCustomerInput())
	require.NoError(t, err)
	require.Same(t, created, customer)

	assert.Equal(t, "Maria Garcia", customer.DisplayName())
	assert.Equal(t, "maria.garcia@example.com", customer.Username())
	assert.Equal(t, "Calle Mayor 12, Madrid 28013, Spain", customer.Address.FullAddress())
	assert.WithinDuration(t, time.Now(), customer.RegistrationDate, time.Minute)
}

func TestCustomerServiceRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*service.CustomerInput)
	}{
		{"blank first name", func(in *service.CustomerInput) { in.FirstName = " " }},
		{"blank last name", func(in *service.CustomerInput) { in.LastName = "" }},
		{"blank email", func(in *service.CustomerInput) { in.Email = "" }},
		{"email without at sign", func(in *service.CustomerInput) { in.Email = "maria.example.com" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := service.NewCustomerService(&mockCustomerRepo{}, nil)

			input := validCustomerInput()
			tc.mutate(&input)

			_, err := svc.Register(context.Background(), input)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}
}

func TestCustomerServiceGetByIDAttachesReservations(t *testing.T) {
	customer := testCustomer()
	resv, err := domain.NewReservation(testCustomer(), futureTrip(10), 2)
	require.NoError(t, err)

	customers := &mockCustomerRepo{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*domain.Customer, error) {
			require.Equal(t, customer.ID, id)
			return customer, nil
		},
	}
	resvs := &mockReservationRepo{
		listByCustomerFn: func(_ context.Context, _ uuid.UUID) ([]*domain.Reservation, error) {
			return []*domain.Reservation{resv}, nil
		},
	}
	svc := service.NewCustomerService(customers, resvs)

	got, err := svc.GetByID(context.Background(), customer.ID)
	require.NoError(t, err)
	require.Len(t, got.Reservations(), 1)
	assert.Same(t, got, resv.Customer())
	assert.True(t, got.HasBookedTrip(resv.Trip()))
}

func TestCustomerServiceListEmpty(t *testing.T) {
	customers := &mockCustomerRepo{
		listFn: func(_ context.Context) ([]*domain.Customer, error) { return nil, nil },
	}
	svc := service.NewCustomerService(customers, nil)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
