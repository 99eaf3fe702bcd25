package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travel-agency/backend/internal/domain"
	"github.com/pkordes/travel-agency/backend/internal/repo"
)

// CustomerInput carries the fields needed to register a customer.
type CustomerInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Address     domain.Address
}

// CustomerService implements business logic for Customer operations.
type CustomerService struct {
	customers    repo.CustomerRepo
	reservations repo.ReservationRepo
}

// NewCustomerService constructs a CustomerService backed by the provided
// repos.
func NewCustomerService(customers repo.CustomerRepo, reservations repo.ReservationRepo) *CustomerService {
	return &CustomerService{customers: customers, reservations: reservations}
}

// Register validates and persists a new customer. The customer's username
// is their e-mail address.
func (s *CustomerService) Register(ctx context.Context, input CustomerInput) (*domain.Customer, error) {
	if strings.TrimSpace(input.FirstName) == "" {
		return nil, fmt.Errorf("%w: first name is required", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(input.LastName) == "" {
		return nil, fmt.Errorf("%w: last name is required", domain.ErrInvalidArgument)
	}
	email := strings.TrimSpace(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid e-mail address is required", domain.ErrInvalidArgument)
	}

	customer := domain.NewCustomer(input.FirstName, input.LastName, email, input.PhoneNumber, input.Address)
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("service.CustomerService.Register: %w", err)
	}
	return customer, nil
}

// GetByID returns a customer with their reservation history attached.
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.CustomerService.GetByID: %w", err)
	}
	if err := s.attachReservations(ctx, customer); err != nil {
		return nil, fmt.Errorf("service.CustomerService.GetByID: %w", err)
	}
	return customer, nil
}

// GetByEmail returns a customer by their e-mail address, with their
// reservation history attached.
func (s *CustomerService) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	customer, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("service.CustomerService.GetByEmail: %w", err)
	}
	if err := s.attachReservations(ctx, customer); err != nil {
		return nil, fmt.Errorf("service.CustomerService.GetByEmail: %w", err)
	}
	return customer, nil
}

// List returns all customers, most recently registered first. Always
// returns a non-nil slice so callers can safely range over it.
func (s *CustomerService) List(ctx context.Context) ([]*domain.Customer, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CustomerService.List: %w", err)
	}
	if customers == nil {
		return []*domain.Customer{}, nil
	}
	return customers, nil
}

func (s *CustomerService) attachReservations(ctx context.Context, customer *domain.Customer) error {
	resvs, err := s.reservations.ListByCustomer(ctx, customer.ID)
	if err != nil {
		return err
	}
	for _, r := range resvs {
		customer.AddReservation(r)
	}
	return nil
}
