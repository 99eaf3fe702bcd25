package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-agency/backend/internal/domain"
)

// CustomerRepo defines the persistence operations for Customers.
// The embedded Address value object is flattened into the customers table.
type CustomerRepo interface {
	// Create inserts a new customer and assigns the DB-generated ID.
	Create(ctx context.Context, c *domain.Customer) error

	// GetByID retrieves a customer by primary key.
	// Returns domain.ErrNotFound if no customer with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)

	// GetByEmail retrieves a customer by email, which doubles as the
	// unique username.
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)

	// List returns all customers ordered by registration date descending.
	List(ctx context.Context) ([]*domain.Customer, error)
}

type pgCustomerRepo struct {
	db db
}

// NewCustomerRepo constructs a CustomerRepo backed by the provided db connection.
func NewCustomerRepo(db db) CustomerRepo {
	return &pgCustomerRepo{db: db}
}

const customerColumns = `
	c.id, c.first_name, c.last_name, c.email, c.phone,
	c.street, c.city, c.postal_code, c.country, c.registration_date`

func (r *pgCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	const q = `
		INSERT INTO customers (first_name, last_name, email, phone,
		                       street, city, postal_code, country, registration_date)
		VALUES (@first_name, @last_name, @email, @phone,
		        @street, @city, @postal_code, @country, @registration_date)
		RETURNING id`

	args := pgx.NamedArgs{
		"first_name":        c.FirstName,
		"last_name":         c.LastName,
		"email":             c.Email,
		"phone":             c.Phone,
		"street":            c.Address.Street,
		"city":              c.Address.City,
		"postal_code":       c.Address.PostalCode,
		"country":           c.Address.Country,
		"registration_date": c.RegistrationDate,
	}

	var id pgtype.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&id); err != nil {
		return fmt.Errorf("repo.CustomerRepo.Create: %w", err)
	}
	c.ID = uuid.UUID(id.Bytes)
	return nil
}

func (r *pgCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	q := `
		SELECT ` + customerColumns + `
		FROM customers c
		WHERE c.id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	c, err := scanCustomer(row)
	if err != nil {
		return nil, fmt.Errorf("repo.CustomerRepo.GetByID: %w", err)
	}
	return c, nil
}

func (r *pgCustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	q := `
		SELECT ` + customerColumns + `
		FROM customers c
		WHERE c.email = @email`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email})
	c, err := scanCustomer(row)
	if err != nil {
		return nil, fmt.Errorf("repo.CustomerRepo.GetByEmail: %w", err)
	}
	return c, nil
}

func (r *pgCustomerRepo) List(ctx context.Context) ([]*domain.Customer, error) {
	q := `
		SELECT ` + customerColumns + `
		FROM customers c
		ORDER BY c.registration_date DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.CustomerRepo.List: %w", err)
	}
	defer rows.Close()

	var out []*domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CustomerRepo.List: scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CustomerRepo.List: rows: %w", err)
	}

	return out, nil
}

// scanCustomer maps a row of customerColumns into a domain.Customer.
func scanCustomer(s scanner) (*domain.Customer, error) {
	var (
		c   domain.Customer
		id  pgtype.UUID
		reg pgtype.Date
	)
	err := s.Scan(&id, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.Address.Street, &c.Address.City, &c.Address.PostalCode, &c.Address.Country, &reg)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	c.ID = uuid.UUID(id.Bytes)
	c.RegistrationDate = reg.Time
	return &c, nil
}
