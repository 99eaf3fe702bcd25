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

// AdminRepo defines the persistence operations for Admins.
type AdminRepo interface {
	// Create inserts a new admin and assigns the DB-generated ID.
	Create(ctx context.Context, a *domain.Admin) error

	// GetByID retrieves an admin by primary key.
	// Returns domain.ErrNotFound if no admin with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error)

	// GetByEmployeeID retrieves an admin by their unique employee identifier.
	GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Admin, error)
}

type pgAdminRepo struct {
	db db
}

// NewAdminRepo constructs an AdminRepo backed by the provided db connection.
func NewAdminRepo(db db) AdminRepo {
	return &pgAdminRepo{db: db}
}

func (r *pgAdminRepo) Create(ctx context.Context, a *domain.Admin) error {
	const q = `
		INSERT INTO admins (username, password, employee_id, department)
		VALUES (@username, @password, @employee_id, @department)
		RETURNING id`

	args := pgx.NamedArgs{
		"username":    a.Username,
		"password":    a.Password,
		"employee_id": a.EmployeeID,
		"department":  a.Department,
	}

	var id pgtype.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&id); err != nil {
		return fmt.Errorf("repo.AdminRepo.Create: %w", err)
	}
	a.ID = uuid.UUID(id.Bytes)
	return nil
}

func (r *pgAdminRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	const q = `
		SELECT id, username, password, employee_id, department
		FROM admins
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	a, err := scanAdmin(row)
	if err != nil {
		return nil, fmt.Errorf("repo.AdminRepo.GetByID: %w", err)
	}
	return a, nil
}

func (r *pgAdminRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Admin, error) {
	const q = `
		SELECT id, username, password, employee_id, department
		FROM admins
		WHERE employee_id = @employee_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"employee_id": employeeID})
	a, err := scanAdmin(row)
	if err != nil {
		return nil, fmt.Errorf("repo.AdminRepo.GetByEmployeeID: %w", err)
	}
	return a, nil
}

func scanAdmin(s scanner) (*domain.Admin, error) {
	var (
		a  domain.Admin
		id pgtype.UUID
	)
	err := s.Scan(&id, &a.Username, &a.Password, &a.EmployeeID, &a.Department)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	a.ID = uuid.UUID(id.Bytes)
	return &a, nil
}
