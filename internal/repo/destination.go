// Package repo contains all database access for the travel agency API.
// Each aggregate has its own file with an interface and a Postgres
// implementation. No business logic lives here — only SQL and type mapping;
// derived values (final price, available spots, total price) are never
// stored and therefore never appear in any query.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-agency/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly lets the unit of
// work run every repo over one transaction, and lets integration tests pass a
// transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// DestinationRepo defines the persistence operations for Destinations.
type DestinationRepo interface {
	// Create inserts a new destination and assigns its DB-generated ID.
	Create(ctx context.Context, d *domain.Destination) error

	// GetByID retrieves a destination by primary key.
	// Returns domain.ErrNotFound if no destination with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error)

	// List returns all destinations ordered by name.
	List(ctx context.Context) ([]*domain.Destination, error)
}

type pgDestinationRepo struct {
	db db
}

// NewDestinationRepo constructs a DestinationRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx for
// rollback isolation.
func NewDestinationRepo(db db) DestinationRepo {
	return &pgDestinationRepo{db: db}
}

func (r *pgDestinationRepo) Create(ctx context.Context, d *domain.Destination) error {
	const q = `
		INSERT INTO destinations (name, country, description, climate)
		VALUES (@name, @country, @description, @climate)
		RETURNING id`

	args := pgx.NamedArgs{
		"name":        d.Name,
		"country":     d.Country,
		"description": d.Description,
		"climate":     d.Climate,
	}

	var id pgtype.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&id); err != nil {
		return fmt.Errorf("repo.DestinationRepo.Create: %w", err)
	}
	d.ID = uuid.UUID(id.Bytes)
	return nil
}

func (r *pgDestinationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	const q = `
		SELECT id, name, country, description, climate
		FROM destinations
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	d, err := scanDestination(row)
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.GetByID: %w", err)
	}
	return d, nil
}

func (r *pgDestinationRepo) List(ctx context.Context) ([]*domain.Destination, error) {
	const q = `
		SELECT id, name, country, description, climate
		FROM destinations
		ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.List: %w", err)
	}
	defer rows.Close()

	var out []*domain.Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DestinationRepo.List: scan: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.List: rows: %w", err)
	}

	return out, nil
}

// scanDestination maps a single row into a domain.Destination.
func scanDestination(s scanner) (*domain.Destination, error) {
	var (
		d  domain.Destination
		id pgtype.UUID
	)
	err := s.Scan(&id, &d.Name, &d.Country, &d.Description, &d.Climate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	d.ID = uuid.UUID(id.Bytes)
	return &d, nil
}
