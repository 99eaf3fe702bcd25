package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repos bundles one instance of every repository over a shared connection
// source. NewRepos over a pool gives the plain read path; the unit of work
// builds a tx-scoped bundle for multi-statement business operations.
type Repos struct {
	Destinations DestinationRepo
	Trips        TripRepo
	Customers    CustomerRepo
	Admins       AdminRepo
	Reservations ReservationRepo
	Payments     PaymentRepo
	Flights      FlightRepo
}

// NewRepos constructs every repository over the same db connection.
func NewRepos(db db) Repos {
	return Repos{
		Destinations: NewDestinationRepo(db),
		Trips:        NewTripRepo(db),
		Customers:    NewCustomerRepo(db),
		Admins:       NewAdminRepo(db),
		Reservations: NewReservationRepo(db),
		Payments:     NewPaymentRepo(db),
		Flights:      NewFlightRepo(db),
	}
}

// UnitOfWork runs a function against a tx-scoped Repos bundle inside a
// single database transaction. Booking operations use it so that the
// availability recomputation, the status check, and the write commit or
// roll back together — two concurrent bookings against the same trip
// serialize on the row lock taken by TripRepo.LockForBooking.
type UnitOfWork interface {
	// Run begins a transaction, calls fn with repos bound to it, and
	// commits when fn returns nil. Any error from fn rolls back and is
	// returned unchanged, so domain sentinels survive the boundary.
	Run(ctx context.Context, fn func(Repos) error) error
}

type pgUnitOfWork struct {
	pool *pgxpool.Pool
}

// NewUnitOfWork constructs a UnitOfWork over a pgx connection pool.
func NewUnitOfWork(pool *pgxpool.Pool) UnitOfWork {
	return &pgUnitOfWork{pool: pool}
}

func (u *pgUnitOfWork) Run(ctx context.Context, fn func(Repos) error) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.UnitOfWork.Run: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.UnitOfWork.Run: commit: %w", err)
	}
	return nil
}
