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

// PaymentRepo defines the persistence operations for Payments.
// A payment row exists only once per reservation; the unique constraint on
// reservation_id enforces the 1:1 link at the storage level.
type PaymentRepo interface {
	// Create inserts the payment attached to its reservation and assigns
	// the DB-generated ID. The reservation back-link must be set, which
	// Reservation.RecordPayment does.
	Create(ctx context.Context, p *domain.Payment) error

	// GetByReservation retrieves the payment settling a reservation.
	// Returns domain.ErrNotFound when the reservation has no payment.
	GetByReservation(ctx context.Context, reservationID uuid.UUID) (*domain.Payment, error)
}

type pgPaymentRepo struct {
	db db
}

// NewPaymentRepo constructs a PaymentRepo backed by the provided db connection.
func NewPaymentRepo(db db) PaymentRepo {
	return &pgPaymentRepo{db: db}
}

func (r *pgPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	if p.Reservation() == nil {
		return fmt.Errorf("repo.PaymentRepo.Create: %w: reservation link is required",
			domain.ErrInvalidArgument)
	}

	const q = `
		INSERT INTO payments (reservation_id, amount_cents, method, payment_date, transaction_reference)
		VALUES (@reservation_id, @amount_cents, @method, @payment_date, @transaction_reference)
		RETURNING id`

	args := pgx.NamedArgs{
		"reservation_id":        p.Reservation().ID,
		"amount_cents":          p.Amount.Cents(),
		"method":                string(p.Method),
		"payment_date":          p.PaymentDate,
		"transaction_reference": p.TransactionReference,
	}

	var id pgtype.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&id); err != nil {
		return fmt.Errorf("repo.PaymentRepo.Create: %w", err)
	}
	p.ID = uuid.UUID(id.Bytes)
	return nil
}

func (r *pgPaymentRepo) GetByReservation(ctx context.Context, reservationID uuid.UUID) (*domain.Payment, error) {
	const q = `
		SELECT id, amount_cents, method, payment_date, transaction_reference
		FROM payments
		WHERE reservation_id = @reservation_id`

	var (
		p      domain.Payment
		id     pgtype.UUID
		cents  int64
		method string
		date   pgtype.Date
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"reservation_id": reservationID}).
		Scan(&id, &cents, &method, &date, &p.TransactionReference)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("repo.PaymentRepo.GetByReservation: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.PaymentRepo.GetByReservation: %w", err)
	}

	p.ID = uuid.UUID(id.Bytes)
	p.Amount = domain.MoneyFromCents(cents)
	p.Method = domain.PaymentMethod(method)
	p.PaymentDate = date.Time
	return &p, nil
}
