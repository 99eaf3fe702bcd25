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

// ReservationRepo defines the persistence operations for Reservations.
//
// Reads hydrate the full reservation graph — customer, trip, and the trip's
// destination — because every consumer needs the derived values (total
// price, trip name, customer name) that only a linked trip and customer can
// produce. The payment is not hydrated; fetch it through PaymentRepo when
// needed.
type ReservationRepo interface {
	// Create inserts a new reservation and assigns the DB-generated ID.
	// The customer and trip links must be established before calling.
	Create(ctx context.Context, r *domain.Reservation) error

	// GetByID retrieves a reservation by primary key.
	// Returns domain.ErrNotFound if no reservation with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)

	// GetByNumber retrieves a reservation by its unique reservation number.
	GetByNumber(ctx context.Context, number string) (*domain.Reservation, error)

	// List returns all reservations, most recently booked first.
	List(ctx context.Context) ([]*domain.Reservation, error)

	// ListByCustomer returns one customer's reservations, most recent first.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.Reservation, error)

	// ListByTrip returns all reservations referencing one trip, most
	// recent first. The booking unit of work uses this to recompute
	// availability from the live reservation set.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]*domain.Reservation, error)

	// UpdateStatus persists a status transition performed by the domain.
	// Returns domain.ErrNotFound if the reservation does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReservationStatus) error
}

type pgReservationRepo struct {
	db db
}

// NewReservationRepo constructs a ReservationRepo backed by the provided db connection.
func NewReservationRepo(db db) ReservationRepo {
	return &pgReservationRepo{db: db}
}

// reservationColumns joins the reservation row with its customer and trip
// (and the trip's destination). Requires aliases r, c, t, d.
const reservationColumns = `
	r.id, r.reservation_number, r.booking_date, r.status, r.party_size,` +
	customerColumns + `,` + tripColumns

const reservationFrom = `
	FROM reservations r
	JOIN customers c ON c.id = r.customer_id
	JOIN trips t ON t.id = r.trip_id
	JOIN destinations d ON d.id = t.destination_id`

func (r *pgReservationRepo) Create(ctx context.Context, resv *domain.Reservation) error {
	if resv.Customer() == nil || resv.Trip() == nil {
		return fmt.Errorf("repo.ReservationRepo.Create: %w: customer and trip links are required",
			domain.ErrInvalidArgument)
	}

	const q = `
		INSERT INTO reservations (reservation_number, booking_date, status, party_size,
		                          customer_id, trip_id)
		VALUES (@reservation_number, @booking_date, @status, @party_size,
		        @customer_id, @trip_id)
		RETURNING id`

	args := pgx.NamedArgs{
		"reservation_number": resv.Number,
		"booking_date":       resv.BookingDate,
		"status":             string(resv.Status),
		"party_size":         resv.PartySize,
		"customer_id":        resv.Customer().ID,
		"trip_id":            resv.Trip().ID,
	}

	var id pgtype.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&id); err != nil {
		return fmt.Errorf("repo.ReservationRepo.Create: %w", err)
	}
	resv.ID = uuid.UUID(id.Bytes)
	return nil
}

func (r *pgReservationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	q := `SELECT ` + reservationColumns + reservationFrom + `
		WHERE r.id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	resv, err := scanReservation(row)
	if err != nil {
		return nil, fmt.Errorf("repo.ReservationRepo.GetByID: %w", err)
	}
	return resv, nil
}

func (r *pgReservationRepo) GetByNumber(ctx context.Context, number string) (*domain.Reservation, error) {
	q := `SELECT ` + reservationColumns + reservationFrom + `
		WHERE r.reservation_number = @number`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"number": number})
	resv, err := scanReservation(row)
	if err != nil {
		return nil, fmt.Errorf("repo.ReservationRepo.GetByNumber: %w", err)
	}
	return resv, nil
}

func (r *pgReservationRepo) List(ctx context.Context) ([]*domain.Reservation, error) {
	q := `SELECT ` + reservationColumns + reservationFrom + `
		ORDER BY r.booking_date DESC, r.reservation_number DESC`

	return r.list(ctx, q, nil, "List")
}

func (r *pgReservationRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.Reservation, error) {
	q := `SELECT ` + reservationColumns + reservationFrom + `
		WHERE r.customer_id = @customer_id
		ORDER BY r.booking_date DESC, r.reservation_number DESC`

	return r.list(ctx, q, pgx.NamedArgs{"customer_id": customerID}, "ListByCustomer")
}

func (r *pgReservationRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]*domain.Reservation, error) {
	q := `SELECT ` + reservationColumns + reservationFrom + `
		WHERE r.trip_id = @trip_id
		ORDER BY r.booking_date DESC, r.reservation_number DESC`

	return r.list(ctx, q, pgx.NamedArgs{"trip_id": tripID}, "ListByTrip")
}

func (r *pgReservationRepo) list(ctx context.Context, q string, args pgx.NamedArgs, op string) ([]*domain.Reservation, error) {
	var rows pgx.Rows
	var err error
	if args == nil {
		rows, err = r.db.Query(ctx, q)
	} else {
		rows, err = r.db.Query(ctx, q, args)
	}
	if err != nil {
		return nil, fmt.Errorf("repo.ReservationRepo.%s: %w", op, err)
	}
	defer rows.Close()

	var out []*domain.Reservation
	for rows.Next() {
		resv, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ReservationRepo.%s: scan: %w", op, err)
		}
		out = append(out, resv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ReservationRepo.%s: rows: %w", op, err)
	}

	return out, nil
}

func (r *pgReservationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReservationStatus) error {
	const q = `UPDATE reservations SET status = @status WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "status": string(status)})
	if err != nil {
		return fmt.Errorf("repo.ReservationRepo.UpdateStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ReservationRepo.UpdateStatus: %w", domain.ErrNotFound)
	}
	return nil
}

// scanReservation maps a row of reservationColumns into a reservation with
// its customer and trip links established, so derived values (TotalPrice,
// AvailableSpots contributions) work immediately.
func scanReservation(s scanner) (*domain.Reservation, error) {
	var (
		resv    domain.Reservation
		id      pgtype.UUID
		booked  pgtype.Date
		status  string
		cust    domain.Customer
		custID  pgtype.UUID
		custReg pgtype.Date

		t        domain.Trip
		dest     domain.Destination
		tripID   pgtype.UUID
		tripType string
		dep      pgtype.Date
		ret      pgtype.Date
		cents    int64
		guided   pgtype.Bool
		diff     pgtype.Text
		equip    pgtype.Bool
		resort   pgtype.Text
		allInc   pgtype.Bool
		destID   pgtype.UUID
	)

	err := s.Scan(
		&id, &resv.Number, &booked, &status, &resv.PartySize,
		&custID, &cust.FirstName, &cust.LastName, &cust.Email, &cust.Phone,
		&cust.Address.Street, &cust.Address.City, &cust.Address.PostalCode, &cust.Address.Country, &custReg,
		&tripID, &t.Code, &tripType, &t.Name, &t.Description,
		&dep, &ret, &cents, &t.MaxParticipants,
		&guided, &diff, &equip,
		&resort, &allInc,
		&destID, &dest.Name, &dest.Country, &dest.Description, &dest.Climate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	resv.ID = uuid.UUID(id.Bytes)
	resv.BookingDate = booked.Time
	resv.Status = domain.ReservationStatus(status)

	cust.ID = uuid.UUID(custID.Bytes)
	cust.RegistrationDate = custReg.Time

	t.ID = uuid.UUID(tripID.Bytes)
	t.DepartureDate = dep.Time
	t.ReturnDate = ret.Time
	t.BasePrice = domain.MoneyFromCents(cents)
	t.Details, err = tripDetailsFrom(tripType, guided, diff, equip, resort, allInc)
	if err != nil {
		return nil, err
	}
	dest.ID = uuid.UUID(destID.Bytes)
	t.SetDestination(&dest)

	resv.SetCustomer(&cust)
	resv.SetTrip(&t)

	return &resv, nil
}
