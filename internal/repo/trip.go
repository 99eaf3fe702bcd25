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

// TripRepo defines the persistence operations for Trips.
// Every read hydrates the trip's destination and, for cultural trips, its
// historical sites; reservations are loaded separately through
// ReservationRepo and attached by the service layer, so availability is
// always derived from the live reservation set.
type TripRepo interface {
	// Create inserts a new trip (and its historical sites for cultural
	// trips) and assigns the DB-generated ID.
	Create(ctx context.Context, t *domain.Trip) error

	// GetByID retrieves a trip by primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error)

	// GetByCode retrieves a trip by its unique trip code.
	GetByCode(ctx context.Context, code string) (*domain.Trip, error)

	// List returns all trips ordered by departure date ascending.
	List(ctx context.Context) ([]*domain.Trip, error)

	// ListByDestination returns the trips located at one destination.
	ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]*domain.Trip, error)

	// Update overwrites the mutable fields of an existing trip, replacing
	// the historical-site list for cultural trips.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, t *domain.Trip) error

	// Delete removes a trip by ID. Returns domain.ErrNotFound if it does
	// not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// LockForBooking takes a row lock on the trip inside the current
	// transaction. The booking unit of work calls this first so that the
	// availability check and the reservation insert cannot interleave with
	// a concurrent booking against the same trip.
	// Returns domain.ErrNotFound if the trip does not exist.
	LockForBooking(ctx context.Context, id uuid.UUID) error
}

type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// tripColumns is the shared SELECT list for trip queries; scanTrip must be
// kept in sync with it. Requires aliases t (trips) and d (destinations).
const tripColumns = `
	t.id, t.trip_code, t.trip_type, t.name, t.description,
	t.departure_date, t.return_date, t.base_price_cents, t.max_participants,
	t.guided_tours, t.difficulty, t.equipment_included,
	t.resort_name, t.all_inclusive,
	d.id, d.name, d.country, d.description, d.climate`

func (r *pgTripRepo) Create(ctx context.Context, t *domain.Trip) error {
	const q = `
		INSERT INTO trips (trip_code, trip_type, name, description, destination_id,
		                   departure_date, return_date, base_price_cents, max_participants,
		                   guided_tours, difficulty, equipment_included, resort_name, all_inclusive)
		VALUES (@trip_code, @trip_type, @name, @description, @destination_id,
		        @departure_date, @return_date, @base_price_cents, @max_participants,
		        @guided_tours, @difficulty, @equipment_included, @resort_name, @all_inclusive)
		RETURNING id`

	var id pgtype.UUID
	if err := r.db.QueryRow(ctx, q, tripArgs(t)).Scan(&id); err != nil {
		return fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	t.ID = uuid.UUID(id.Bytes)

	if err := r.replaceSites(ctx, t); err != nil {
		return fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	q := `
		SELECT ` + tripColumns + `
		FROM trips t
		JOIN destinations d ON d.id = t.destination_id
		WHERE t.id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	t, err := scanTrip(row)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	if err := r.loadSites(ctx, []*domain.Trip{t}); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return t, nil
}

func (r *pgTripRepo) GetByCode(ctx context.Context, code string) (*domain.Trip, error) {
	q := `
		SELECT ` + tripColumns + `
		FROM trips t
		JOIN destinations d ON d.id = t.destination_id
		WHERE t.trip_code = @trip_code`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_code": code})
	t, err := scanTrip(row)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.GetByCode: %w", err)
	}
	if err := r.loadSites(ctx, []*domain.Trip{t}); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.GetByCode: %w", err)
	}
	return t, nil
}

func (r *pgTripRepo) List(ctx context.Context) ([]*domain.Trip, error) {
	q := `
		SELECT ` + tripColumns + `
		FROM trips t
		JOIN destinations d ON d.id = t.destination_id
		ORDER BY t.departure_date`

	return r.list(ctx, q, nil, "List")
}

func (r *pgTripRepo) ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]*domain.Trip, error) {
	q := `
		SELECT ` + tripColumns + `
		FROM trips t
		JOIN destinations d ON d.id = t.destination_id
		WHERE t.destination_id = @destination_id
		ORDER BY t.departure_date`

	return r.list(ctx, q, pgx.NamedArgs{"destination_id": destinationID}, "ListByDestination")
}

func (r *pgTripRepo) list(ctx context.Context, q string, args pgx.NamedArgs, op string) ([]*domain.Trip, error) {
	var rows pgx.Rows
	var err error
	if args == nil {
		rows, err = r.db.Query(ctx, q)
	} else {
		rows, err = r.db.Query(ctx, q, args)
	}
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.%s: %w", op, err)
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.%s: scan: %w", op, err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.%s: rows: %w", op, err)
	}

	if err := r.loadSites(ctx, trips); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.%s: %w", op, err)
	}
	return trips, nil
}

func (r *pgTripRepo) Update(ctx context.Context, t *domain.Trip) error {
	const q = `
		UPDATE trips
		SET trip_code          = @trip_code,
		    name               = @name,
		    description        = @description,
		    destination_id     = @destination_id,
		    departure_date     = @departure_date,
		    return_date        = @return_date,
		    base_price_cents   = @base_price_cents,
		    max_participants   = @max_participants,
		    guided_tours       = @guided_tours,
		    difficulty         = @difficulty,
		    equipment_included = @equipment_included,
		    resort_name        = @resort_name,
		    all_inclusive      = @all_inclusive
		WHERE id = @id AND trip_type = @trip_type`

	args := tripArgs(t)
	args["id"] = t.ID

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	// The trip_type predicate means a kind change also reports not found;
	// a trip's variant is fixed at creation.
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Update: %w", domain.ErrNotFound)
	}

	if err := r.replaceSites(ctx, t); err != nil {
		return fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTripRepo) LockForBooking(ctx context.Context, id uuid.UUID) error {
	const q = `SELECT id FROM trips WHERE id = @id FOR UPDATE`

	var locked pgtype.UUID
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("repo.TripRepo.LockForBooking: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("repo.TripRepo.LockForBooking: %w", err)
	}
	return nil
}

// tripArgs flattens a trip into named args. Kind-specific columns are nil
// for the kinds that do not carry them.
func tripArgs(t *domain.Trip) pgx.NamedArgs {
	args := pgx.NamedArgs{
		"trip_code":          t.Code,
		"trip_type":          string(t.Kind()),
		"name":               t.Name,
		"description":        t.Description,
		"destination_id":     t.Destination().ID,
		"departure_date":     t.DepartureDate,
		"return_date":        t.ReturnDate,
		"base_price_cents":   t.BasePrice.Cents(),
		"max_participants":   t.MaxParticipants,
		"guided_tours":       nil,
		"difficulty":         nil,
		"equipment_included": nil,
		"resort_name":        nil,
		"all_inclusive":      nil,
	}
	switch d := t.Details.(type) {
	case *domain.CulturalDetails:
		args["guided_tours"] = d.GuidedTours
	case *domain.AdventureDetails:
		args["difficulty"] = string(d.Difficulty)
		args["equipment_included"] = d.EquipmentIncluded
	case *domain.VacationDetails:
		args["resort_name"] = d.ResortName
		args["all_inclusive"] = d.AllInclusive
	}
	return args
}

// replaceSites rewrites the historical-site rows for a cultural trip.
// No-op for the other kinds.
func (r *pgTripRepo) replaceSites(ctx context.Context, t *domain.Trip) error {
	cultural, ok := t.Cultural()
	if !ok {
		return nil
	}

	if _, err := r.db.Exec(ctx,
		`DELETE FROM cultural_trip_sites WHERE trip_id = @trip_id`,
		pgx.NamedArgs{"trip_id": t.ID}); err != nil {
		return fmt.Errorf("delete sites: %w", err)
	}

	for i, site := range cultural.HistoricalSites() {
		if _, err := r.db.Exec(ctx,
			`INSERT INTO cultural_trip_sites (trip_id, site_order, site)
			 VALUES (@trip_id, @site_order, @site)`,
			pgx.NamedArgs{"trip_id": t.ID, "site_order": i, "site": site}); err != nil {
			return fmt.Errorf("insert site: %w", err)
		}
	}
	return nil
}

// loadSites fetches the historical sites for all cultural trips in ts with
// one query and attaches them in stored order.
func (r *pgTripRepo) loadSites(ctx context.Context, ts []*domain.Trip) error {
	byID := make(map[uuid.UUID]*domain.CulturalDetails)
	var ids []uuid.UUID
	for _, t := range ts {
		if cultural, ok := t.Cultural(); ok {
			byID[t.ID] = cultural
			ids = append(ids, t.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	const q = `
		SELECT trip_id, site
		FROM cultural_trip_sites
		WHERE trip_id = ANY(@trip_ids)
		ORDER BY trip_id, site_order`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_ids": ids})
	if err != nil {
		return fmt.Errorf("load sites: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tripID pgtype.UUID
		var site string
		if err := rows.Scan(&tripID, &site); err != nil {
			return fmt.Errorf("load sites: scan: %w", err)
		}
		if cultural, ok := byID[uuid.UUID(tripID.Bytes)]; ok {
			cultural.AddHistoricalSite(site)
		}
	}
	return rows.Err()
}

// scanTrip maps a row of tripColumns into a domain.Trip with its
// destination attached. Historical sites are loaded separately.
func scanTrip(s scanner) (*domain.Trip, error) {
	var (
		t        domain.Trip
		dest     domain.Destination
		id       pgtype.UUID
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

	err := s.Scan(&id, &t.Code, &tripType, &t.Name, &t.Description,
		&dep, &ret, &cents, &t.MaxParticipants,
		&guided, &diff, &equip,
		&resort, &allInc,
		&destID, &dest.Name, &dest.Country, &dest.Description, &dest.Climate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.DepartureDate = dep.Time
	t.ReturnDate = ret.Time
	t.BasePrice = domain.MoneyFromCents(cents)

	t.Details, err = tripDetailsFrom(tripType, guided, diff, equip, resort, allInc)
	if err != nil {
		return nil, err
	}

	dest.ID = uuid.UUID(destID.Bytes)
	t.SetDestination(&dest)

	return &t, nil
}

// tripDetailsFrom builds the variant data from the discriminator column and
// the kind-specific nullable columns.
func tripDetailsFrom(tripType string, guided pgtype.Bool, diff pgtype.Text,
	equip pgtype.Bool, resort pgtype.Text, allInc pgtype.Bool) (domain.TripDetails, error) {
	switch domain.TripKind(tripType) {
	case domain.TripKindCultural:
		return &domain.CulturalDetails{GuidedTours: guided.Bool}, nil
	case domain.TripKindAdventure:
		return &domain.AdventureDetails{
			Difficulty:        domain.DifficultyLevel(diff.String),
			EquipmentIncluded: equip.Bool,
		}, nil
	case domain.TripKindVacation:
		return &domain.VacationDetails{
			ResortName:   resort.String,
			AllInclusive: allInc.Bool,
		}, nil
	default:
		return nil, fmt.Errorf("unknown trip type %q", tripType)
	}
}
