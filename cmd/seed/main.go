// Package main seeds the database with a demo catalog: destinations,
// trips of every variant, customers, an operations admin and one sample
// booking. Running it twice is safe; it exits without touching anything
// when customers already exist.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/pkordes/travel-agency/backend/internal/config"
	"github.com/pkordes/travel-agency/backend/internal/domain"
	"github.com/pkordes/travel-agency/backend/internal/repo"
	"github.com/pkordes/travel-agency/backend/internal/service"
	"github.com/pkordes/travel-agency/backend/migrations"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if err := migrate(cfg.DatabaseURL); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := seed(ctx, pool); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}

// migrate brings the schema up to date from the embedded migration files.
func migrate(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}

func seed(ctx context.Context, pool *pgxpool.Pool) error {
	repos := repo.NewRepos(pool)

	existing, err := repos.Customers.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		slog.Info("database already seeded, skipping", "customers", len(existing))
		return nil
	}

	dests, err := seedDestinations(ctx, repos)
	if err != nil {
		return err
	}
	trips, err := seedTrips(ctx, repos, dests)
	if err != nil {
		return err
	}
	customers, err := seedCustomers(ctx, repos)
	if err != nil {
		return err
	}
	if err := seedAdmin(ctx, repos); err != nil {
		return err
	}

	// One sample booking through the real booking path, so the demo data
	// exercises the same locking transaction production requests use.
	reservations := service.NewReservationService(repos, repo.NewUnitOfWork(pool))
	resv, err := reservations.Book(ctx, customers[0].ID, trips["CUL-PAR-001"].ID, 2)
	if err != nil {
		return err
	}
	slog.Info("database seeded",
		"destinations", len(dests),
		"trips", len(trips),
		"customers", len(customers),
		"sample_reservation", resv.Number,
	)
	return nil
}

func seedDestinations(ctx context.Context, repos repo.Repos) (map[string]*domain.Destination, error) {
	out := map[string]*domain.Destination{}
	for _, d := range []*domain.Destination{
		domain.NewDestination("Paris", "France", "The City of Light, home to world-class museums", "Temperate"),
		domain.NewDestination("Swiss Alps", "Switzerland", "Europe's alpine playground", "Alpine"),
		domain.NewDestination("Maldives", "Maldives", "Coral atolls in the Indian Ocean", "Tropical"),
		domain.NewDestination("Rome", "Italy", "The Eternal City", "Mediterranean"),
		domain.NewDestination("Bali", "Indonesia", "Island of temples, rice terraces and surf", "Tropical"),
	} {
		if err := repos.Destinations.Create(ctx, d); err != nil {
			return nil, err
		}
		out[d.Name] = d
	}
	return out, nil
}

func seedTrips(ctx context.Context, repos repo.Repos, dests map[string]*domain.Destination) (map[string]*domain.Trip, error) {
	departure := func(daysOut int) time.Time {
		return time.Now().AddDate(0, 0, daysOut).Truncate(24 * time.Hour)
	}

	paris := domain.NewCulturalTrip("CUL-PAR-001", "Paris Museums Week",
		"Seven days of museums and landmarks with expert guides",
		dests["Paris"], departure(60), departure(67), domain.MoneyFromMajor(1200), 20, true)
	cultural, _ := paris.Cultural()
	cultural.AddHistoricalSite("Louvre")
	cultural.AddHistoricalSite("Notre-Dame")
	cultural.AddHistoricalSite("Palace of Versailles")

	rome := domain.NewCulturalTrip("CUL-ROM-001", "Ancient Rome Discovery",
		"Walk the forums and amphitheatres of the ancient world",
		dests["Rome"], departure(45), departure(50), domain.MoneyFromMajor(950), 15, true)
	cultural, _ = rome.Cultural()
	cultural.AddHistoricalSite("Colosseum")
	cultural.AddHistoricalSite("Roman Forum")
	cultural.AddHistoricalSite("Pantheon")

	alps := domain.NewAdventureTrip("ADV-ALP-001", "Alpine Peaks Expedition",
		"Guided high-altitude trekking with full equipment",
		dests["Swiss Alps"], departure(30), departure(37), domain.MoneyFromMajor(1800), 8,
		domain.DifficultyHard, true)

	bali := domain.NewAdventureTrip("ADV-BAL-001", "Bali Volcano Trek",
		"Sunrise hike up Mount Batur and jungle canyoning",
		dests["Bali"], departure(75), departure(80), domain.MoneyFromMajor(800), 12,
		domain.DifficultyModerate, true)

	maldives := domain.NewVacationTrip("VAC-MDV-001", "Maldives Escape",
		"Overwater villa with house reef",
		dests["Maldives"], departure(90), departure(100), domain.MoneyFromMajor(3000), 10,
		"Coral Reef Resort", true)

	baliBeach := domain.NewVacationTrip("VAC-BAL-001", "Bali Beach Retreat",
		"Beachfront resort week in Nusa Dua",
		dests["Bali"], departure(50), departure(57), domain.MoneyFromMajor(1400), 16,
		"Nusa Dua Grand Resort", false)

	out := map[string]*domain.Trip{}
	for _, t := range []*domain.Trip{paris, rome, alps, bali, maldives, baliBeach} {
		if err := repos.Trips.Create(ctx, t); err != nil {
			return nil, err
		}
		out[t.Code] = t
	}
	return out, nil
}

func seedCustomers(ctx context.Context, repos repo.Repos) ([]*domain.Customer, error) {
	customers := []*domain.Customer{
		domain.NewCustomer("Maria", "Garcia", "maria.garcia@example.com", "+34-600-123456",
			domain.Address{Street: "Calle Mayor 12", City: "Madrid", PostalCode: "28013", Country: "Spain"}),
		domain.NewCustomer("John", "Smith", "john.smith@example.com", "+44-7700-900123",
			domain.Address{Street: "10 Baker Street", City: "London", PostalCode: "NW1 6XE", Country: "United Kingdom"}),
		domain.NewCustomer("Yuki", "Tanaka", "yuki.tanaka@example.com", "",
			domain.Address{Street: "1-2-3 Shibuya", City: "Tokyo", PostalCode: "150-0002", Country: "Japan"}),
	}
	for _, c := range customers {
		if err := repos.Customers.Create(ctx, c); err != nil {
			return nil, err
		}
	}
	return customers, nil
}

func seedAdmin(ctx context.Context, repos repo.Repos) error {
	if _, err := repos.Admins.GetByEmployeeID(ctx, "EMP-001"); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return repos.Admins.Create(ctx, domain.NewAdmin("operations", "changeme", "EMP-001", "Operations"))
}
