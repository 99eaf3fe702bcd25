package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-agency/backend/internal/domain"
	"github.com/pkordes/travel-agency/backend/internal/repo"
	"github.com/pkordes/travel-agency/backend/testutil"
)

// newTestRepos opens a transaction against the test database and returns
// every repo backed by that transaction. The transaction is automatically
// rolled back when the test finishes, giving free per-test isolation.
//
// Requires TEST_DATABASE_URL to be set; tests skip otherwise.
func newTestRepos(t *testing.T) repo.Repos {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test.
		_ = tx.Rollback(context.Background())
	})

	return repo.NewRepos(tx)
}

// mustCreateDestination persists a fresh destination fixture.
func mustCreateDestination(t *testing.T, repos repo.Repos) *domain.Destination {
	t.Helper()
	d := domain.NewDestination("Paris", "France", "City of Light", "Temperate")
	require.NoError(t, repos.Destinations.Create(context.Background(), d))
	return d
}

// mustCreateCulturalTrip persists a cultural trip with two sites under the
// given destination.
func mustCreateCulturalTrip(t *testing.T, repos repo.Repos, dest *domain.Destination) *domain.Trip {
	t.Helper()
	trip := domain.NewCulturalTrip("CUL-PAR-001", "Paris Museums Week",
		"Seven days of museums", dest,
		time.Now().AddDate(0, 2, 0), time.Now().AddDate(0, 2, 7),
		domain.MoneyFromMajor(1200), 20, true)
	cultural, _ := trip.Cultural()
	cultural.AddHistoricalSite("Louvre")
	cultural.AddHistoricalSite("Notre-Dame")
	require.NoError(t, repos.Trips.Create(context.Background(), trip))
	return trip
}

// mustCreateCustomer persists a customer fixture.
func mustCreateCustomer(t *testing.T, repos repo.Repos) *domain.Customer {
	t.Helper()
	c := domain.NewCustomer("Maria", "Garcia", "maria.garcia@example.com", "+34-600-123456",
		domain.Address{Street: "Calle Mayor 12", City: "Madrid", PostalCode: "28013", Country: "Spain"})
	require.NoError(t, repos.Customers.Create(context.Background(), c))
	return c
}

// mustBook persists a reservation linking the customer and trip.
func mustBook(t *testing.T, repos repo.Repos, c *domain.Customer, trip *domain.Trip, partySize int) *domain.Reservation {
	t.Helper()
	resv, err := domain.NewReservation(c, trip, partySize)
	require.NoError(t, err)
	require.NoError(t, repos.Reservations.Create(context.Background(), resv))
	return resv
}
