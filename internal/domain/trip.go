// Package domain contains the booking core for the travel agency: the
// entity graph (destinations, trips, customers, reservations, payments,
// flights), the association bookkeeping that keeps both sides of every
// relationship in sync, the reservation state machine, and the derived
// business quantities (pricing, availability, duration).
//
// Entities here are plain in-memory objects. Persistence, HTTP, and
// serialization live in the surrounding packages (repo, service, handler)
// and call into this package through its exported methods.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TripKind is the stable type tag of a trip variant, used by consumers for
// display and dispatch without reflection.
type TripKind string

const (
	TripKindCultural  TripKind = "Cultural"
	TripKindAdventure TripKind = "Adventure"
	TripKindVacation  TripKind = "Vacation"
)

// DifficultyLevel grades an adventure trip.
type DifficultyLevel string

const (
	DifficultyEasy     DifficultyLevel = "EASY"
	DifficultyModerate DifficultyLevel = "MODERATE"
	DifficultyHard     DifficultyLevel = "HARD"
)

// TripDetails is the closed set of trip variants. Exactly one concrete type
// per trip — *CulturalDetails, *AdventureDetails, or *VacationDetails. The
// unexported multiplier method keeps the set closed to this package, which
// is what enforces the "exactly one kind" rule at compile time.
type TripDetails interface {
	// Kind returns the variant's type tag.
	Kind() TripKind

	// priceMultiplierPct is the variant's final-price multiplier as a
	// percentage of the base price (110, 130, 150).
	priceMultiplierPct() int64
}

// Trip is a bookable journey to a destination. The shared fields live here;
// kind-specific attributes and the price multiplier live in Details.
//
// The association fields (destination, flight, reservations) are unexported
// so that both sides of each relationship can only be changed through the
// single owning operation that updates them together.
type Trip struct {
	ID              uuid.UUID
	Code            string // unique trip code, e.g. "CUL-PAR-001"
	Name            string
	Description     string
	DepartureDate   time.Time
	ReturnDate      time.Time
	BasePrice       Money
	MaxParticipants int
	Details         TripDetails

	destination  *Destination
	flight       *Flight
	reservations []*Reservation
}

// CulturalDetails marks a trip as cultural: guided tours plus an ordered,
// duplicate-free list of historical sites.
type CulturalDetails struct {
	GuidedTours bool

	sites []string
}

func (d *CulturalDetails) Kind() TripKind            { return TripKindCultural }
func (d *CulturalDetails) priceMultiplierPct() int64 { return 110 }

// AddHistoricalSite appends a site name, preserving insertion order.
// Blank names and duplicates are silently ignored.
func (d *CulturalDetails) AddHistoricalSite(site string) {
	if strings.TrimSpace(site) == "" {
		return
	}
	for _, s := range d.sites {
		if s == site {
			return
		}
	}
	d.sites = append(d.sites, site)
}

// HistoricalSites returns the site names in insertion order.
// The returned slice is a copy; mutating it does not affect the trip.
func (d *CulturalDetails) HistoricalSites() []string {
	out := make([]string, len(d.sites))
	copy(out, d.sites)
	return out
}

// HistoricalSite returns the site at the given insertion-order index.
// The second return value is false when the index is out of range.
func (d *CulturalDetails) HistoricalSite(i int) (string, bool) {
	if i < 0 || i >= len(d.sites) {
		return "", false
	}
	return d.sites[i], true
}

// AdventureDetails marks a trip as adventure: graded difficulty and whether
// equipment is included in the price.
type AdventureDetails struct {
	Difficulty        DifficultyLevel
	EquipmentIncluded bool
}

func (d *AdventureDetails) Kind() TripKind            { return TripKindAdventure }
func (d *AdventureDetails) priceMultiplierPct() int64 { return 130 }

// VacationDetails marks a trip as a resort vacation.
type VacationDetails struct {
	ResortName   string
	AllInclusive bool
}

func (d *VacationDetails) Kind() TripKind            { return TripKindVacation }
func (d *VacationDetails) priceMultiplierPct() int64 { return 150 }

// newTrip builds the shared part of a trip and wires the destination link.
func newTrip(code, name, description string, dest *Destination,
	departure, ret time.Time, basePrice Money, maxParticipants int, details TripDetails) *Trip {
	t := &Trip{
		Code:            code,
		Name:            name,
		Description:     description,
		DepartureDate:   departure,
		ReturnDate:      ret,
		BasePrice:       basePrice,
		MaxParticipants: maxParticipants,
		Details:         details,
	}
	t.SetDestination(dest)
	return t
}

// NewCulturalTrip constructs a cultural trip. Historical sites are added
// afterwards via Cultural().AddHistoricalSite.
func NewCulturalTrip(code, name, description string, dest *Destination,
	departure, ret time.Time, basePrice Money, maxParticipants int, guidedTours bool) *Trip {
	return newTrip(code, name, description, dest, departure, ret, basePrice, maxParticipants,
		&CulturalDetails{GuidedTours: guidedTours})
}

// NewAdventureTrip constructs an adventure trip.
func NewAdventureTrip(code, name, description string, dest *Destination,
	departure, ret time.Time, basePrice Money, maxParticipants int,
	difficulty DifficultyLevel, equipmentIncluded bool) *Trip {
	return newTrip(code, name, description, dest, departure, ret, basePrice, maxParticipants,
		&AdventureDetails{Difficulty: difficulty, EquipmentIncluded: equipmentIncluded})
}

// NewVacationTrip constructs a vacation trip.
func NewVacationTrip(code, name, description string, dest *Destination,
	departure, ret time.Time, basePrice Money, maxParticipants int,
	resortName string, allInclusive bool) *Trip {
	return newTrip(code, name, description, dest, departure, ret, basePrice, maxParticipants,
		&VacationDetails{ResortName: resortName, AllInclusive: allInclusive})
}

// Kind returns the trip's variant tag.
func (t *Trip) Kind() TripKind {
	return t.Details.Kind()
}

// FinalPrice is the base price scaled by the variant's multiplier.
// Pure: computed on every call, never stored.
func (t *Trip) FinalPrice() Money {
	return t.BasePrice.MulPercent(t.Details.priceMultiplierPct())
}

// Duration is the whole number of days between departure and return.
// No ordering of the two dates is enforced, so the result can be zero or
// negative when return does not follow departure; the service layer
// validates ordering at creation time.
func (t *Trip) Duration() int {
	return int(t.ReturnDate.Sub(t.DepartureDate).Hours() / 24)
}

// IsAvailable reports whether the trip can still be booked today.
func (t *Trip) IsAvailable() bool {
	return t.IsAvailableOn(time.Now())
}

// IsAvailableOn reports whether the trip can be booked as of the given
// date: departure must be strictly after it and at least one spot free.
func (t *Trip) IsAvailableOn(date time.Time) bool {
	return t.DepartureDate.After(date) && t.AvailableSpots() > 0
}

// AvailableSpots is the maximum participant count minus the party sizes of
// all non-cancelled reservations. Recomputed from the live reservation set
// on every call so it is always consistent with the current bookings.
func (t *Trip) AvailableSpots() int {
	booked := 0
	for _, r := range t.reservations {
		if r.Status != ReservationCancelled {
			booked += r.PartySize
		}
	}
	return t.MaxParticipants - booked
}

// HasEnoughSpots reports whether a party of the given size still fits.
func (t *Trip) HasEnoughSpots(people int) bool {
	return t.AvailableSpots() >= people
}

// Cultural returns the cultural variant data, or false for other kinds.
func (t *Trip) Cultural() (*CulturalDetails, bool) {
	d, ok := t.Details.(*CulturalDetails)
	return d, ok
}

// Adventure returns the adventure variant data, or false for other kinds.
func (t *Trip) Adventure() (*AdventureDetails, bool) {
	d, ok := t.Details.(*AdventureDetails)
	return d, ok
}

// Vacation returns the vacation variant data, or false for other kinds.
func (t *Trip) Vacation() (*VacationDetails, bool) {
	d, ok := t.Details.(*VacationDetails)
	return d, ok
}

// Destination returns the destination this trip belongs to, or nil.
func (t *Trip) Destination() *Destination {
	return t.destination
}

// SetDestination moves the trip to a new destination, detaching it from the
// previous destination's trip list and attaching it to the new one as a
// single step. Passing nil detaches the trip entirely.
func (t *Trip) SetDestination(dest *Destination) {
	if t.destination == dest {
		return
	}
	if t.destination != nil {
		t.destination.RemoveTrip(t)
	}
	t.destination = dest
	if dest != nil {
		dest.AddTrip(t)
	}
}

// Flight returns the flight serving this trip, or nil.
func (t *Trip) Flight() *Flight {
	return t.flight
}

// SetFlight attaches a flight to the trip, maintaining the back-link.
// Passing nil detaches the current flight.
func (t *Trip) SetFlight(f *Flight) {
	if t.flight == f {
		return
	}
	if t.flight != nil {
		old := t.flight
		t.flight = nil
		old.setTrip(nil)
	}
	t.flight = f
	if f != nil {
		f.setTrip(t)
	}
}

// Reservations returns the reservations referencing this trip, in the order
// they were made. The returned slice is a copy.
func (t *Trip) Reservations() []*Reservation {
	out := make([]*Reservation, len(t.reservations))
	copy(out, t.reservations)
	return out
}

// AddReservation attaches a reservation to this trip's collection and
// mirrors the link on the reservation side. No-op if already attached.
func (t *Trip) AddReservation(r *Reservation) {
	for _, existing := range t.reservations {
		if existing == r {
			return
		}
	}
	t.reservations = append(t.reservations, r)
	if r.Trip() != t {
		r.SetTrip(t)
	}
}

// RemoveReservation detaches a reservation from this trip's collection and
// clears the reservation's trip reference if it still points here.
func (t *Trip) RemoveReservation(r *Reservation) {
	for i, existing := range t.reservations {
		if existing == r {
			t.reservations = append(t.reservations[:i], t.reservations[i+1:]...)
			if r.Trip() == t {
				r.SetTrip(nil)
			}
			return
		}
	}
}
