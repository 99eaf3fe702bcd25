package domain

import "github.com/google/uuid"

// Destination groups trips by location. It owns the trip-list side of the
// bidirectional Destination↔Trip association; Trip.SetDestination and the
// Add/RemoveTrip methods below keep both sides consistent from a single
// call site.
type Destination struct {
	ID          uuid.UUID
	Name        string
	Country     string
	Description string
	Climate     string

	trips []*Trip
}

// NewDestination constructs a destination with no trips.
func NewDestination(name, country, description, climate string) *Destination {
	return &Destination{
		Name:        name,
		Country:     country,
		Description: description,
		Climate:     climate,
	}
}

// Trips returns the trips located at this destination.
// The returned slice is a copy.
func (d *Destination) Trips() []*Trip {
	out := make([]*Trip, len(d.trips))
	copy(out, d.trips)
	return out
}

// AddTrip places a trip at this destination and sets the trip's
// back-reference. No-op if the trip is already here.
func (d *Destination) AddTrip(t *Trip) {
	for _, existing := range d.trips {
		if existing == t {
			return
		}
	}
	d.trips = append(d.trips, t)
	if t.Destination() != d {
		t.SetDestination(d)
	}
}

// RemoveTrip takes a trip off this destination and clears the trip's
// back-reference if it still points here.
func (d *Destination) RemoveTrip(t *Trip) {
	for i, existing := range d.trips {
		if existing == t {
			d.trips = append(d.trips[:i], d.trips[i+1:]...)
			if t.Destination() == d {
				t.SetDestination(nil)
			}
			return
		}
	}
}

// AvailableTrips returns the trips at this destination that can currently
// be booked. Recomputed on each call from live reservation data.
func (d *Destination) AvailableTrips() []*Trip {
	var out []*Trip
	for _, t := range d.trips {
		if t.IsAvailable() {
			out = append(out, t)
		}
	}
	return out
}
