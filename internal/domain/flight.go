package domain

import (
	"time"

	"github.com/google/uuid"
)

// Flight is an optional 1:1 attachment to a trip. Attach it through
// Trip.SetFlight, which owns both sides of the link.
type Flight struct {
	ID               uuid.UUID
	FlightNumber     string
	Airline          string
	DepartureAirport string
	ArrivalAirport   string
	DepartureTime    time.Time
	ArrivalTime      time.Time

	trip *Trip
}

// NewFlight constructs a flight not yet attached to any trip.
func NewFlight(flightNumber, airline, departureAirport, arrivalAirport string,
	departureTime, arrivalTime time.Time) *Flight {
	return &Flight{
		FlightNumber:     flightNumber,
		Airline:          airline,
		DepartureAirport: departureAirport,
		ArrivalAirport:   arrivalAirport,
		DepartureTime:    departureTime,
		ArrivalTime:      arrivalTime,
	}
}

// Trip returns the trip this flight serves, or nil.
func (f *Flight) Trip() *Trip {
	return f.trip
}

// setTrip is called by Trip.SetFlight to keep the 1:1 link symmetric.
func (f *Flight) setTrip(t *Trip) {
	f.trip = t
}

// FlightDuration is derived from the departure/arrival timestamps.
func (f *Flight) FlightDuration() time.Duration {
	return f.ArrivalTime.Sub(f.DepartureTime)
}
