package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-agency/backend/internal/domain"
	"github.com/pkordes/travel-agency/backend/internal/service"
)

// TripRequest is the JSON body of POST /api/trips and PUT /api/trips/{id}.
// TripType selects the variant; only that variant's extra fields are read.
// Monetary amounts travel as decimal strings to keep them exact.
type TripRequest struct {
	Code            string             `json:"code"`
	Name            string             `json:"name"`
	Description     string             `json:"description,omitempty"`
	DestinationID   uuid.UUID          `json:"destinationId"`
	DepartureDate   openapi_types.Date `json:"departureDate"`
	ReturnDate      openapi_types.Date `json:"returnDate"`
	BasePrice       string             `json:"basePrice"`
	MaxParticipants int                `json:"maxParticipants"`
	TripType        string             `json:"tripType"`

	GuidedTours     *bool    `json:"guidedTours,omitempty"`
	HistoricalSites []string `json:"historicalSites,omitempty"`

	DifficultyLevel   *string `json:"difficultyLevel,omitempty"`
	EquipmentIncluded *bool   `json:"equipmentIncluded,omitempty"`

	ResortName   *string `json:"resortName,omitempty"`
	AllInclusive *bool   `json:"allInclusive,omitempty"`
}

// TripResponse is the JSON shape of a trip, including the derived fields
// (final price, duration, availability) recomputed at serialization time.
type TripResponse struct {
	ID              uuid.UUID            `json:"id"`
	Code            string               `json:"code"`
	Name            string               `json:"name"`
	Description     string               `json:"description,omitempty"`
	Destination     *DestinationResponse `json:"destination,omitempty"`
	DepartureDate   openapi_types.Date   `json:"departureDate"`
	ReturnDate      openapi_types.Date   `json:"returnDate"`
	BasePrice       string               `json:"basePrice"`
	FinalPrice      string               `json:"finalPrice"`
	DurationDays    int                  `json:"durationDays"`
	MaxParticipants int                  `json:"maxParticipants"`
	AvailableSpots  int                  `json:"availableSpots"`
	Available       bool                 `json:"available"`
	TripType        string               `json:"tripType"`

	GuidedTours     *bool    `json:"guidedTours,omitempty"`
	HistoricalSites []string `json:"historicalSites,omitempty"`

	DifficultyLevel   *string `json:"difficultyLevel,omitempty"`
	EquipmentIncluded *bool   `json:"equipmentIncluded,omitempty"`

	ResortName   *string `json:"resortName,omitempty"`
	AllInclusive *bool   `json:"allInclusive,omitempty"`
}

// FlightRequest is the JSON body of POST /api/trips/{id}/flight.
type FlightRequest struct {
	FlightNumber     string    `json:"flightNumber"`
	Airline          string    `json:"airline"`
	DepartureAirport string    `json:"departureAirport"`
	ArrivalAirport   string    `json:"arrivalAirport"`
	DepartureTime    time.Time `json:"departureTime"`
	ArrivalTime      time.Time `json:"arrivalTime"`
}

// FlightResponse is the JSON shape of a flight.
type FlightResponse struct {
	ID               uuid.UUID `json:"id"`
	FlightNumber     string    `json:"flightNumber"`
	Airline          string    `json:"airline"`
	DepartureAirport string    `json:"departureAirport"`
	ArrivalAirport   string    `json:"arrivalAirport"`
	DepartureTime    time.Time `json:"departureTime"`
	ArrivalTime      time.Time `json:"arrivalTime"`
	DurationMinutes  int       `json:"durationMinutes"`
}

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req TripRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "malformed request body")
		return
	}
	input, err := requestToTripInput(req)
	if err != nil {
		respondError(w, err)
		return
	}

	trip, err := s.trips.Create(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(trip))
}

// ListTrips handles GET /api/trips.
// With ?available=true only trips that can still be booked are returned.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	var trips []*domain.Trip
	var err error
	if r.URL.Query().Get("available") == "true" {
		trips, err = s.trips.ListAvailable(r.Context())
	} else {
		trips, err = s.trips.List(r.Context())
	}
	if err != nil {
		respondError(w, err)
		return
	}

	data := make([]TripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, data)
}

// GetTrip handles GET /api/trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "malformed trip id")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /api/trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "malformed trip id")
		return
	}
	var req TripRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "malformed request body")
		return
	}
	input, err := requestToTripInput(req)
	if err != nil {
		respondError(w, err)
		return
	}

	trip, err := s.trips.Update(r.Context(), id, input)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// DeleteTrip handles DELETE /api/trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "malformed trip id")
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTripReservations handles GET /api/trips/{id}/reservations.
func (s *Server) ListTripReservations(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "malformed trip id")
		return
	}

	resvs, err := s.reservations.ListByTrip(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	data := make([]ReservationResponse, len(resvs))
	for i, resv := range resvs {
		data[i] = reservationToResponse(resv)
	}
	writeJSON(w, http.StatusOK, data)
}

// AttachFlight handles POST /api/trips/{id}/flight.
func (s *Server) AttachFlight(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "malformed trip id")
		return
	}
	var req FlightRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "malformed request body")
		return
	}

	flight := domain.NewFlight(req.FlightNumber, req.Airline,
		req.DepartureAirport, req.ArrivalAirport, req.DepartureTime, req.ArrivalTime)
	if err := s.trips.AttachFlight(r.Context(), id, flight); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, flightToResponse(flight))
}

// GetFlight handles GET /api/trips/{id}/flight.
func (s *Server) GetFlight(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "malformed trip id")
		return
	}

	flight, err := s.trips.Flight(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, flightToResponse(flight))
}

// --- mapping helpers --------------------------------------------------------

// requestToTripInput converts a TripRequest into a service.TripInput.
// Full validation happens in the service; only the price needs parsing here.
func requestToTripInput(req TripRequest) (service.TripInput, error) {
	price, err := domain.ParseMoney(req.BasePrice)
	if err != nil {
		return service.TripInput{}, err
	}

	input := service.TripInput{
		Code:            req.Code,
		Name:            req.Name,
		Description:     req.Description,
		DestinationID:   req.DestinationID,
		DepartureDate:   req.DepartureDate.Time,
		ReturnDate:      req.ReturnDate.Time,
		BasePrice:       price,
		MaxParticipants: req.MaxParticipants,
		Kind:            domain.TripKind(req.TripType),
		HistoricalSites: req.HistoricalSites,
	}
	if req.GuidedTours != nil {
		input.GuidedTours = *req.GuidedTours
	}
	if req.DifficultyLevel != nil {
		input.Difficulty = domain.DifficultyLevel(*req.DifficultyLevel)
	}
	if req.EquipmentIncluded != nil {
		input.EquipmentIncluded = *req.EquipmentIncluded
	}
	if req.ResortName != nil {
		input.ResortName = *req.ResortName
	}
	if req.AllInclusive != nil {
		input.AllInclusive = *req.AllInclusive
	}
	return input, nil
}

// tripToResponse converts a domain.Trip into its JSON shape, recomputing
// every derived field from the attached object graph.
func tripToResponse(t *domain.Trip) TripResponse {
	resp := TripResponse{
		ID:              t.ID,
		Code:            t.Code,
		Name:            t.Name,
		Description:     t.Description,
		DepartureDate:   openapi_types.Date{Time: t.DepartureDate},
		ReturnDate:      openapi_types.Date{Time: t.ReturnDate},
		BasePrice:       t.BasePrice.String(),
		FinalPrice:      t.FinalPrice().String(),
		DurationDays:    t.Duration(),
		MaxParticipants: t.MaxParticipants,
		AvailableSpots:  t.AvailableSpots(),
		Available:       t.IsAvailable(),
		TripType:        string(t.Kind()),
	}
	if dest := t.Destination(); dest != nil {
		d := destinationToResponse(dest)
		resp.Destination = &d
	}

	switch details := t.Details.(type) {
	case *domain.CulturalDetails:
		guided := details.GuidedTours
		resp.GuidedTours = &guided
		resp.HistoricalSites = details.HistoricalSites()
	case *domain.AdventureDetails:
		difficulty := string(details.Difficulty)
		equipment := details.EquipmentIncluded
		resp.DifficultyLevel = &difficulty
		resp.EquipmentIncluded = &equipment
	case *domain.VacationDetails:
		resort := details.ResortName
		allInclusive := details.AllInclusive
		resp.ResortName = &resort
		resp.AllInclusive = &allInclusive
	}
	return resp
}

// flightToResponse converts a domain.Flight into its JSON shape.
func flightToResponse(f *domain.Flight) FlightResponse {
	return FlightResponse{
		ID:               f.ID,
		FlightNumber:     f.FlightNumber,
		Airline:          f.Airline,
		DepartureAirport: f.DepartureAirport,
		ArrivalAirport:   f.ArrivalAirport,
		DepartureTime:    f.DepartureTime,
		ArrivalTime:      f.ArrivalTime,
		DurationMinutes:  int(f.FlightDuration().Minutes()),
	}
}
