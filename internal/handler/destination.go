package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/travel-agency/backend/internal/domain"
	"github.com/pkordes/travel-agency/backend/internal/service"
)

// CreateDestinationRequest is the JSON body of POST /api/destinations.
type CreateDestinationRequest struct {
	Name        string `json:"name"`
	Country     string `json:"country"`
	Description string `json:"description,omitempty"`
	Climate     string `json:"climate,omitempty"`
}

// DestinationResponse is the JSON shape of a destination.
type DestinationResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Country     string    `json:"country"`
	Description string    `json:"description,omitempty"`
	Climate     string    `json:"climate,omitempty"`
}

// CreateDestination handles POST /api/destinations.
func (s *Server) CreateDestination(w http.ResponseWriter, r *http.Request) {
	var req CreateDestinationRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "malformed request body")
		return
	}

	dest, err := s.destinations.Create(r.Context(), service.DestinationInput{
		Name:        req.Name,
		Country:     req.Country,
		Description: req.Description,
		Climate:     req.Climate,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, destinationToResponse(dest))
}

// ListDestinations handles GET /api/destinations.
func (s *Server) ListDestinations(w http.ResponseWriter, r *http.Request) {
	dests, err := s.destinations.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	data := make([]DestinationResponse, len(dests))
	for i, d := range dests {
		data[i] = destinationToResponse(d)
	}
	writeJSON(w, http.StatusOK, data)
}

// GetDestination handles GET /api/destinations/{id}.
func (s *Server) GetDestination(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "malformed destination id")
		return
	}

	dest, err := s.destinations.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, destinationToResponse(dest))
}

// ListDestinationTrips handles GET /api/destinations/{id}/trips.
// With ?available=true only trips that can still be booked are returned.
func (s *Server) ListDestinationTrips(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "malformed destination id")
		return
	}

	availableOnly := r.URL.Query().Get("available") == "true"
	trips, err := s.destinations.Trips(r.Context(), id, availableOnly)
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

// destinationToResponse converts a domain.Destination to its JSON shape.
func destinationToResponse(d *domain.Destination) DestinationResponse {
	return DestinationResponse{
		ID:          d.ID,
		Name:        d.Name,
		Country:     d.Country,
		Description: d.Description,
		Climate:     d.Climate,
	}
}
