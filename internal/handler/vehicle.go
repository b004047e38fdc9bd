package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/congestion-tax/internal/domain"
)

type vehicleRequest struct {
	Registration string `json:"registration"`
	Type         string `json:"type"`
}

// CreateVehicle handles POST /api/congestion/vehicles.
// Saving an existing registration updates its type.
func (s *Server) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var body vehicleRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeErr(w, r, err)
		return
	}

	saved, err := s.vehicles.Save(r.Context(), domain.Vehicle{
		Registration: body.Registration,
		Type:         domain.VehicleType(body.Type),
	})
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// GetVehicle handles GET /api/congestion/vehicles/{registration}.
func (s *Server) GetVehicle(w http.ResponseWriter, r *http.Request) {
	v, err := s.vehicles.Get(r.Context(), chi.URLParam(r, "registration"))
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
