package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/congestion-tax/internal/domain"
)

type passageRequest struct {
	Registration string `json:"registration"`
	Type         string `json:"type"`
	Timestamp    string `json:"timestamp"`
}

type passageResponse struct {
	ID           uuid.UUID          `json:"id"`
	Registration string             `json:"registration"`
	Type         domain.VehicleType `json:"type"`
	Timestamp    string             `json:"timestamp"`
	CreatedAt    time.Time          `json:"created_at"`
}

// CreatePassage handles POST /api/congestion/passages.
func (s *Server) CreatePassage(w http.ResponseWriter, r *http.Request) {
	var body passageRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeErr(w, r, err)
		return
	}

	ts, err := domain.ParseTimestamp(body.Timestamp)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}

	created, err := s.passages.Record(r.Context(), domain.Passage{
		Vehicle:   domain.Vehicle{Registration: body.Registration, Type: domain.VehicleType(body.Type)},
		Timestamp: ts,
	})
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, passageToResponse(created))
}

func passageToResponse(p domain.Passage) passageResponse {
	return passageResponse{
		ID:           p.ID,
		Registration: p.Vehicle.Registration,
		Type:         p.Vehicle.Type,
		Timestamp:    p.Timestamp.Format(domain.TimestampLayout),
		CreatedAt:    p.CreatedAt,
	}
}
