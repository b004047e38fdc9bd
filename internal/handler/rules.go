package handler

import (
	"net/http"

	"cloud.google.com/go/civil"

	"github.com/pkordes/congestion-tax/internal/domain"
)

// rulesResponse is the active rule set plus the exempt dates derived from it.
type rulesResponse struct {
	domain.RuleSet
	ExemptDates []civil.Date `json:"exempt_dates"`
}

// GetRules handles GET /api/congestion/rules.
func (s *Server) GetRules(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rulesResponse{
		RuleSet:     s.rules.Rules(),
		ExemptDates: s.rules.Calendar().Dates(),
	})
}
