package handlers

import (
	"net/http"

	"github.com/piotronm/tourney-backend-sub001/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(standingsService services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: standingsService}
}

// GetHandler handles GET /tournaments/{tournamentID}/divisions/{divisionID}/standings.
func (h *StandingsHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, divisionID, err := divisionScope(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.standingsService.ByDivision(r.Context(), tournamentID, divisionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
