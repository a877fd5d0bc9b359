package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/piotronm/tourney-backend-sub001/models"
	"github.com/piotronm/tourney-backend-sub001/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(matchService services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// GetByIDHandler handles GET /matches/{matchID}.
func (h *MatchHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetByID(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListByDivisionHandler handles GET /divisions/{divisionID}/matches with
// optional round and status filter query parameters.
func (h *MatchHandler) ListByDivisionHandler(w http.ResponseWriter, r *http.Request) {
	divisionID, err := getIDFromURL(r, "divisionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	query := r.URL.Query()
	var round *int
	if roundStr := query.Get("round"); roundStr != "" {
		v, err := strconv.Atoi(roundStr)
		if err != nil || v < 1 {
			badRequestResponse(w, r, fmt.Errorf("invalid round query parameter: %q", roundStr))
			return
		}
		round = &v
	}
	var status *models.MatchStatus
	if statusStr := query.Get("status"); statusStr != "" {
		s := models.MatchStatus(statusStr)
		status = &s
	}

	matches, err := h.matchService.ListByDivision(r.Context(), divisionID, round, status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ReportScoreHandler handles PATCH /matches/{matchID}/result.
func (h *MatchHandler) ReportScoreHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.ReportScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.ReportScore(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
