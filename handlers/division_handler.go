package handlers

import (
	"net/http"

	"github.com/piotronm/tourney-backend-sub001/services"
)

type DivisionHandler struct {
	divisionService services.DivisionService
}

func NewDivisionHandler(divisionService services.DivisionService) *DivisionHandler {
	return &DivisionHandler{divisionService: divisionService}
}

// CreateHandler handles POST /tournaments/{tournamentID}/divisions.
func (h *DivisionHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CreateDivisionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	division, err := h.divisionService.Create(r.Context(), tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"division": division}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler handles GET /tournaments/{tournamentID}/divisions/{divisionID}.
func (h *DivisionHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, divisionID, err := divisionScope(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	division, err := h.divisionService.GetByID(r.Context(), tournamentID, divisionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"division": division}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler handles GET /tournaments/{tournamentID}/divisions.
func (h *DivisionHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	divisions, err := h.divisionService.ListByTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"divisions": divisions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler handles DELETE /tournaments/{tournamentID}/divisions/{divisionID}.
func (h *DivisionHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, divisionID, err := divisionScope(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.divisionService.Delete(r.Context(), tournamentID, divisionID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func divisionScope(r *http.Request) (tournamentID, divisionID int, err error) {
	tournamentID, err = getIDFromURL(r, "tournamentID")
	if err != nil {
		return 0, 0, err
	}
	divisionID, err = getIDFromURL(r, "divisionID")
	if err != nil {
		return 0, 0, err
	}
	return tournamentID, divisionID, nil
}
