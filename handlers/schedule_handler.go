package handlers

import (
	"net/http"

	"github.com/piotronm/tourney-backend-sub001/services"
)

type ScheduleHandler struct {
	scheduleService services.ScheduleService
}

func NewScheduleHandler(scheduleService services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// GenerateHandler handles POST /tournaments/{tournamentID}/divisions/{divisionID}/schedule.
func (h *ScheduleHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, divisionID, err := divisionScope(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.GenerateScheduleInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	schedule, err := h.scheduleService.Generate(r.Context(), tournamentID, divisionID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"schedule": schedule}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetHandler handles GET /tournaments/{tournamentID}/divisions/{divisionID}/schedule.
func (h *ScheduleHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, divisionID, err := divisionScope(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	schedule, err := h.scheduleService.Get(r.Context(), tournamentID, divisionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"schedule": schedule}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
