package handlers

import (
	"fmt"
	"net/http"

	"github.com/piotronm/tourney-backend-sub001/services"
)

type ExportHandler struct {
	exportService services.ExportService
}

func NewExportHandler(exportService services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ScheduleHandler handles GET .../schedule/export?format=csv|tsv|xlsx and
// streams the rendered file.
func (h *ExportHandler) ScheduleHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, divisionID, format, err := exportScope(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	file, err := h.exportService.RenderSchedule(r.Context(), tournamentID, divisionID, format)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	streamFile(w, file)
}

// StandingsHandler handles GET .../standings/export?format=csv|tsv|xlsx.
func (h *ExportHandler) StandingsHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, divisionID, format, err := exportScope(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	file, err := h.exportService.RenderStandings(r.Context(), tournamentID, divisionID, format)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	streamFile(w, file)
}

// PublishScheduleHandler handles POST .../schedule/export and uploads the
// file to object storage, returning its public location.
func (h *ExportHandler) PublishScheduleHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, divisionID, format, err := exportScope(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.exportService.PublishSchedule(r.Context(), tournamentID, divisionID, format)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"export": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func exportScope(r *http.Request) (tournamentID, divisionID int, format services.ExportFormat, err error) {
	tournamentID, divisionID, err = divisionScope(r)
	if err != nil {
		return 0, 0, "", err
	}
	format = services.ExportFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = services.ExportCSV
	}
	return tournamentID, divisionID, format, nil
}

func streamFile(w http.ResponseWriter, file *services.ExportFile) {
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}
