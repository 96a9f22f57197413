package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/annihlj/AutomationFit/internal/service"
)

// ReportHandler serves result views and exports.
type ReportHandler struct {
	reportSvc *service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportSvc *service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Breakdown handles GET /v1/assessments/{assessmentId}.
func (h *ReportHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	assessmentID := mux.Vars(r)["assessmentId"]

	view, err := h.reportSvc.Breakdown(r.Context(), assessmentID)
	if err != nil {
		if errors.Is(err, service.ErrAssessmentNotFound) {
			writeError(w, http.StatusNotFound, "assessment not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Comparison handles GET /v1/assessments.
func (h *ReportHandler) Comparison(w http.ResponseWriter, r *http.Request) {
	entries, err := h.reportSvc.Comparison(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"assessments": entries})
}

// ExportCSV handles GET /v1/export/csv.
func (h *ReportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	data, filename, err := h.reportSvc.ExportCSV(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
