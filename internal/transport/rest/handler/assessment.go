package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/annihlj/AutomationFit/internal/service"
)

// AssessmentHandler handles assessment submission and recomputation.
type AssessmentHandler struct {
	assessmentSvc *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler.
func NewAssessmentHandler(assessmentSvc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc}
}

// SubmitRequest is the request body for creating or updating an assessment.
type SubmitRequest struct {
	Process service.ProcessInput  `json:"process"`
	Answers []service.AnswerInput `json:"answers"`
}

// Submit handles POST /v1/assessments.
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Process.Name == "" {
		writeError(w, http.StatusBadRequest, "process name is required")
		return
	}

	assessment, total, err := h.assessmentSvc.Submit(r.Context(), req.Process, req.Answers)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveQuestionnaire) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"assessmentId": assessment.ID,
		"total":        total,
	})
}

// Update handles PUT /v1/assessments/{assessmentId}.
func (h *AssessmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	assessmentID := mux.Vars(r)["assessmentId"]

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Process.Name == "" {
		writeError(w, http.StatusBadRequest, "process name is required")
		return
	}

	total, err := h.assessmentSvc.Update(r.Context(), assessmentID, req.Process, req.Answers)
	if err != nil {
		if errors.Is(err, service.ErrAssessmentNotFound) {
			writeError(w, http.StatusNotFound, "assessment not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"assessmentId": assessmentID,
		"total":        total,
	})
}

// Recompute handles POST /v1/assessments/{assessmentId}/recompute.
func (h *AssessmentHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	assessmentID := mux.Vars(r)["assessmentId"]

	total, err := h.assessmentSvc.ComputeResults(r.Context(), assessmentID)
	if err != nil {
		if errors.Is(err, service.ErrAssessmentNotFound) {
			writeError(w, http.StatusNotFound, "assessment not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"assessmentId": assessmentID,
		"total":        total,
	})
}

// Resolve handles POST /v1/assessments/{assessmentId}/resolve.
func (h *AssessmentHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	assessmentID := mux.Vars(r)["assessmentId"]

	report, err := h.assessmentSvc.ResolveApplicability(r.Context(), assessmentID)
	if err != nil {
		if errors.Is(err, service.ErrAssessmentNotFound) {
			writeError(w, http.StatusNotFound, "assessment not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Metrics handles GET /v1/assessments/{assessmentId}/metrics.
func (h *AssessmentHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	assessmentID := mux.Vars(r)["assessmentId"]

	metrics, err := h.assessmentSvc.EconomicMetrics(r.Context(), assessmentID)
	if err != nil {
		if errors.Is(err, service.ErrAssessmentNotFound) {
			writeError(w, http.StatusNotFound, "assessment not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"metrics": metrics})
}
