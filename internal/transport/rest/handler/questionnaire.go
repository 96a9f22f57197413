package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/annihlj/AutomationFit/internal/service"
)

// QuestionnaireHandler serves the active question graph.
type QuestionnaireHandler struct {
	questionnaireSvc *service.QuestionnaireService
}

// NewQuestionnaireHandler creates a new questionnaire handler.
func NewQuestionnaireHandler(questionnaireSvc *service.QuestionnaireService) *QuestionnaireHandler {
	return &QuestionnaireHandler{questionnaireSvc: questionnaireSvc}
}

// GetActive handles GET /v1/questionnaire.
func (h *QuestionnaireHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	graph, err := h.questionnaireSvc.ActiveGraph(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoActiveQuestionnaire) {
			writeError(w, http.StatusNotFound, "no active questionnaire version")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, graph.Data())
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
