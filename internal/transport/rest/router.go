package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/annihlj/AutomationFit/internal/service"
	"github.com/annihlj/AutomationFit/internal/transport/rest/handler"
	"github.com/annihlj/AutomationFit/internal/transport/ws"
)

// Container holds all dependencies for the router.
type Container struct {
	QuestionnaireService *service.QuestionnaireService
	AssessmentService    *service.AssessmentService
	ReportService        *service.ReportService
	WSHub                *ws.Hub
}

// NewRouter creates the API router with all endpoints.
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	questionnaireHandler := handler.NewQuestionnaireHandler(c.QuestionnaireService)
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService)
	reportHandler := handler.NewReportHandler(c.ReportService)
	wsHandler := ws.NewHandler(c.WSHub)

	r.Use(corsMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/questionnaire", questionnaireHandler.GetActive).Methods("GET", "OPTIONS")

	v1.HandleFunc("/assessments", assessmentHandler.Submit).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments", reportHandler.Comparison).Methods("GET", "OPTIONS")
	v1.HandleFunc("/assessments/{assessmentId}", reportHandler.Breakdown).Methods("GET", "OPTIONS")
	v1.HandleFunc("/assessments/{assessmentId}", assessmentHandler.Update).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/assessments/{assessmentId}/recompute", assessmentHandler.Recompute).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments/{assessmentId}/resolve", assessmentHandler.Resolve).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments/{assessmentId}/metrics", assessmentHandler.Metrics).Methods("GET", "OPTIONS")

	v1.HandleFunc("/export/csv", reportHandler.ExportCSV).Methods("GET", "OPTIONS")

	v1.HandleFunc("/ws/comparison", wsHandler.ComparisonFeed).Methods("GET")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
