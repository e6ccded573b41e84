package http

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"mock-interview-service/internal/app"
	"mock-interview-service/internal/domain"
)

// Executor runs candidate code remotely.
type Executor interface {
	Execute(ctx context.Context, language, code string) (json.RawMessage, error)
}

// Evaluator produces scores and reports.
type Evaluator interface {
	Evaluate(ctx context.Context, rec domain.ParticipantRecord) domain.DetailedReport
	GenerateDetailedReport(ctx context.Context, eval domain.ParticipantEvaluation) domain.DetailedReport
	EvaluateVoice(ctx context.Context, sub domain.VoiceSubmission) domain.VoiceQuestionScore
}

// Container holds all dependencies for the router. A nil Executor answers 503.
type Container struct {
	Coordinator *app.Coordinator
	Evaluator   Evaluator
	Executor    Executor
	Questions   app.QuestionBank
	WS          *WSHandler
	PublicURL   string
}

// NewRouter creates the HTTP surface: REST endpoints plus the /ws upgrade.
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()
	r.Use(corsMiddleware)

	h := &restHandler{
		coordinator: c.Coordinator,
		evaluator:   c.Evaluator,
		executor:    c.Executor,
		questions:   c.Questions,
		publicURL:   c.PublicURL,
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	if c.WS != nil {
		r.HandleFunc("/ws", c.WS.ServeWS).Methods("GET")
	}

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/rooms", h.listRooms).Methods("GET", "OPTIONS")
	api.HandleFunc("/rooms/{roomId}", h.roomExists).Methods("GET", "OPTIONS")
	api.HandleFunc("/rooms/{roomId}/participants/{name}/evaluation", h.participantEvaluation).Methods("GET", "OPTIONS")
	api.HandleFunc("/evaluate/detailed", h.evaluateDetailed).Methods("POST", "OPTIONS")
	api.HandleFunc("/evaluate/voice", h.evaluateVoice).Methods("POST", "OPTIONS")
	api.HandleFunc("/evaluate/dsa", h.evaluateDSA).Methods("POST", "OPTIONS")
	api.HandleFunc("/execute", h.execute).Methods("POST", "OPTIONS")
	api.HandleFunc("/question-sets/{difficulty}", h.questionSet).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
