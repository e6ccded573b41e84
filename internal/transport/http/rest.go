package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"mock-interview-service/internal/app"
	"mock-interview-service/internal/domain"
	"mock-interview-service/internal/evaluation"
	"mock-interview-service/internal/executor"
	"mock-interview-service/internal/scoring"
)

const maxBodyBytes = 1 << 20

type restHandler struct {
	coordinator *app.Coordinator
	evaluator   Evaluator
	executor    Executor
	questions   app.QuestionBank
	publicURL   string
}

func (h *restHandler) listRooms(w http.ResponseWriter, r *http.Request) {
	rooms := h.coordinator.List()
	base := strings.TrimRight(h.publicURL, "/")
	for i := range rooms {
		rooms[i].Link = base + rooms[i].Link
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (h *restHandler) roomExists(w http.ResponseWriter, r *http.Request) {
	if !h.coordinator.Exists(mux.Vars(r)["roomId"]) {
		writeJSON(w, http.StatusNotFound, map[string]any{"exists": false, "message": "Room not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"exists": true})
}

func (h *restHandler) participantEvaluation(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	room, participant, err := h.coordinator.Participant(vars["roomId"], vars["name"])
	switch {
	case errors.Is(err, domain.ErrRoomNotFound), errors.Is(err, domain.ErrParticipantNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.evaluator.Evaluate(r.Context(), evaluation.AssembleRecord(room, participant)))
}

type detailedRequest struct {
	ParticipantData *domain.ParticipantEvaluation `json:"participantData"`
}

func (h *restHandler) evaluateDetailed(w http.ResponseWriter, r *http.Request) {
	var req detailedRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ParticipantData == nil {
		writeError(w, http.StatusBadRequest, "participantData is required")
		return
	}
	writeJSON(w, http.StatusOK, h.evaluator.GenerateDetailedReport(r.Context(), *req.ParticipantData))
}

func (h *restHandler) evaluateVoice(w http.ResponseWriter, r *http.Request) {
	var sub domain.VoiceSubmission
	if !decodeBody(w, r, &sub) {
		return
	}
	if strings.TrimSpace(sub.Question) == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}
	writeJSON(w, http.StatusOK, h.evaluator.EvaluateVoice(r.Context(), sub))
}

func (h *restHandler) evaluateDSA(w http.ResponseWriter, r *http.Request) {
	var sub domain.DSASubmission
	if !decodeBody(w, r, &sub) {
		return
	}
	if sub.MaxTime <= 0 {
		sub.MaxTime = evaluation.DefaultMaxTime
	}
	writeJSON(w, http.StatusOK, scoring.EvaluateDSA(sub))
}

type executeRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

func (h *restHandler) execute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Language == "" || req.Code == "" {
		writeError(w, http.StatusBadRequest, "language and code are required")
		return
	}
	if h.executor == nil {
		writeError(w, http.StatusServiceUnavailable, "code execution is not configured")
		return
	}

	out, err := h.executor.Execute(r.Context(), req.Language, req.Code)
	switch {
	case err == nil:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(out)
	case errors.Is(err, executor.ErrUnsupportedLanguage):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Warn().Str("module", "rest").Str("language", req.Language).Err(err).Msg("execution failed")
		writeError(w, http.StatusBadGateway, "code execution failed")
	}
}

func (h *restHandler) questionSet(w http.ResponseWriter, r *http.Request) {
	if h.questions == nil {
		writeError(w, http.StatusServiceUnavailable, "question bank is not configured")
		return
	}
	set, err := h.questions.QuestionSet(r.Context(), mux.Vars(r)["difficulty"])
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, set)
	case errors.Is(err, domain.ErrQuestionSetNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		log.Error().Str("module", "rest").Err(err).Msg("load question set")
		writeError(w, http.StatusInternalServerError, "failed to load question set")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
