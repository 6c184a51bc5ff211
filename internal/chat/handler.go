package chat

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/arogyalabs/pharmacy-ai-platform/pkg/logging"
)

// Handler exposes the chat pipeline over HTTP.
type Handler struct {
	orchestrator *Orchestrator
	logs         LogStore
	defaultLang  string
	logger       *logging.Logger
}

// NewHandler creates the chat handler. logs may be nil to disable history.
func NewHandler(orchestrator *Orchestrator, logs LogStore, defaultLang string, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if defaultLang == "" {
		defaultLang = DefaultLanguage
	}
	return &Handler{orchestrator: orchestrator, logs: logs, defaultLang: defaultLang, logger: logger}
}

// ChatRequest is the POST /chat body.
type ChatRequest struct {
	PatientID string `json:"patient_id"`
	Message   string `json:"message"`
	Language  string `json:"language"`
}

// ProcessMessage handles POST /chat.
func (h *Handler) ProcessMessage(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode chat request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.PatientID) == "" || strings.TrimSpace(req.Message) == "" {
		http.Error(w, "patient_id and message are required", http.StatusBadRequest)
		return
	}
	if req.Language == "" {
		req.Language = h.defaultLang
	}

	resp, err := h.orchestrator.ProcessMessage(r.Context(), req.PatientID, req.Message, req.Language)
	if err != nil {
		// The orchestrator already rendered a localized fallback reply;
		// the error is for the log, the reply still goes to the patient.
		h.logger.Error("pipeline error", "error", err, "patient_id", req.PatientID)
	}

	if h.logs != nil {
		if err := h.logs.Append(r.Context(), LogEntry{
			PatientID: req.PatientID,
			Message:   req.Message,
			Reply:     resp.Reply,
			Card:      resp.Card,
			Language:  req.Language,
		}); err != nil {
			h.logger.Error("failed to persist chat log", "error", err, "patient_id", req.PatientID)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// History handles GET /chat/history/{patientID}.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patientID")
	if patientID == "" {
		http.Error(w, "missing patient id", http.StatusBadRequest)
		return
	}
	if h.logs == nil {
		writeJSON(w, http.StatusOK, []LogEntry{})
		return
	}

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	entries, err := h.logs.ListByPatient(r.Context(), patientID, limit)
	if err != nil {
		h.logger.Error("failed to list chat history", "error", err, "patient_id", patientID)
		http.Error(w, "failed to load history", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []LogEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
