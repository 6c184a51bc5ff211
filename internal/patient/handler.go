package patient

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arogyalabs/pharmacy-ai-platform/pkg/logging"
)

// Handler exposes patient profiles over HTTP.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates the patient handler.
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// Get handles GET /patients/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pat, err := h.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			http.Error(w, "patient not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get patient", "error", err, "patient_id", id)
		http.Error(w, "failed to load patient", http.StatusInternalServerError)
		return
	}
	respondJSON(w, pat)
}

// UpdateProfile handles PATCH /patients/{id}. Only the fields present in the
// body change.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var update ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	pat, err := h.repo.UpdateProfile(r.Context(), id, update)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			http.Error(w, "patient not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to update patient", "error", err, "patient_id", id)
		http.Error(w, "failed to update patient", http.StatusInternalServerError)
		return
	}

	h.logger.Info("patient profile updated", "patient_id", id)
	respondJSON(w, pat)
}

// SetPrescription handles POST /patients/{id}/prescription, marking a
// verified prescription as on file.
func (h *Handler) SetPrescription(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.repo.SetPrescriptionOnFile(r.Context(), id); err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			http.Error(w, "patient not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to set prescription", "error", err, "patient_id", id)
		http.Error(w, "failed to update patient", http.StatusInternalServerError)
		return
	}

	h.logger.Info("prescription recorded", "patient_id", id)
	respondJSON(w, map[string]string{"status": "prescription on file"})
}

func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
