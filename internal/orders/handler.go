package orders

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arogyalabs/pharmacy-ai-platform/pkg/logging"
)

// Handler exposes order history over HTTP. Placement happens through the
// chat confirmation flow, not here.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates the orders handler.
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// ListByPatient handles GET /orders/patient/{id}.
func (h *Handler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	history, err := h.repo.ListByPatient(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to list orders", "error", err, "patient_id", id)
		http.Error(w, "failed to load orders", http.StatusInternalServerError)
		return
	}
	if history == nil {
		history = []Order{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(history)
}
