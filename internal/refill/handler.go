package refill

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/arogyalabs/pharmacy-ai-platform/pkg/logging"
)

// Handler exposes refill alerts over HTTP: stored alerts by default, an
// on-demand projection when a look-ahead window is given.
type Handler struct {
	store     AlertStore
	predictor *Predictor
	logger    *logging.Logger
}

// NewHandler creates the alerts handler. predictor may be nil, which disables
// on-demand projection.
func NewHandler(store AlertStore, predictor *Predictor, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, predictor: predictor, logger: logger}
}

// ListAlerts handles GET /alerts/refill. With ?days=N the response is a fresh
// projection over order history within N days (nothing stored or sent);
// otherwise it lists stored alerts. An optional patient_id query param
// narrows either result to one patient.
func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	patientID := r.URL.Query().Get("patient_id")

	if raw := r.URL.Query().Get("days"); raw != "" && h.predictor != nil {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 {
			http.Error(w, "days must be a positive integer", http.StatusBadRequest)
			return
		}
		alerts, err := h.predictor.PredictWithin(r.Context(), days)
		if err != nil {
			h.logger.Error("refill projection failed", "error", err)
			http.Error(w, "failed to compute alerts", http.StatusInternalServerError)
			return
		}
		if patientID != "" {
			filtered := alerts[:0]
			for _, a := range alerts {
				if a.PatientID == patientID {
					filtered = append(filtered, a)
				}
			}
			alerts = filtered
		}
		writeAlerts(w, alerts)
		return
	}

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	var (
		alerts []Alert
		err    error
	)
	if patientID != "" {
		alerts, err = h.store.ListByPatient(r.Context(), patientID, limit)
	} else {
		alerts, err = h.store.List(r.Context(), limit)
	}
	if err != nil {
		h.logger.Error("failed to list refill alerts", "error", err)
		http.Error(w, "failed to load alerts", http.StatusInternalServerError)
		return
	}
	writeAlerts(w, alerts)
}

func writeAlerts(w http.ResponseWriter, alerts []Alert) {
	if alerts == nil {
		alerts = []Alert{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(alerts)
}
