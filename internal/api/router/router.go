// Package router assembles the HTTP surface of the pharmacy API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/arogyalabs/pharmacy-ai-platform/internal/catalog"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/chat"
	httpmiddleware "github.com/arogyalabs/pharmacy-ai-platform/internal/http/middleware"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/orders"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/patient"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/refill"
	"github.com/arogyalabs/pharmacy-ai-platform/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	ChatHandler        *chat.Handler
	CatalogHandler     *catalog.Handler
	PatientHandler     *patient.Handler
	OrdersHandler      *orders.Handler
	RefillHandler      *refill.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.ChatHandler != nil {
		r.Post("/chat", cfg.ChatHandler.ProcessMessage)
		r.Get("/chat/history/{patientID}", cfg.ChatHandler.History)
	}

	if cfg.CatalogHandler != nil {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", cfg.CatalogHandler.List)
			r.Get("/search", cfg.CatalogHandler.Search)
		})
	}

	if cfg.PatientHandler != nil {
		r.Route("/patients/{id}", func(r chi.Router) {
			r.Get("/", cfg.PatientHandler.Get)
			r.Patch("/", cfg.PatientHandler.UpdateProfile)
			r.Post("/prescription", cfg.PatientHandler.SetPrescription)
		})
	}

	if cfg.OrdersHandler != nil {
		r.Get("/orders/patient/{id}", cfg.OrdersHandler.ListByPatient)
	}

	if cfg.RefillHandler != nil {
		r.Get("/alerts/refill", cfg.RefillHandler.ListAlerts)
	}

	return r
}
