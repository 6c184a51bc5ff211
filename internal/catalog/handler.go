package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/arogyalabs/pharmacy-ai-platform/pkg/logging"
)

// Handler exposes the product catalog over HTTP.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates the catalog handler.
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /products.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		http.Error(w, "failed to load products", http.StatusInternalServerError)
		return
	}
	writeProducts(w, products)
}

// Search handles GET /products/search?q=...&category=...
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	if q == "" && category == "" {
		http.Error(w, "q or category query parameter required", http.StatusBadRequest)
		return
	}

	products, err := h.repo.Search(r.Context(), q, category)
	if err != nil {
		h.logger.Error("product search failed", "error", err, "query", q)
		http.Error(w, "search failed", http.StatusInternalServerError)
		return
	}
	writeProducts(w, products)
}

func writeProducts(w http.ResponseWriter, products []Product) {
	if products == nil {
		products = []Product{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(products)
}
