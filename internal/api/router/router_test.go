package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyalabs/pharmacy-ai-platform/internal/catalog"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/chat"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/orders"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/patient"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/refill"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cat := catalog.NewInMemoryRepository(catalog.DemoProducts())
	patients := patient.NewInMemoryRepository(patient.DemoPatients())
	orderRepo := orders.NewInMemoryRepository(cat)
	orderSvc := orders.NewService(orderRepo, cat, nil)

	orchestrator := chat.NewOrchestrator(
		cat,
		chat.NewValidator(patients, cat),
		chat.NewMemoryPendingStore(),
		orderSvc,
		nil, nil, nil,
	)

	return New(&Config{
		ChatHandler:    chat.NewHandler(orchestrator, chat.NewMemoryLogStore(), "en", nil),
		CatalogHandler: catalog.NewHandler(cat, nil),
		PatientHandler: patient.NewHandler(patients, nil),
		OrdersHandler:  orders.NewHandler(orderRepo, nil),
		RefillHandler:  refill.NewHandler(refill.NewMemoryAlertStore(), refill.NewPredictor(orderRepo), nil),
	})
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestChatRoundTrip(t *testing.T) {
	r := newTestRouter(t)

	// Propose.
	body := `{"patient_id":"PAT003","message":"I need 2 Dolo 650","language":"en"}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp chat.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Card)
	assert.Equal(t, chat.CardOrderConfirmation, resp.Card.Type)

	// Confirm.
	body = `{"patient_id":"PAT003","message":"confirm","language":"en"}`
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Card)
	assert.Equal(t, chat.CardOrderStatus, resp.Card.Type)

	// Order history now has the order.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/patient/PAT003", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var history []orders.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, "MED001", history[0].ProductID)
	assert.Equal(t, 2, history[0].Quantity)

	// Both chat turns are in the transcript.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chat/history/PAT003", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []chat.LogEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Len(t, entries, 2)
}

func TestChat_BadRequest(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":""}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader("not json")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProducts(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var products []catalog.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, len(catalog.DemoProducts()))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/search?q=paracetamol", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.Equal(t, "Paracetamol", p.ActiveIngredient)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/search", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatients(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/patients/PAT001", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var pat patient.Patient
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pat))
	assert.Equal(t, "Ravi Deshmukh", pat.Name)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/patients/PAT404", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Partial profile update.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/patients/PAT001",
		strings.NewReader(`{"preferred_language":"en"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pat))
	assert.Equal(t, "en", pat.PreferredLanguage)
	assert.Equal(t, "Ravi Deshmukh", pat.Name, "unspecified fields stay put")

	// Prescription upload.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/patients/PAT002/prescription", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/patients/PAT002", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pat))
	assert.True(t, pat.PrescriptionOnFile)
}

func TestRefillAlertsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/alerts/refill", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var alerts []refill.Alert
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alerts))
	assert.Empty(t, alerts)
}
