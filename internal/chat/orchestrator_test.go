package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyalabs/pharmacy-ai-platform/internal/catalog"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/orders"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/patient"
)

type recordingNotifier struct {
	patientID string
	placed    []orders.Order
}

func (n *recordingNotifier) NotifyOrderConfirmed(_ context.Context, patientID string, placed []orders.Order) error {
	n.patientID = patientID
	n.placed = placed
	return nil
}

type orchestratorFixture struct {
	orchestrator *Orchestrator
	catalog      *catalog.InMemoryRepository
	pending      *MemoryPendingStore
	notifier     *recordingNotifier
}

func newOrchestratorFixture(t *testing.T) *orchestratorFixture {
	t.Helper()

	cat := catalog.NewInMemoryRepository(catalog.DemoProducts())
	patients := patient.NewInMemoryRepository(patient.DemoPatients())
	pending := NewMemoryPendingStore()
	orderSvc := orders.NewService(orders.NewInMemoryRepository(cat), cat, nil)
	notifier := &recordingNotifier{}

	return &orchestratorFixture{
		orchestrator: NewOrchestrator(cat, NewValidator(patients, cat), pending, orderSvc, notifier, nil, nil),
		catalog:      cat,
		pending:      pending,
		notifier:     notifier,
	}
}

func TestProcessMessage_Greeting(t *testing.T) {
	f := newOrchestratorFixture(t)

	for _, msg := range []string{"hello", "Hello!", "HEY", "good morning"} {
		resp, err := f.orchestrator.ProcessMessage(context.Background(), "PAT003", msg, "en")
		require.NoError(t, err)
		assert.Equal(t, templates["en"].Greeting, resp.Reply, "message %q", msg)
		assert.Nil(t, resp.Card)
	}
}

func TestProcessMessage_GreetingBeatsFuzzyMatch(t *testing.T) {
	f := newOrchestratorFixture(t)

	// "hello" could fuzzy-match a catalog entry; the exact-match greeting
	// check runs first.
	resp, err := f.orchestrator.ProcessMessage(context.Background(), "PAT003", "hello", "en")
	require.NoError(t, err)
	assert.Equal(t, templates["en"].Greeting, resp.Reply)
}

func TestProcessMessage_GreetingLocalized(t *testing.T) {
	f := newOrchestratorFixture(t)

	resp, err := f.orchestrator.ProcessMessage(context.Background(), "PAT003", "नमस्ते", "hi")
	require.NoError(t, err)
	assert.Equal(t, templates["hi"].Greeting, resp.Reply)

	resp, err = f.orchestrator.ProcessMessage(context.Background(), "PAT001", "नमस्कार", "mr")
	require.NoError(t, err)
	assert.Equal(t, templates["mr"].Greeting, resp.Reply)
}

func TestProcessMessage_UnsupportedLanguageFallsBackToEnglish(t *testing.T) {
	f := newOrchestratorFixture(t)

	resp, err := f.orchestrator.ProcessMessage(context.Background(), "PAT003", "hello", "ta")
	require.NoError(t, err)
	assert.Equal(t, templates["en"].Greeting, resp.Reply)
}

func TestProcessMessage_Help(t *testing.T) {
	f := newOrchestratorFixture(t)

	resp, err := f.orchestrator.ProcessMessage(context.Background(), "PAT003", "what can you do for me?", "en")
	require.NoError(t, err)
	assert.Equal(t, templates["en"].Help, resp.Reply)
	assert.Nil(t, resp.Card)
}

func TestProcessMessage_OrderProposal(t *testing.T) {
	f := newOrchestratorFixture(t)

	resp, err := f.orchestrator.ProcessMessage(context.Background(), "PAT003", "I need 2 Dolo 650", "en")
	require.NoError(t, err)

	assert.Contains(t, resp.Reply, "Dolo 650")
	require.NotNil(t, resp.Card)
	assert.Equal(t, CardOrderConfirmation, resp.Card.Type)
	assert.Equal(t, "MED001", resp.Card.ProductID)
	assert.Equal(t, 2, resp.Card.Quantity)
	assert.Equal(t, int64(6400), resp.Card.TotalCents)

	pending, err := f.pending.Pop(context.Background(), "PAT003")
	require.NoError(t, err)
	require.NotNil(t, pending, "proposal must await confirmation")
	require.Len(t, pending.Items, 1)
	assert.Equal(t, "MED001", pending.Items[0].ProductID)
}

func TestProcessMessage_OrderProposalDoesNotTouchStock(t *testing.T) {
	f := newOrchestratorFixture(t)

	_, err := f.orchestrator.ProcessMessage(context.Background(), "PAT003", "I need 2 Dolo 650", "en")
	require.NoError(t, err)

	p, err := f.catalog.Get(context.Background(), "MED001")
	require.NoError(t, err)
	assert.Equal(t, 180, p.Stock, "stock changes only on confirmation")
}

func TestProcessMessage_SafetyAlert(t *testing.T) {
	f := newOrchestratorFixture(t)

	// PAT002 has no prescription on file.
	resp, err := f.orchestrator.ProcessMessage(context.Background(), "PAT002", "i need metformin", "en")
	require.NoError(t, err)

	assert.Contains(t, resp.Reply, "⚠️")
	require.NotNil(t, resp.Card)
	assert.Equal(t, CardSafetyAlert, resp.Card.Type)
	require.Len(t, resp.Card.RejectedItems, 1)

	pending, err := f.pending.Pop(context.Background(), "PAT002")
	require.NoError(t, err)
	assert.Nil(t, pending, "a fully rejected order must not become pending")
}

func TestProcessMessage_PartialApprovalNotesRejections(t *testing.T) {
	f := newOrchestratorFixture(t)

	// PAT001 is allergic to Ibuprofen; Dolo 650 passes.
	resp, err := f.orchestrator.ProcessMessage(context.Background(), "PAT001", "dolo 650 and ibuprofen 400mg", "en")
	require.NoError(t, err)

	assert.Contains(t, resp.Reply, "Dolo 650")
	assert.Contains(t, resp.Reply, "could not be added")
	require.NotNil(t, resp.Card)
	assert.Equal(t, CardOrderConfirmation, resp.Card.Type)
	require.Len(t, resp.Card.Items, 1)
	assert.Equal(t, "MED001", resp.Card.Items[0].ProductID)
}

func TestProcessMessage_NotFound(t *testing.T) {
	f := newOrchestratorFixture(t)

	resp, err := f.orchestrator.ProcessMessage(context.Background(), "PAT003", "qwertyuiop zxcvbnm", "en")
	require.NoError(t, err)
	assert.Equal(t, templates["en"].NotFound, resp.Reply)
	assert.Nil(t, resp.Card)
}

func TestProcessMessage_ConfirmPlacesOrder(t *testing.T) {
	f := newOrchestratorFixture(t)
	ctx := context.Background()

	_, err := f.orchestrator.ProcessMessage(ctx, "PAT003", "I need 2 Dolo 650", "en")
	require.NoError(t, err)

	resp, err := f.orchestrator.ProcessMessage(ctx, "PAT003", "yes, confirm", "en")
	require.NoError(t, err)

	assert.Equal(t, templates["en"].Confirmed, resp.Reply)
	require.NotNil(t, resp.Card)
	assert.Equal(t, CardOrderStatus, resp.Card.Type)
	assert.Equal(t, orders.StatusConfirmed, resp.Card.Status)
	assert.Equal(t, int64(6400), resp.Card.TotalCents)
	require.Len(t, resp.Card.OrderIDs, 1)

	p, err := f.catalog.Get(ctx, "MED001")
	require.NoError(t, err)
	assert.Equal(t, 178, p.Stock)

	assert.Equal(t, "PAT003", f.notifier.patientID)
	require.Len(t, f.notifier.placed, 1)
	assert.Equal(t, "MED001", f.notifier.placed[0].ProductID)
}

func TestProcessMessage_ConfirmConsumesPendingOrder(t *testing.T) {
	f := newOrchestratorFixture(t)
	ctx := context.Background()

	_, err := f.orchestrator.ProcessMessage(ctx, "PAT003", "I need dolo 650", "en")
	require.NoError(t, err)

	_, err = f.orchestrator.ProcessMessage(ctx, "PAT003", "confirm", "en")
	require.NoError(t, err)

	resp, err := f.orchestrator.ProcessMessage(ctx, "PAT003", "confirm", "en")
	require.NoError(t, err)
	assert.Equal(t, templates["en"].NothingToConfirm, resp.Reply, "a proposal confirms at most once")
}

func TestProcessMessage_ConfirmWithoutPending(t *testing.T) {
	f := newOrchestratorFixture(t)

	resp, err := f.orchestrator.ProcessMessage(context.Background(), "PAT003", "confirm", "en")
	require.NoError(t, err)
	assert.Equal(t, templates["en"].NothingToConfirm, resp.Reply)
	assert.Nil(t, resp.Card)
}

func TestProcessMessage_ConfirmFailsWhenStockGone(t *testing.T) {
	f := newOrchestratorFixture(t)
	ctx := context.Background()

	_, err := f.orchestrator.ProcessMessage(ctx, "PAT003", "I need dolo 650", "en")
	require.NoError(t, err)

	// Stock disappears between proposal and confirmation.
	require.NoError(t, f.catalog.UpdateStock(ctx, "MED001", 0))

	resp, err := f.orchestrator.ProcessMessage(ctx, "PAT003", "confirm", "en")
	require.NoError(t, err)

	require.NotNil(t, resp.Card)
	assert.Equal(t, CardSafetyAlert, resp.Card.Type)
	assert.Contains(t, resp.Reply, "could not be")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"hello", IntentGreeting},
		{"hello!", IntentGreeting},
		{"hello there, i need dolo", IntentOrder},
		{"help", IntentHelp},
		{"can you help me", IntentHelp},
		{"yes please", IntentConfirm},
		{"confirm the order", IntentConfirm},
		{"i need paracetamol", IntentOrder},
		{"", IntentOrder},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.message))
		})
	}
}
