// Package chat implements the conversational order-intake pipeline: intent
// extraction, safety validation, and response orchestration.
package chat

// CandidateItem is a tentative order line produced by text extraction. It is
// not persisted; it lives only within one pipeline invocation (or in the
// pending-order store while awaiting confirmation).
type CandidateItem struct {
	ProductID            string `json:"product_id"`
	ProductName          string `json:"product_name"`
	Quantity             int    `json:"qty"`
	UnitPriceCents       int64  `json:"price_cents"`
	PrescriptionRequired bool   `json:"prescription_required"`
}

// UnitPrice returns the snapshot unit price in rupees.
func (c CandidateItem) UnitPrice() float64 {
	return float64(c.UnitPriceCents) / 100
}

// LineTotalCents returns quantity times unit price.
func (c CandidateItem) LineTotalCents() int64 {
	qty := c.Quantity
	if qty < 1 {
		qty = 1
	}
	return c.UnitPriceCents * int64(qty)
}

// RejectedItem pairs a candidate with the reason it was rejected.
type RejectedItem struct {
	CandidateItem
	Reason string `json:"reason"`
}

// ValidationResult partitions candidates into approved and rejected buckets.
// Every input item lands in exactly one bucket, keeping its original
// relative order within that bucket.
type ValidationResult struct {
	OK       bool            `json:"approved"`
	Approved []CandidateItem `json:"items"`
	Rejected []RejectedItem  `json:"rejected,omitempty"`
	Message  string          `json:"message"`
}

// Card types attached to replies.
const (
	CardOrderConfirmation = "order_confirmation"
	CardSafetyAlert       = "safety_alert"
	CardOrderStatus       = "order_status"
)

// Card is the structured payload accompanying a chat reply, rendered by the
// caller as a UI widget.
type Card struct {
	Type          string          `json:"type"`
	Status        string          `json:"status,omitempty"`
	Message       string          `json:"message,omitempty"`
	ProductID     string          `json:"product_id,omitempty"`
	ProductName   string          `json:"product_name,omitempty"`
	PriceCents    int64           `json:"price_cents,omitempty"`
	Quantity      int             `json:"quantity,omitempty"`
	TotalCents    int64           `json:"total_cents,omitempty"`
	Items         []CandidateItem `json:"items,omitempty"`
	RejectedItems []RejectedItem  `json:"rejected_items,omitempty"`
	OrderIDs      []string        `json:"order_ids,omitempty"`
}

// Response is what ProcessMessage returns to the caller.
type Response struct {
	Reply string `json:"reply"`
	Card  *Card  `json:"card_data,omitempty"`
}
