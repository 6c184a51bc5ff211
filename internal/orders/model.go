// Package orders creates and tracks medicine orders. Placement decrements
// catalog stock and inserts the order as one logical unit.
package orders

import "time"

// Order statuses. Orders are created in StatusConfirmed and move through the
// rest via administrative action or fulfillment outcome.
const (
	StatusConfirmed  = "confirmed"
	StatusProcessing = "processing"
	StatusDelivered  = "delivered"
	StatusFailed     = "failed"
)

// DefaultDosageFrequency is recorded when the chat flow has no dosing info.
const DefaultDosageFrequency = "as_needed"

// Order is a placed order for a single product.
type Order struct {
	ID              string    `json:"order_id"`
	PatientID       string    `json:"patient_id"`
	ProductID       string    `json:"product_id"`
	ProductName     string    `json:"product_name"`
	Quantity        int       `json:"quantity"`
	TotalCents      int64     `json:"total_cents"`
	DosageFrequency string    `json:"dosage_frequency"`
	Status          string    `json:"status"`
	PurchasedAt     time.Time `json:"purchased_at"`
}

// Total returns the order total in rupees.
func (o Order) Total() float64 {
	return float64(o.TotalCents) / 100
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch s {
	case StatusConfirmed, StatusProcessing, StatusDelivered, StatusFailed:
		return true
	}
	return false
}
