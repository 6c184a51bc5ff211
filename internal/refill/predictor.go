// Package refill predicts when patients run out of their medicines and
// raises alerts ahead of the run-out date.
package refill

import (
	"context"
	"fmt"
	"time"

	"github.com/arogyalabs/pharmacy-ai-platform/internal/orders"
)

// DefaultDaysThreshold is how far ahead of the run-out date an alert fires.
const DefaultDaysThreshold = 7

// unknownFrequencyDays is the per-unit supply assumed for frequencies the
// table doesn't know.
const unknownFrequencyDays = 1.0

// frequencyDaysPerUnit maps a dosage frequency to how many days one unit
// lasts. "as_needed" assumes sporadic use, roughly one dose every three days.
var frequencyDaysPerUnit = map[string]float64{
	"once_daily":        1,
	"twice_daily":       0.5,
	"three_times_daily": 1.0 / 3,
	"once_weekly":       7,
	"as_needed":         3,
}

// Alert says a patient's supply of a product runs out on RunOutDate.
type Alert struct {
	ID            string    `json:"id"`
	PatientID     string    `json:"patient_id"`
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name"`
	OrderID       string    `json:"order_id"`
	RunOutDate    time.Time `json:"run_out_date"`
	DaysRemaining int       `json:"days_remaining"`
	CreatedAt     time.Time `json:"created_at"`
}

// OrderLister is the slice of the order store the predictor reads.
type OrderLister interface {
	List(ctx context.Context) ([]orders.Order, error)
}

// Predictor derives upcoming run-outs from order history.
type Predictor struct {
	orders        OrderLister
	daysThreshold int
	now           func() time.Time
}

// NewPredictor creates a predictor over the given order history.
func NewPredictor(orderStore OrderLister) *Predictor {
	return &Predictor{orders: orderStore, daysThreshold: DefaultDaysThreshold, now: time.Now}
}

// WithDaysThreshold overrides how far ahead alerts fire.
func (p *Predictor) WithDaysThreshold(days int) *Predictor {
	if days > 0 {
		p.daysThreshold = days
	}
	return p
}

// WithClock overrides the time source; used by tests.
func (p *Predictor) WithClock(now func() time.Time) *Predictor {
	if now != nil {
		p.now = now
	}
	return p
}

// Predict scans order history and returns an alert for every
// (patient, product) whose projected supply runs out within the configured
// threshold. Only the most recent purchase per pair counts; a newer order
// resets the supply window.
func (p *Predictor) Predict(ctx context.Context) ([]Alert, error) {
	return p.PredictWithin(ctx, p.daysThreshold)
}

// PredictWithin is Predict with an explicit look-ahead window. A pure
// projection: no alert is stored or sent.
func (p *Predictor) PredictWithin(ctx context.Context, daysThreshold int) ([]Alert, error) {
	if daysThreshold <= 0 {
		daysThreshold = p.daysThreshold
	}
	history, err := p.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("refill: list orders: %w", err)
	}

	latest := make(map[string]orders.Order)
	for _, o := range history {
		if o.Status == orders.StatusFailed {
			continue
		}
		key := o.PatientID + "|" + o.ProductID
		if prev, ok := latest[key]; !ok || o.PurchasedAt.After(prev.PurchasedAt) {
			latest[key] = o
		}
	}

	now := p.now().UTC()
	horizon := now.AddDate(0, 0, daysThreshold)

	var alerts []Alert
	for _, o := range latest {
		runOut := RunOutDate(o)
		if runOut.After(horizon) {
			continue
		}
		alerts = append(alerts, Alert{
			PatientID:     o.PatientID,
			ProductID:     o.ProductID,
			ProductName:   o.ProductName,
			OrderID:       o.ID,
			RunOutDate:    runOut,
			DaysRemaining: daysRemaining(now, runOut),
			CreatedAt:     now,
		})
	}
	return alerts, nil
}

// RunOutDate projects when the order's supply is exhausted: quantity times
// the per-unit days for its dosage frequency, added to the purchase time.
func RunOutDate(o orders.Order) time.Time {
	perUnit, ok := frequencyDaysPerUnit[o.DosageFrequency]
	if !ok {
		perUnit = unknownFrequencyDays
	}
	qty := o.Quantity
	if qty < 1 {
		qty = 1
	}
	supply := time.Duration(float64(qty) * perUnit * 24 * float64(time.Hour))
	return o.PurchasedAt.Add(supply)
}

// daysRemaining counts whole days from now to runOut, clamped at zero so an
// already-exhausted supply reads "0 days" rather than a negative count.
func daysRemaining(now, runOut time.Time) int {
	d := int(runOut.Sub(now).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
