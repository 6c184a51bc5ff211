// Package catalog provides read access to the pharmacy product catalog and
// the stock-adjustment operations used by order placement.
package catalog

// Product is a single catalog entry.
type Product struct {
	ID                   string `json:"product_id"`
	Name                 string `json:"product_name"`
	ActiveIngredient     string `json:"active_ingredient"`
	Category             string `json:"category"`
	PriceCents           int64  `json:"price_cents"`
	Stock                int    `json:"stock_quantity"`
	PrescriptionRequired bool   `json:"prescription_required"`
}

// Price returns the unit price in rupees.
func (p Product) Price() float64 {
	return float64(p.PriceCents) / 100
}
