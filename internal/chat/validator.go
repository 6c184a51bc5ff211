package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arogyalabs/pharmacy-ai-platform/internal/catalog"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/patient"
)

// Validator applies prescription, stock, and allergy rules to candidate
// items for a patient.
type Validator struct {
	patients patient.Repository
	catalog  catalog.Repository
}

// NewValidator creates a safety validator.
func NewValidator(patients patient.Repository, cat catalog.Repository) *Validator {
	return &Validator{patients: patients, catalog: cat}
}

// Validate partitions items into approved and rejected buckets. Rules run
// per item in input order and the first failing rule wins. An unknown
// patient short-circuits the whole call with an empty approved list.
//
// A non-nil error means a store failure, not a business-rule rejection.
func (v *Validator) Validate(ctx context.Context, patientID string, items []CandidateItem) (ValidationResult, error) {
	pat, err := v.patients.Get(ctx, patientID)
	if err != nil {
		if errors.Is(err, patient.ErrPatientNotFound) {
			return ValidationResult{
				OK:      false,
				Message: "Patient not found. Please register first.",
			}, nil
		}
		return ValidationResult{}, fmt.Errorf("chat: validate: %w", err)
	}

	var approved []CandidateItem
	var rejected []RejectedItem

	for _, item := range items {
		product, err := v.catalog.Get(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				rejected = append(rejected, RejectedItem{
					CandidateItem: item,
					Reason:        "Product not found in our database.",
				})
				continue
			}
			return ValidationResult{}, fmt.Errorf("chat: validate: %w", err)
		}

		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}

		if product.PrescriptionRequired && !pat.PrescriptionOnFile {
			rejected = append(rejected, RejectedItem{
				CandidateItem: item,
				Reason:        fmt.Sprintf("%s requires a valid prescription. Please upload one first.", product.Name),
			})
			continue
		}

		if product.Stock < qty {
			rejected = append(rejected, RejectedItem{
				CandidateItem: item,
				Reason:        fmt.Sprintf("Insufficient stock for %s. Available: %d.", product.Name, product.Stock),
			})
			continue
		}

		if pat.IsAllergicTo(product.ActiveIngredient) {
			rejected = append(rejected, RejectedItem{
				CandidateItem: item,
				Reason:        fmt.Sprintf("⚠️ SAFETY ALERT: %s contains %s, which conflicts with your known allergy.", product.Name, product.ActiveIngredient),
			})
			continue
		}

		approved = append(approved, item)
	}

	switch {
	case len(rejected) > 0 && len(approved) == 0:
		return ValidationResult{
			OK:       false,
			Rejected: rejected,
			Message:  "Order cannot proceed: " + joinReasons(rejected),
		}, nil
	case len(rejected) > 0:
		// Partial fulfillment: one disallowed item never blocks the rest.
		return ValidationResult{
			OK:       true,
			Approved: approved,
			Rejected: rejected,
			Message:  fmt.Sprintf("Some items were removed: %s. Proceeding with approved items.", joinReasons(rejected)),
		}, nil
	default:
		return ValidationResult{
			OK:       true,
			Approved: approved,
			Message:  "All items passed safety checks. Ready to order.",
		}, nil
	}
}

func joinReasons(rejected []RejectedItem) string {
	reasons := make([]string, len(rejected))
	for i, r := range rejected {
		reasons[i] = r.Reason
	}
	return strings.Join(reasons, "; ")
}
