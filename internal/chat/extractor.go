package chat

import (
	"regexp"
	"strconv"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/arogyalabs/pharmacy-ai-platform/internal/catalog"
)

// fuzzyMatchThreshold is the minimum partial-ratio score (0–100) for a
// product name to count as mentioned in a message.
const fuzzyMatchThreshold = 75

// maxQuantityToken excludes dosage strengths ("650", "500mg") from quantity
// inference: any integer at or above it is assumed to be a strength, not a
// count.
const maxQuantityToken = 100

var integerTokens = regexp.MustCompile(`\d+`)

// Extract parses a natural-language message into candidate order items.
//
// Two passes run over the lowercased message: a fuzzy match against every
// catalog product name, then a symptom-keyword lookup. Results keep
// first-discovered order and each product appears at most once. An empty
// result means the message mentioned nothing recognizable.
func Extract(message string, products []catalog.Product) []CandidateItem {
	messageLower := strings.ToLower(message)

	var found []CandidateItem
	matched := make(map[string]struct{})

	// Pass 1: fuzzy product-name matching.
	for _, p := range products {
		if _, ok := matched[p.ID]; ok {
			continue
		}
		score := fuzzy.PartialRatio(strings.ToLower(p.Name), messageLower)
		if score < fuzzyMatchThreshold {
			continue
		}
		found = append(found, CandidateItem{
			ProductID:            p.ID,
			ProductName:          p.Name,
			Quantity:             extractQuantity(messageLower),
			UnitPriceCents:       p.PriceCents,
			PrescriptionRequired: p.PrescriptionRequired,
		})
		matched[p.ID] = struct{}{}
	}

	// Pass 2: symptom/condition keywords. Only the first not-yet-matched
	// product per keyword is added, so synonyms don't flood the result.
	for _, m := range symptomMappings {
		if !strings.Contains(messageLower, m.Keyword) {
			continue
		}
		for _, name := range m.Products {
			p := findByName(products, name)
			if p == nil {
				continue
			}
			if _, ok := matched[p.ID]; ok {
				continue
			}
			found = append(found, CandidateItem{
				ProductID:            p.ID,
				ProductName:          p.Name,
				Quantity:             1,
				UnitPriceCents:       p.PriceCents,
				PrescriptionRequired: p.PrescriptionRequired,
			})
			matched[p.ID] = struct{}{}
			break
		}
	}

	return found
}

// extractQuantity returns the first integer token below maxQuantityToken,
// defaulting to 1. A deliberately conservative heuristic: "order 3 Dolo 650"
// reads quantity 3 and skips the 650 strength.
func extractQuantity(messageLower string) int {
	for _, tok := range integerTokens.FindAllString(messageLower, -1) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		if n > 0 && n < maxQuantityToken {
			return n
		}
	}
	return 1
}

func findByName(products []catalog.Product, name string) *catalog.Product {
	for i := range products {
		if products[i].Name == name {
			return &products[i]
		}
	}
	return nil
}
