// Package patient manages patient profiles: contact details, known
// allergies, and the prescription-on-file flag the safety checks rely on.
package patient

import "strings"

// Patient is a registered pharmacy customer.
type Patient struct {
	ID                 string   `json:"patient_id"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Phone              string   `json:"phone"`
	PreferredLanguage  string   `json:"preferred_language"`
	Allergies          []string `json:"allergies"`
	PrescriptionOnFile bool     `json:"prescription_on_file"`
}

// IsAllergicTo reports whether ingredient matches a recorded allergy.
// Comparison is case-insensitive.
func (p *Patient) IsAllergicTo(ingredient string) bool {
	for _, a := range p.Allergies {
		if strings.EqualFold(a, ingredient) {
			return true
		}
	}
	return false
}

// ProfileUpdate carries optional profile fields; nil means leave unchanged.
type ProfileUpdate struct {
	Name      *string   `json:"name,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Language  *string   `json:"preferred_language,omitempty"`
	Allergies *[]string `json:"allergies,omitempty"`
}
