package patient

import "errors"

var (
	// ErrPatientNotFound is returned when a patient id or email does not resolve.
	ErrPatientNotFound = errors.New("patient not found")
)
