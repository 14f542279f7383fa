package appointments

import "errors"

var (
	// ErrOverlap means the requested time range intersects another scheduled
	// appointment for the same kinesiologist (HTTP 409 on the wire).
	ErrOverlap = errors.New("appointment overlaps an existing one")

	ErrNotFound   = errors.New("appointment not found")
	ErrValidation = errors.New("validation error")
)
