package patients

import "errors"

var (
	ErrDuplicateDNI   = errors.New("duplicate dni")
	ErrDuplicateEmail = errors.New("duplicate email")
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("patient not found")
)
