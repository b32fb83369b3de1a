package certificates

import "errors"

var (
	ErrCertificateNotFound = errors.New("Certificate not found")
	ErrUnknownCertType     = errors.New("Unknown certificate type")
	ErrStudentNameRequired = errors.New("Student name is required")
	ErrRollNumberRequired  = errors.New("Roll number is required")
	ErrUnknownStatus       = errors.New("Unknown certificate status")
)
