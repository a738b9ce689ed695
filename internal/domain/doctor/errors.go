package doctor

import "errors"

var (
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrDoctorAlreadyExists = errors.New("doctor with this email already exists")
	ErrDoctorInactive      = errors.New("doctor is inactive")
	ErrCenterRequired      = errors.New("center is required")
)
