package patient

import "errors"

var (
	ErrPatientNotFound      = errors.New("patient not found")
	ErrPatientInactive      = errors.New("patient is inactive")
	ErrPatientAlreadyExists = errors.New("patient with this phone number already exists")
	ErrInvalidGender        = errors.New("invalid gender value")
	ErrInvalidSource        = errors.New("invalid enquiry source")
	ErrPhoneRequired        = errors.New("phone number is required")
)
