package consultation

import "errors"

var (
	ErrConsultationNotFound    = errors.New("consultation not found")
	ErrSlotNotOffered          = errors.New("no schedule entry matches the requested doctor, date, slot, and mode")
	ErrSlotFull                = errors.New("slot has no remaining capacity")
	ErrInvalidStatusTransition = errors.New("invalid consultation status transition")
	ErrDateInPast              = errors.New("cannot book a consultation in the past")
)
