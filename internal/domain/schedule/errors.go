package schedule

import "errors"

var (
	ErrInvalidRange    = errors.New("date or slot range is inverted")
	ErrUnknownSlot     = errors.New("slot label is not in the catalog")
	ErrUnknownMode     = errors.New("invalid appointment mode")
	ErrInvalidCapacity = errors.New("capacity per slot cannot be negative")
	ErrEntryNotFound   = errors.New("schedule entry not found")
)
