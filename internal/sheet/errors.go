package sheet

import "errors"

var (
	ErrOutOfRange      = errors.New("frame index out of range")
	ErrAlreadyOccupied = errors.New("frame already has a cel")
	ErrDuplicateLayer  = errors.New("layer already bound to another frame")
	ErrInvalidLayer    = errors.New("invalid layer handle")
	ErrInvalidRate     = errors.New("frame rate must be positive")
)
