package universe

import "errors"

var (
	ErrInvalidDimension = errors.New("grid dimension must be positive")
	ErrInvalidDensity   = errors.New("density must be in (0, 1)")
	ErrInvalidInterval  = errors.New("interval must not be negative")
	ErrUnknownEngine    = errors.New("unknown engine")
	ErrUnknownTemplate  = errors.New("unknown template")
	//ErrClosed is returned when the command is sent after Close
	ErrClosed = errors.New("universe is closed")
	//ErrLockUnavailable is returned by readers after the control loop failed while holding the lock
	ErrLockUnavailable = errors.New("universe state is unavailable")
)
