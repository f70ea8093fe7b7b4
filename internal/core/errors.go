package core

import "errors"

// Validation errors. They are returned wrapped with the offending value,
// so callers should compare with errors.Is.
var (
	ErrUnknownButton   = errors.New("core: unknown button")
	ErrInvalidCluster  = errors.New("core: invalid cluster")
	ErrInvalidLayout   = errors.New("core: invalid button layout")
	ErrTextNotFound    = errors.New("core: text overlay not found")
	ErrColorOutOfRange = errors.New("core: color index out of range")
	ErrInvalidBitmap   = errors.New("core: invalid bitmap")
)
