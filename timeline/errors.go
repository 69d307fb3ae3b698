package timeline

import "errors"

var (
	ErrInvalidRange = errors.New("invalid range")
	ErrInvalidType  = errors.New("invalid type")
	ErrOverflow     = errors.New("overflow")
	ErrBadData      = errors.New("bad data")
	ErrUnknownOp    = errors.New("unknown op")
)
