package misa

import "errors"

var (
	ErrInvalidMXL       = errors.New("invalid misa MXL field")
	ErrInvalidXLEN      = errors.New("invalid XLEN")
	ErrInvalidExtension = errors.New("invalid extension letter")
	ErrNotImplemented   = errors.New("misa read not implemented on this platform")
)
