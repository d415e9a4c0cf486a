package misa

import (
	"github.com/MuoDoo/riscv/pkg/utils"
)

// Machine XLEN, as encoded in the two most significant bits of misa
type XLEN uint8

const (
	// 32 bit machine
	XLEN_32 XLEN = iota + 1
	// 64 bit machine
	XLEN_64
	// 128 bit machine
	XLEN_128
)

// Width in bits of the MXL field
const mxlWidth = 2

// Returns the native width in bits of the machine
func (x XLEN) Bits() int {
	switch x {
	case XLEN_32:
		return 32
	case XLEN_64:
		return 64
	case XLEN_128:
		return 128
	}

	panic("unreachable")
}

func (x XLEN) String() string {
	switch x {
	case XLEN_32:
		return "RV32"
	case XLEN_64:
		return "RV64"
	case XLEN_128:
		return "RV128"
	}

	panic("unreachable")
}

// Returns true if x is one of the three encodable machine widths
func (x XLEN) IsValid() bool {
	return x >= XLEN_32 && x <= XLEN_128
}

// Returns the XLEN with the given width in bits
func XLENFromBits(bits int) (XLEN, error) {
	switch bits {
	case 32:
		return XLEN_32, nil
	case 64:
		return XLEN_64, nil
	case 128:
		return XLEN_128, nil
	}

	return 0, utils.MakeError(ErrInvalidXLEN, "%v bits", bits)
}

func decodeMXL(field uint8) (XLEN, error) {
	xlen := XLEN(field)

	if !xlen.IsValid() {
		return 0, utils.MakeError(ErrInvalidMXL, "field value %v", field)
	}

	return xlen, nil
}
