package csr

import (
	"errors"
	"math/big"

	"github.com/MuoDoo/riscv/pkg/hw/csr/misa"
	"github.com/MuoDoo/riscv/pkg/utils"
	"lukechampine.com/uint128"
)

var (
	ErrInvalidTarget = errors.New("invalid decode target")
	ErrInvalidValue  = errors.New("invalid register value")
)

// Decode target width, as given by the xlen setting
type target string

const (
	target_32     target = "32"
	target_64     target = "64"
	target_128    target = "128"
	target_Native target = "native"
)

func parseTarget(s string) (target, error) {
	switch t := target(s); t {
	case target_32, target_64, target_128, target_Native:
		return t, nil
	}

	return "", utils.MakeError(ErrInvalidTarget, "'%v', expected 32, 64, 128 or native", s)
}

// Returns the width in bits of the target words
func (t target) Bits() int {
	switch t {
	case target_32:
		return 32
	case target_64:
		return 64
	case target_128:
		return 128
	case target_Native:
		return utils.SizeofBits[uint]()
	}

	panic("unreachable")
}

// Parses a register value in any Go integer literal syntax (0x, 0b, 0o prefixes and
// underscores are accepted), checking it fits the target width
func (t target) parseValue(s string) (*big.Int, error) {
	value, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, utils.MakeError(ErrInvalidValue, "'%v' is not an integer", s)
	}

	if value.Sign() < 0 {
		return nil, utils.MakeError(ErrInvalidValue, "'%v' is negative", s)
	}

	if value.BitLen() > t.Bits() {
		return nil, utils.MakeError(ErrInvalidValue, "'%v' does not fit in %v bits", s, t.Bits())
	}

	return value, nil
}

// Decodes a raw value for the target. Returns a nil view if the register is not
// implemented.
func (t target) decode(value *big.Int) misa.View {
	lo := new(big.Int).And(value, new(big.Int).SetUint64(^uint64(0))).Uint64()

	switch t {
	case target_32:
		m, ok := misa.New(uint32(lo))
		return present(m, ok)
	case target_64:
		m, ok := misa.New(lo)
		return present(m, ok)
	case target_Native:
		m, ok := misa.New(uint(lo))
		return present(m, ok)
	case target_128:
		hi := new(big.Int).Rsh(value, 64).Uint64()
		m, ok := misa.New128(uint128.New(lo, hi))
		return present(m, ok)
	}

	panic("unreachable")
}

func present[V misa.View](view V, ok bool) misa.View {
	if !ok {
		return nil
	}

	return view
}
