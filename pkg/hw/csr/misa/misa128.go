package misa

import (
	"fmt"

	"github.com/MuoDoo/riscv/pkg/utils"
	"lukechampine.com/uint128"
)

// misa register, decoded for a RV128 target. Go has no native 128 bit integer, so the
// bits are kept as a uint128.Uint128.
type Misa128 struct {
	bits uint128.Uint128
}

func New128(raw uint128.Uint128) (Misa128, bool) {
	if raw.IsZero() {
		return Misa128{}, false
	}

	return Misa128{bits: raw}, true
}

func Read128(read ReadFunc128) (Misa128, bool) {
	return New128(read())
}

func (m Misa128) Bits() uint128.Uint128 {
	return m.bits
}

// The MXL field lives in the top bits of the high half, extensions in the low half
func (m Misa128) DecodeMXL() (XLEN, error) {
	return decodeMXL(uint8(utils.CreateBitView(m.bits.Hi).ReadTop(mxlWidth)))
}

func (m Misa128) MXL() XLEN {
	xlen, err := m.DecodeMXL()

	if err != nil {
		panic(utils.MakeError(err, "decoding 128 bit misa %v", m.Hex()))
	}

	return xlen
}

func (m Misa128) HasExtension(letter rune) bool {
	bit, ok := extensionBit(letter)
	return ok && utils.CreateBitView(m.bits.Lo).IsSet(bit)
}

func (m Misa128) Extensions() []Extension {
	return collectExtensions(m.HasExtension)
}

func (m Misa128) ISAString() string {
	return isaString(m.MXL(), m.HasExtension)
}

func (m Misa128) Hex() string {
	return fmt.Sprintf("0x%016x%016x", m.bits.Hi, m.bits.Lo)
}

func (m Misa128) String() string {
	return fmt.Sprintf("%v (%v)", m.ISAString(), m.Hex())
}
