// Package misa decodes the RISC-V machine ISA register (CSR 0x301), which reports the
// native base width of a hart and the single letter extensions it implements.
//
// The register is read by an external collaborator and decoded here as an immutable
// snapshot. A register that reads as zero is not implemented.
package misa

import (
	"fmt"

	"github.com/MuoDoo/riscv/pkg/utils"
)

// CSR number of misa
const CSR = 0x301

// Unsigned words misa can be decoded from. The size of the word selects the position of
// the MXL field.
type Word interface {
	~uint32 | ~uint64 | ~uint | ~uintptr
}

// Common queries over a decoded misa snapshot, regardless of the decode width
type View interface {
	// Returns the machine XLEN, panicking if the MXL field is zero
	MXL() XLEN
	// Returns the machine XLEN, or ErrInvalidMXL if the MXL field is zero
	DecodeMXL() (XLEN, error)
	HasExtension(letter rune) bool
	Extensions() []Extension
	ISAString() string
	// Returns the raw bits as an hexadecimal string
	Hex() string
	fmt.Stringer
}

var (
	_ View = Misa[uint32]{}
	_ View = Misa[uint64]{}
	_ View = Misa128{}
)

// misa register, decoded for a target with T sized words
type Misa[T Word] struct {
	bits T
}

// misa as decoded by the platform the program runs on
type Native = Misa[uint]

// Creates a misa snapshot from raw bits. Returns false if the register is hardwired to
// zero, meaning misa is not implemented.
func New[T Word](raw T) (Misa[T], bool) {
	if raw == 0 {
		return Misa[T]{}, false
	}

	return Misa[T]{bits: raw}, true
}

// Reads misa once through read and decodes it
func Read[T Word](read ReadFunc[T]) (Misa[T], bool) {
	return New(read())
}

// Returns the contents of the register as raw bits
func (m Misa[T]) Bits() T {
	return m.bits
}

func (m Misa[T]) view() utils.BitView[T] {
	return utils.CreateBitView(m.bits)
}

func (m Misa[T]) DecodeMXL() (XLEN, error) {
	return decodeMXL(uint8(m.view().ReadTop(mxlWidth)))
}

// Returns the machine XLEN. A zero MXL field cannot happen on an implemented register, so
// it means the decode width does not match the hart and MXL panics.
func (m Misa[T]) MXL() XLEN {
	xlen, err := m.DecodeMXL()

	if err != nil {
		panic(utils.MakeError(err, "decoding %v bit misa %v", utils.SizeofBits[T](), m.Hex()))
	}

	return xlen
}

// Returns true when the extension with the given letter is implemented. Letters out of
// 'A'..'Z' are never implemented.
func (m Misa[T]) HasExtension(letter rune) bool {
	bit, ok := extensionBit(letter)
	return ok && m.view().IsSet(bit)
}

// Returns the implemented extensions, in alphabetical order
func (m Misa[T]) Extensions() []Extension {
	return collectExtensions(m.HasExtension)
}

func (m Misa[T]) ISAString() string {
	return isaString(m.MXL(), m.HasExtension)
}

func (m Misa[T]) Hex() string {
	return fmt.Sprintf("0x%0*x", utils.Sizeof[T]()*2, uint64(m.bits))
}

func (m Misa[T]) String() string {
	return fmt.Sprintf("%v (%v)", m.ISAString(), m.Hex())
}
