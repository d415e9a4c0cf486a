package misa

import (
	"strings"

	"github.com/MuoDoo/riscv/pkg/utils"
)

// An instruction set extension, identified by its letter. Each letter owns one bit of the
// misa extensions field, starting with 'A' at bit 0.
type Extension rune

const (
	Extension_Atomic          Extension = 'A'
	Extension_BitManipulation Extension = 'B'
	Extension_Compressed      Extension = 'C'
	Extension_Double          Extension = 'D'
	// RV32E/RV64E reduced base
	Extension_Embedded        Extension = 'E'
	Extension_Single          Extension = 'F'
	Extension_Hypervisor      Extension = 'H'
	// RV32I/RV64I/RV128I base
	Extension_Integer         Extension = 'I'
	Extension_MulDiv          Extension = 'M'
	Extension_UserInterrupts  Extension = 'N'
	Extension_PackedSIMD      Extension = 'P'
	Extension_Quad            Extension = 'Q'
	// Supervisor mode implemented
	Extension_Supervisor      Extension = 'S'
	// User mode implemented
	Extension_User            Extension = 'U'
	Extension_Vector          Extension = 'V'
	Extension_NonStandard     Extension = 'X'
)

const (
	firstExtension = 'A'
	lastExtension  = 'Z'

	// Number of bits of the extensions field
	TOTAL_EXTENSIONS = lastExtension - firstExtension + 1
)

var extensionNames = map[Extension]string{
	Extension_Atomic:          "Atomic",
	Extension_BitManipulation: "Bit-Manipulation",
	Extension_Compressed:      "Compressed",
	Extension_Double:          "Double-precision floating-point",
	Extension_Embedded:        "RV32E/64E base ISA",
	Extension_Single:          "Single-precision floating-point",
	Extension_Hypervisor:      "Hypervisor",
	Extension_Integer:         "RV32I/64I/128I base ISA",
	Extension_MulDiv:          "Integer Multiply/Divide",
	Extension_UserInterrupts:  "User-level interrupts (tentative)",
	Extension_PackedSIMD:      "Packed-SIMD (tentative)",
	Extension_Quad:            "Quad-precision floating-point",
	Extension_Supervisor:      "Supervisor mode",
	Extension_User:            "User mode",
	Extension_Vector:          "Vector",
	Extension_NonStandard:     "Non-standard extensions present",
}

// Order in which extension letters appear in an ISA string
const canonicalOrder = "IEMAFDGQLCBKJTPVHNSUXORWYZ"

// Returns the bit index of an extension letter. Anything outside 'A'..'Z' has no bit.
func extensionBit(letter rune) (int, bool) {
	if letter < firstExtension || letter > lastExtension {
		return 0, false
	}

	return int(letter - firstExtension), true
}

// Returns the extension letter as parsed from an ISA string, which is case insensitive
func ParseExtension(letter rune) (Extension, error) {
	ext := Extension(letter)

	if letter >= 'a' && letter <= 'z' {
		ext = Extension(letter - 'a' + 'A')
	}

	if !ext.IsValid() {
		return 0, utils.MakeError(ErrInvalidExtension, "'%c'", letter)
	}

	return ext, nil
}

// Returns every extension letter, from 'A' to 'Z'
func AllExtensions() []Extension {
	all := make([]Extension, 0, TOTAL_EXTENSIONS)

	for letter := Extension(firstExtension); letter <= lastExtension; letter++ {
		all = append(all, letter)
	}

	return all
}

func (e Extension) IsValid() bool {
	_, ok := extensionBit(rune(e))
	return ok
}

// Returns the bit of misa reporting the extension
func (e Extension) Bit() int {
	bit, ok := extensionBit(rune(e))

	if !ok {
		panic("unreachable")
	}

	return bit
}

// Returns a human readable description of the extension
func (e Extension) Name() string {
	if name, ok := extensionNames[e]; ok {
		return name
	}

	if e.IsValid() {
		return "Reserved"
	}

	return "Invalid"
}

func (e Extension) String() string {
	return string(rune(e))
}

// Collects the letters reported by has, ordered from 'A' to 'Z'
func collectExtensions(has func(letter rune) bool) []Extension {
	exts := make([]Extension, 0, TOTAL_EXTENSIONS)

	for _, ext := range AllExtensions() {
		if has(rune(ext)) {
			exts = append(exts, ext)
		}
	}

	return exts
}

// Formats an ISA string such as "rv64imafdc"
func isaString(xlen XLEN, has func(letter rune) bool) string {
	var buffer strings.Builder

	buffer.WriteString(strings.ToLower(xlen.String()))

	for _, letter := range canonicalOrder {
		if has(letter) {
			buffer.WriteRune(letter - 'A' + 'a')
		}
	}

	return buffer.String()
}
