package utils

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

const BitsPerByte = 8

// Returns the size in bits of n bytes
func Bits(bytes int) int {
	return bytes * BitsPerByte
}

// Returns the size in bytes of values of a type
func Sizeof[T any]() int {
	var val T
	return int(unsafe.Sizeof(val))
}

// Returns the size in bits of values of a type
func SizeofBits[T any]() int {
	return Bits(Sizeof[T]())
}

// Returns an all ones bitmask of n bits of the given unsigned integer type
func AllOnes[T constraints.Unsigned](bits int) T {
	if bits >= SizeofBits[T]() {
		return ^T(0)
	}

	return (T(1) << bits) - T(1)
}

// Implements a read only view over a snapshot of an unsigned integer, allowing
// extraction of bit ranges. The view owns a copy of the value.
type BitView[T constraints.Unsigned] struct {
	bits T
}

// Creates a bit view out of an unsigned int
func CreateBitView[T constraints.Unsigned](value T) BitView[T] {
	return BitView[T]{
		bits: value,
	}
}

// Returns the viewed unsigned int value
func (v BitView[T]) Value() T {
	return v.bits
}

// Returns the size in bits of the viewed value
func (v BitView[T]) SizeofBits() int {
	return SizeofBits[T]()
}

// Extracts a range of bits given a first bit and a width
func (v BitView[T]) Read(bit int, width int) T {
	mask := AllOnes[T](width)
	return (v.bits >> bit) & mask
}

// Extracts the width most significant bits
func (v BitView[T]) ReadTop(width int) T {
	return v.Read(v.SizeofBits()-width, width)
}

// Returns true if the given bit is set. Bits out of the value range are never set.
func (v BitView[T]) IsSet(bit int) bool {
	if bit < 0 || bit >= v.SizeofBits() {
		return false
	}

	mask := T(1) << bit
	return v.bits&mask != 0
}

// Returns true if no bit is set
func (v BitView[T]) IsZero() bool {
	return v.bits == 0
}
