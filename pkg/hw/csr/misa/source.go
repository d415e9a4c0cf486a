package misa

import (
	"runtime"
	"sync/atomic"

	"github.com/MuoDoo/riscv/pkg/utils"
	"lukechampine.com/uint128"
)

// Reads the raw contents of misa. Implementations perform the privileged CSR read (or
// return an already captured value) and never decode it.
type ReadFunc[T Word] func() T

// 128 bit counterpart of ReadFunc
type ReadFunc128 func() uint128.Uint128

// Returns a ReadFunc always yielding the given captured value
func Captured[T Word](raw T) ReadFunc[T] {
	return func() T {
		return raw
	}
}

func Captured128(raw uint128.Uint128) ReadFunc128 {
	return func() uint128.Uint128 {
		return raw
	}
}

var nativeReader atomic.Pointer[ReadFunc[uint]]

// Installs the function used by ReadNative. Platform layers call it once, before any
// ReadNative call. Passing nil uninstalls the reader.
func SetNativeReader(read ReadFunc[uint]) {
	if read == nil {
		nativeReader.Store(nil)
		return
	}

	nativeReader.Store(&read)
}

// Reads misa through the installed native reader. Returns ErrNotImplemented if no reader
// was installed for this platform.
func ReadNative() (Native, bool, error) {
	read := nativeReader.Load()

	if read == nil {
		return Native{}, false, utils.MakeError(ErrNotImplemented, "%v/%v", runtime.GOOS, runtime.GOARCH)
	}

	m, ok := Read(*read)
	return m, ok, nil
}
