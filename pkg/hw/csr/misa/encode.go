package misa

import (
	"github.com/MuoDoo/riscv/pkg/utils"
	"lukechampine.com/uint128"
)

func checkEncoding(xlen XLEN, exts []Extension) error {
	if !xlen.IsValid() {
		return utils.MakeError(ErrInvalidXLEN, "MXL field value %v", uint8(xlen))
	}

	for _, ext := range exts {
		if !ext.IsValid() {
			return utils.MakeError(ErrInvalidExtension, "'%v'", ext)
		}
	}

	return nil
}

// Builds the raw misa bits a T sized hart reporting xlen and exts would read
func Encode[T Word](xlen XLEN, exts ...Extension) (T, error) {
	if err := checkEncoding(xlen, exts); err != nil {
		return 0, err
	}

	raw := T(xlen) << (utils.SizeofBits[T]() - mxlWidth)

	for _, ext := range exts {
		raw |= T(1) << ext.Bit()
	}

	return raw, nil
}

// Builds the raw misa bits a RV128 hart reporting xlen and exts would read
func Encode128(xlen XLEN, exts ...Extension) (uint128.Uint128, error) {
	if err := checkEncoding(xlen, exts); err != nil {
		return uint128.Uint128{}, err
	}

	var lo uint64

	for _, ext := range exts {
		lo |= uint64(1) << ext.Bit()
	}

	return uint128.New(lo, uint64(xlen)<<(64-mxlWidth)), nil
}
