package misa

import (
	"github.com/MuoDoo/riscv/pkg/utils"
)

// Returns the fields of misa for a decode target of the given width, sorted by position
func Fields(registerWidth int) []utils.BitField {
	return []utils.BitField{
		{Name: "Extensions", Begin: 0, Width: TOTAL_EXTENSIONS},
		{Name: "0", Begin: TOTAL_EXTENSIONS, Width: registerWidth - mxlWidth - TOTAL_EXTENSIONS},
		{Name: "MXL", Begin: registerWidth - mxlWidth, Width: mxlWidth},
	}
}

// Draws the fields of misa for a decode target of the given width
func DrawLayout(registerWidth int) (string, error) {
	return utils.DrawRegister(Fields(registerWidth), registerWidth)
}
