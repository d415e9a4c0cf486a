package utils

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidBitField = errors.New("invalid bit field")

// A named range of bits within a register
type BitField struct {
	// Name of the field
	Name string

	// First bit of the field
	Begin int

	// Field width in bits
	Width int
}

// The most significant bit of the field
func (f BitField) Top() int {
	return f.PastTop() - 1
}

// The first bit used by the next field
func (f BitField) PastTop() int {
	return f.Begin + f.Width
}

func (f BitField) indices() (top string, begin string) {
	if f.Width == 1 {
		return fmt.Sprint(f.Begin), ""
	}

	return fmt.Sprint(f.Top()), fmt.Sprint(f.Begin)
}

// Minimum number of chars between two cell separators to fit both the name and the bit
// indices of the field
func (f BitField) cellWidth() int {
	top, begin := f.indices()
	return max(len(f.Name)+2, len(top)+len(begin)+1)
}

// Fills the ranges not covered by any field with unused fields. Fields must be sorted by
// position and must not overlap.
func fillBitFieldGaps(fields []BitField, registerWidth int) ([]BitField, error) {
	result := make([]BitField, 0, len(fields)+1)
	currentBit := 0

	for _, field := range fields {
		if field.Width <= 0 {
			return nil, MakeError(ErrInvalidBitField, "'%v' has width %v", field.Name, field.Width)
		}

		if field.Begin < currentBit {
			return nil, MakeError(ErrInvalidBitField, "'%v' overlaps the previous field, make sure fields are sorted by position", field.Name)
		}

		if field.Begin > currentBit {
			result = append(result, BitField{
				Name:  "(unused)",
				Begin: currentBit,
				Width: field.Begin - currentBit,
			})
		}

		result = append(result, field)
		currentBit = field.PastTop()
	}

	if currentBit > registerWidth {
		return nil, MakeError(ErrInvalidBitField, "fields use %v bits but the register is %v bits wide", currentBit, registerWidth)
	}

	if currentBit < registerWidth {
		result = append(result, BitField{
			Name:  "(unused)",
			Begin: currentBit,
			Width: registerWidth - currentBit,
		})
	}

	return result, nil
}

func centered(text string, length int) string {
	leftpad := (length - len(text)) / 2
	rightpad := length - len(text) - leftpad

	return strings.Repeat(" ", leftpad) + text + strings.Repeat(" ", rightpad)
}

// Draws an ascii diagram of a register composed of contiguous bit fields, most significant
// bit first:
//
//	31 30 29 26 25         0
//	+-----+-----+------------+
//	| MXL |  0  | Extensions |
//	+-----+-----+------------+
func DrawRegister(fields []BitField, registerWidth int) (string, error) {
	allFields, err := fillBitFieldGaps(fields, registerWidth)
	if err != nil {
		return "", err
	}

	var indicesRow, borderRow, bodyRow strings.Builder

	for i := len(allFields) - 1; i >= 0; i-- {
		field := allFields[i]
		width := field.cellWidth()
		top, begin := field.indices()

		indicesRow.WriteString(top)
		indicesRow.WriteString(strings.Repeat(" ", width-len(top)-len(begin)))
		indicesRow.WriteString(begin)
		indicesRow.WriteString(" ")

		borderRow.WriteString("+")
		borderRow.WriteString(strings.Repeat("-", width))

		bodyRow.WriteString("|")
		bodyRow.WriteString(centered(field.Name, width))
	}

	borderRow.WriteString("+")
	bodyRow.WriteString("|")

	var result strings.Builder

	result.WriteString(strings.TrimRight(indicesRow.String(), " "))
	result.WriteString("\n")
	result.WriteString(borderRow.String())
	result.WriteString("\n")
	result.WriteString(bodyRow.String())
	result.WriteString("\n")
	result.WriteString(borderRow.String())
	result.WriteString("\n")

	return result.String(), nil
}
