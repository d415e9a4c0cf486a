package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeError(t *testing.T) {
	sentinel := errors.New("sentinel")

	err := MakeError(sentinel, "value %v, name '%v'", 42, "misa")

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, "sentinel: value 42, name 'misa'", err.Error())
}
