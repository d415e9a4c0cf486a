package utils

import (
	"fmt"
)

// Wraps err with a formatted details message, so that errors.Is(result, err) holds
func MakeError(err error, detailsBody string, args ...any) error {
	return fmt.Errorf("%w: "+detailsBody, append([]any{err}, args...)...)
}
