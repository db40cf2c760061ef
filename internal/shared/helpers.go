// Package shared provides common utility functions used across multiple
// packages in the system-packages codebase.
package shared

import (
	"errors"
	"io/fs"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// FileError wraps a filesystem error with msg. Missing files map to
// CodeNotFound, everything else to CodeInternal.
func FileError(err error, msg string) error {
	code := errbuilder.CodeInternal
	if errors.Is(err, fs.ErrNotExist) {
		code = errbuilder.CodeNotFound
	}
	return errbuilder.New().
		WithCode(code).
		WithMsg(msg).
		WithCause(err)
}

// NonEmpty returns the trimmed entries of values, dropping blanks. The
// result is never nil.
func NonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// SortedKeys returns the keys of input in ascending order.
func SortedKeys[V any](input map[string]V) []string {
	keys := make([]string, 0, len(input))
	for key := range input {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
