// Package asset holds what the mesh and texture container parsers share:
// the error taxonomy and a bounds-checked binary reader.
package asset

import (
	"errors"
	"fmt"
)

var (
	// ErrIO marks a file that could not be opened or read in full.
	ErrIO = errors.New("asset: i/o error")

	// ErrFormat marks a file whose contents violate the container format.
	ErrFormat = errors.New("asset: invalid format")

	// ErrTruncated marks a read past the end of the file. It matches ErrIO.
	ErrTruncated error = truncatedError{}
)

type truncatedError struct{}

func (truncatedError) Error() string        { return "asset: truncated file" }
func (truncatedError) Is(target error) bool { return target == ErrIO }

// ReadError wraps an OS read failure so it matches both ErrIO and the
// underlying error (fs.ErrNotExist, fs.ErrPermission, ...).
func ReadError(pkg, path string, err error) error {
	return fmt.Errorf("%s: read %s: %w", pkg, path, errors.Join(ErrIO, err))
}

// Formatf builds an ErrFormat error prefixed with the package name.
func Formatf(pkg, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", pkg, ErrFormat, fmt.Sprintf(format, args...))
}
