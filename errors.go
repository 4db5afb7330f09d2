package markers

import "errors"

// Sentinel errors for the markers package and its sub-packages.
var (
	// ErrUnknownMarker is returned when an operation names a marker id
	// that is not registered.
	ErrUnknownMarker = errors.New("markers: unknown marker id")

	// ErrDuplicateMarker is returned when adding a marker id that already exists.
	ErrDuplicateMarker = errors.New("markers: duplicate marker id")

	// ErrInvalidSize is matched by InvalidSizeError.
	ErrInvalidSize = errors.New("markers: invalid size")
)

// InvalidSizeError is returned by Descriptor.Validate for an unknown size.
type InvalidSizeError struct {
	Size Size
}

func (e *InvalidSizeError) Error() string {
	return "markers: invalid size " + string(e.Size)
}

// Is reports whether target is ErrInvalidSize.
func (e *InvalidSizeError) Is(target error) bool {
	return target == ErrInvalidSize
}
