package traffic

import(
	"errors"
	"fmt"
)

var(
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// InvalidInputError is returned when data (or a request about data) can't be made sense of;
// e.g. an unparseable timestamp, or resampling a flight that has no duration.
type InvalidInputError struct {
	Op     string // What we were trying to do
	Reason string
}

func (e *InvalidInputError)Error() string {
	return fmt.Sprintf("%s: invalid input: %s", e.Op, e.Reason)
}
func (e *InvalidInputError)Is(target error) bool { return target == ErrInvalidInput }

func invalidInput(op string, format string, args ...interface{}) error {
	return &InvalidInputError{Op:op, Reason:fmt.Sprintf(format, args...)}
}

// UnsupportedFormatError is returned by the loaders when a payload isn't in a format we decode.
type UnsupportedFormatError struct {
	Format string // Best guess at what the payload was, if we know
	Reason string
}

func (e *UnsupportedFormatError)Error() string {
	if e.Format == "" {
		return fmt.Sprintf("unsupported format: %s", e.Reason)
	}
	return fmt.Sprintf("unsupported format %q: %s", e.Format, e.Reason)
}
func (e *UnsupportedFormatError)Is(target error) bool { return target == ErrUnsupportedFormat }
