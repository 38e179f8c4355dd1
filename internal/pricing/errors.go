package pricing

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks input that cannot be priced as submitted.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound marks a referenced product, rules record or pricing document that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInternal marks pricing data that exists but is structurally malformed.
	ErrInternal = errors.New("internal")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func internalf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInternal, fmt.Sprintf(format, args...))
}

// Message strips the sentinel prefix so callers can surface the human text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []error{ErrInvalidArgument, ErrNotFound, ErrInternal} {
		prefix := sentinel.Error() + ": "
		if errors.Is(err, sentinel) && len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
			return msg[len(prefix):]
		}
	}
	return msg
}
