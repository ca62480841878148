package scroll

import "errors"

var (
	// ErrInvalidOperation is returned for payloads that cannot be turned into
	// an intent. No state is changed and no notification is fired.
	ErrInvalidOperation = errors.New("scroll: invalid operation")

	// ErrReentrant is returned when an external set arrives while the
	// scrollbar is processing one of its own updates (a drag, a wheel burst
	// or an onChange callback).
	ErrReentrant = errors.New("scroll: update already in progress")
)

// ConfigurationError reports an invalid construction parameter.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "scroll: invalid configuration." + e.Field + ": " + e.Reason
}
