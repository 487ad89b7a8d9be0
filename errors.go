package observe

import (
	"errors"
	"fmt"

	"github.com/AnatoleLucet/observe/internal/classes"
)

var (
	// ErrInvalidListener is returned when a nil listener is subscribed or removed.
	ErrInvalidListener = errors.New("observe: listener must be a function")
	// ErrInvalidKeyName is returned when a reserved state key is declared.
	ErrInvalidKeyName = errors.New("observe: invalid state key name")
	// ErrInvalidSchema is returned for malformed declarative schemas.
	ErrInvalidSchema = errors.New("observe: invalid schema")

	ErrUnknownClass = classes.ErrUnknownClass
	ErrClassExists  = classes.ErrClassExists
)

// KeyNameError reports a state key that collides with the class's invalid keys.
type KeyNameError struct {
	Key   string
	Class string
}

func (e *KeyNameError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("observe: it's not allowed to create a state key with the name %q (class %s)", e.Key, e.Class)
}

func (e *KeyNameError) Unwrap() error {
	return ErrInvalidKeyName
}
