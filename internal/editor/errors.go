package editor

import (
	"errors"
	"fmt"
)

// Errors returned by the controller.
var (
	// ErrAborted matches every *KeyError.
	ErrAborted = errors.New("operation aborted")

	// ErrUnknownCommand indicates a prompt query that matches no command.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrDuplicateCommand indicates a command name registered twice.
	ErrDuplicateCommand = errors.New("duplicate command")

	// ErrInvalidCommand indicates a command without a name or Run func.
	ErrInvalidCommand = errors.New("invalid command")
)

// KeyError reports a key whose handling was aborted by an invariant
// violation. The tree may be partially mutated.
type KeyError struct {
	Key string
	Err error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("editor: key %s aborted: %v", e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *KeyError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is to match KeyError with ErrAborted.
func (e *KeyError) Is(target error) bool {
	return target == ErrAborted
}

// recovered converts a recovered panic value to an error.
func recovered(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
