package usage

import "fmt"

// EncoderNotFound is returned when the encoder sidecar binary cannot be
// located next to the executable or on PATH.
func EncoderNotFound(name string) *Error {
	return &Error{
		Kind:    ErrEncoderNotFound,
		Message: fmt.Sprintf("slate: encoder '%s' is not installed. Reinstall slate or put '%s' on your PATH.", name, name),
	}
}
