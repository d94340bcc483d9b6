package usage

// NotATerminal is returned when an interactive session is requested but
// stdin or stdout is not attached to a terminal.
func NotATerminal() *Error {
	return &Error{
		Kind:    ErrNotATerminal,
		Message: "slate: an interactive session requires a terminal",
	}
}
