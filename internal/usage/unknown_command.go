package usage

import (
	"fmt"
	"strings"
)

func UnknownCommand(command string, suggestions ...string) *Error {
	msg := fmt.Sprintf("slate: '%s' is not a slate command. See 'slate --help'.", command)
	if len(suggestions) > 0 {
		msg += fmt.Sprintf("\n\nDid you mean one of these?\n   %s", strings.Join(suggestions, "\n   "))
	}
	return &Error{
		Kind:    ErrUnknownCommand,
		Message: msg,
	}
}
