// Package launch turns a parsed invocation into what the process
// actually does: exit with a code, hand the argument tail to the
// encoder sidecar, or enter the interactive recording session with the
// keep-awake loop, the notifier and the journal running around it.
package launch

import "github.com/slate-tools/cli/internal/cli"

// Kind discriminates the outcome variants.
type Kind int

const (
	// KindExit ends the process with Outcome.Code.
	KindExit Kind = iota
	// KindSession enters the interactive recording session.
	KindSession
	// KindEncode delegates to the encoder sidecar.
	KindEncode
)

// Outcome is the mode decision for one invocation. Exactly one variant
// holds; the payload for the other variants stays nil.
type Outcome struct {
	Kind    Kind
	Code    int
	Session *cli.SessionRequest
	Encode  *cli.EncodeRequest
}

// Exit ends the process with code.
func Exit(code int) Outcome {
	return Outcome{Kind: KindExit, Code: code}
}

// EnterSession enters interactive mode with the request's path and
// flags.
func EnterSession(req *cli.SessionRequest) Outcome {
	return Outcome{Kind: KindSession, Session: req}
}

// Encode hands the raw argument tail to the sidecar.
func Encode(req *cli.EncodeRequest) Outcome {
	return Outcome{Kind: KindEncode, Encode: req}
}

// Resolve maps one dispatched invocation onto an outcome. A populated
// invocation wins; an empty one means the command already did all its
// work during dispatch (help, version, sessions) and the process just
// exits with the dispatcher's code.
func Resolve(inv *cli.Invocation, exitCode int) Outcome {
	switch {
	case inv != nil && inv.Session != nil:
		return EnterSession(inv.Session)
	case inv != nil && inv.Encode != nil:
		return Encode(inv.Encode)
	default:
		return Exit(exitCode)
	}
}
