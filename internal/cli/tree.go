// Package cli defines the slate command surface and the typed product
// of parsing it. The generic tree machinery lives in
// internal/dispatchers; this package only describes slate's tree.
package cli

import (
	"github.com/slate-tools/cli/internal/actions"
	"github.com/slate-tools/cli/internal/dispatchers"
)

// BuildTree wires the command surface. Handlers that start a session or
// delegate to the encoder write what they parsed into inv; main reads
// it after dispatch and decides what mode the process enters.
//
// The root carries the run action itself, so a bare "slate" (or
// "slate <path>") behaves exactly like "slate run".
func BuildTree(inv *Invocation) *dispatchers.DispatchNode {
	root := dispatchers.Root(dispatchers.RootSpec{
		Name:    "slate",
		Summary: "Terminal recording studio",
		Usage:   "slate [path] [flags]",
		Flags:   RootFlags,
		Args:    OptionalWorkDirArg,
		Action:  recordSession(inv),
	})

	dispatchers.Command(dispatchers.CommandSpec{
		Name:        "run",
		Parent:      root,
		Summary:     "Start a recording session",
		Description: "Starts an interactive recording session in the given work directory. Without a path the saved work directory is used; --ask-path prompts for one regardless.",
		Usage:       "slate run [path] [--ask-path] [--hide]",
		Flags:       RunFlags,
		Args:        OptionalWorkDirArg,
		Action:      recordSession(inv),
	})

	dispatchers.Command(dispatchers.CommandSpec{
		Name:    "sessions",
		Parent:  root,
		Summary: "List recent recording sessions",
		Usage:   "slate sessions [--limit=<n>] [--since=<date>]",
		Flags:   SessionsFlags,
		Action:  actions.SessionsList,
	})

	dispatchers.Command(dispatchers.CommandSpec{
		Name:        "encode",
		Parent:      root,
		Summary:     "Run the encoder sidecar",
		Description: "Everything after \"encode\" passes through to the slate-encode sidecar untouched; its flags and exit codes are the sidecar's own.",
		Usage:       "slate encode [args...]",
		Args:        EncodeArgs,
		Action:      delegateEncode(inv),
	})

	dispatchers.Command(dispatchers.CommandSpec{
		Name:    "version",
		Parent:  root,
		Summary: "Show slate version",
		Usage:   "slate version",
		Action:  actions.ShowVersion,
	})

	return root
}

func recordSession(inv *Invocation) dispatchers.CommandFunc {
	return func(args []string, flags *dispatchers.ParsedFlags) error {
		req := &SessionRequest{
			AskPath: flags.Has("--ask-path"),
			Hidden:  flags.Has("--hide"),
		}
		if len(args) > 0 {
			req.WorkDir = args[0]
		}
		inv.Session = req
		return nil
	}
}

// delegateEncode exists so the tree can dispatch and document encode
// like any other command. In practice main hands the encode tail to the
// sidecar before flag extraction, because the tail is not ours to parse.
func delegateEncode(inv *Invocation) dispatchers.CommandFunc {
	return func(args []string, _ *dispatchers.ParsedFlags) error {
		inv.Encode = &EncodeRequest{Args: args}
		return nil
	}
}
