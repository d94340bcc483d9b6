package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/slate-tools/cli/internal/actions"
	"github.com/slate-tools/cli/internal/app"
	"github.com/slate-tools/cli/internal/cli"
	"github.com/slate-tools/cli/internal/dispatchers"
	"github.com/slate-tools/cli/internal/launch"
	"github.com/slate-tools/cli/internal/ui/style"
	"github.com/slate-tools/cli/internal/usage"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run exists so deferred teardown happens before os.Exit. The crash
// capture is registered after the pipeline close, so on a panic it
// reports first and the close beneath it still flushes what it wrote.
func run(args []string) int {
	a := app.New(app.DefaultOptions())
	defer func() { _ = a.Close() }()
	defer a.Reporter.CaptureCrash()

	// The encode tail belongs to the sidecar. Splitting it into flags
	// and commands would reorder it, so hand it off untouched.
	if len(args) > 0 && args[0] == "encode" {
		inv := &cli.Invocation{Encode: &cli.EncodeRequest{Args: args[1:]}}
		return launch.Run(context.Background(), a, launch.Resolve(inv, 0))
	}

	rawFlags, commands := extractFlagsAndCommands(args)
	flags := dispatchers.NewParsedFlags(rawFlags)

	// Enable styling if stdout is a terminal and --no-color is not set
	enableColor := term.IsTerminal(int(os.Stdout.Fd())) && !flags.Has("--no-color")
	style.Init(enableColor)

	// The root command starts a session, so a bare version flag has to
	// be answered before dispatch would swallow it.
	if len(commands) == 0 && (flags.Has("--version") || flags.Has("-v")) {
		_ = actions.ShowVersion(nil, flags)
		return 0
	}

	inv := &cli.Invocation{}
	root := cli.BuildTree(inv)

	res, err := dispatchers.Dispatch(root, commands, flags)
	if err != nil {
		return reportError(err)
	}

	if err := res.Execute(res.Args, res.Flags); err != nil {
		return reportError(err)
	}

	return launch.Run(context.Background(), a, launch.Resolve(inv, res.ExitCode))
}

func reportError(err error) int {
	fmt.Fprintln(os.Stderr, err.Error())
	if ue, ok := err.(*usage.Error); ok {
		return ue.GetExitCode()
	}
	return 1
}

// valueFlags consume the following token as their value when it is not
// attached with '='.
var valueFlags = map[string]bool{
	"--limit": true,
	"--since": true,
}

// extractFlagsAndCommands splits argv into flag tokens and command
// tokens for the dispatcher. "-5" is shorthand for "--limit=5" so
// "slate sessions -5" reads naturally.
func extractFlagsAndCommands(args []string) (flags, commands []string) {
	flags = []string{}
	commands = []string{}

	for i := 0; i < len(args); i++ {
		a := args[i]
		if len(a) == 0 || a[0] != '-' {
			commands = append(commands, a)
			continue
		}
		if n, ok := numericShorthand(a); ok {
			flags = append(flags, "--limit="+n)
			continue
		}
		if valueFlags[a] && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			flags = append(flags, a+"="+args[i+1])
			i++
			continue
		}
		flags = append(flags, a)
	}
	return flags, commands
}

// numericShorthand matches "-<n>" for a positive decimal n.
func numericShorthand(a string) (string, bool) {
	if len(a) < 2 || a[1] == '-' {
		return "", false
	}
	digits := a[1:]
	if digits[0] == '0' {
		return "", false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return digits, true
}
