package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slate-tools/cli/internal/dispatchers"
	"github.com/slate-tools/cli/internal/usage"
)

// dispatchAndRun resolves tokens against a fresh tree and executes the
// resolved action, returning the populated Invocation.
func dispatchAndRun(t *testing.T, commands []string, flags []string) (*Invocation, error) {
	t.Helper()

	inv := &Invocation{}
	root := BuildTree(inv)

	res, err := dispatchers.Dispatch(root, commands, dispatchers.NewParsedFlags(flags))
	if err != nil {
		return inv, err
	}

	require.NotNil(t, res.Execute)
	return inv, res.Execute(res.Args, res.Flags)
}

func TestBuildTree_ReturnsRoot(t *testing.T) {
	root := BuildTree(&Invocation{})

	require.NotNil(t, root)
	require.Equal(t, "slate", root.Name)
	require.NotNil(t, root.Action, "bare slate must behave like run")
}

func TestBuildTree_HasExpectedCommands(t *testing.T) {
	root := BuildTree(&Invocation{})

	for _, cmd := range []string{"run", "sessions", "encode", "version"} {
		child, found := root.Children[cmd]
		require.True(t, found, "expected command '%s' not found", cmd)
		require.NotNil(t, child.Action, "command '%s' should have an action", cmd)
		require.NotEmpty(t, child.Summary, "command '%s' should have a summary", cmd)
		require.NotEmpty(t, child.Usage, "command '%s' should have usage", cmd)
	}
}

func TestBuildTree_RootHasGlobalFlags(t *testing.T) {
	root := BuildTree(&Invocation{})

	flagNames := make(map[string]bool)
	for _, flag := range root.Flags {
		for _, name := range flag.Names {
			flagNames[name] = true
		}
	}

	require.True(t, flagNames["--help"])
	require.True(t, flagNames["--version"])
	require.True(t, flagNames["--no-color"])
}

func TestDispatch_BareRootEntersSession(t *testing.T) {
	inv, err := dispatchAndRun(t, nil, nil)

	require.NoError(t, err)
	require.NotNil(t, inv.Session)
	require.Empty(t, inv.Session.WorkDir)
	require.False(t, inv.Session.AskPath)
	require.False(t, inv.Session.Hidden)
	require.Nil(t, inv.Encode)
}

func TestDispatch_RunWithPathAndHide(t *testing.T) {
	inv, err := dispatchAndRun(t, []string{"run", "/shoots/day-04"}, []string{"--hide"})

	require.NoError(t, err)
	require.NotNil(t, inv.Session)
	require.Equal(t, "/shoots/day-04", inv.Session.WorkDir)
	require.True(t, inv.Session.Hidden)
	require.False(t, inv.Session.AskPath)
}

func TestDispatch_RunAskPath(t *testing.T) {
	inv, err := dispatchAndRun(t, []string{"run"}, []string{"--ask-path"})

	require.NoError(t, err)
	require.NotNil(t, inv.Session)
	require.True(t, inv.Session.AskPath)
	require.Empty(t, inv.Session.WorkDir)
}

func TestDispatch_RootPathBehavesLikeRun(t *testing.T) {
	inv, err := dispatchAndRun(t, []string{"/shoots/day-04"}, nil)

	require.NoError(t, err)
	require.NotNil(t, inv.Session)
	require.Equal(t, "/shoots/day-04", inv.Session.WorkDir)
}

func TestDispatch_UnknownFlagLeavesInvocationEmpty(t *testing.T) {
	inv, err := dispatchAndRun(t, []string{"run"}, []string{"--frobnicate"})

	require.Error(t, err)
	var ue *usage.Error
	require.ErrorAs(t, err, &ue)
	require.NotZero(t, ue.GetExitCode())
	require.Nil(t, inv.Session)
	require.Nil(t, inv.Encode)
}

func TestDispatch_SessionFlagsInvisibleToSubcommands(t *testing.T) {
	inv := &Invocation{}
	root := BuildTree(inv)

	_, err := dispatchers.Dispatch(root, []string{"version"},
		dispatchers.NewParsedFlags([]string{"--hide"}))

	require.Error(t, err)
	var ue *usage.Error
	require.ErrorAs(t, err, &ue)
	require.Equal(t, usage.ErrInvalidFlag, ue.Kind)
}

func TestDispatch_EncodeCapturesRawTail(t *testing.T) {
	inv, err := dispatchAndRun(t, []string{"encode", "take-04.raw", "out.mp4"}, nil)

	require.NoError(t, err)
	require.NotNil(t, inv.Encode)
	require.Equal(t, []string{"take-04.raw", "out.mp4"}, inv.Encode.Args)
	require.Nil(t, inv.Session)
}

func TestDispatch_HelpFlagDoesNotEnterSession(t *testing.T) {
	inv := &Invocation{}
	root := BuildTree(inv)

	res, err := dispatchers.Dispatch(root, nil,
		dispatchers.NewParsedFlags([]string{"--help"}))

	require.NoError(t, err)
	require.NotNil(t, res.Execute)
	require.Nil(t, inv.Session, "help must not populate the invocation")
}
