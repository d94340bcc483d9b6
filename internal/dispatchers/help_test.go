package dispatchers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatUsage_CommandOnly(t *testing.T) {
	result := formatUsage("slate version")
	require.NotEmpty(t, result)
	require.Contains(t, result, "version")
}

func TestFormatUsage_CommandWithBrackets(t *testing.T) {
	result := formatUsage("slate run [path]")
	require.NotEmpty(t, result)
	require.Contains(t, result, "run")
	require.Contains(t, result, "[path]")
}

func TestFormatUsage_CommandWithAngleBrackets(t *testing.T) {
	result := formatUsage("slate journal export <file>")
	require.NotEmpty(t, result)
	require.Contains(t, result, "journal export")
}

func TestCollectLeafCommands_SingleCommand(t *testing.T) {
	action := func(args []string, flags *ParsedFlags) error { return nil }

	root := Root(RootSpec{Name: "slate"})
	Command(CommandSpec{
		Name:   "version",
		Parent: root,
		Action: action,
	})

	var leaves []*DispatchNode
	collectLeafCommands(root.Children["version"], &leaves)

	require.Len(t, leaves, 1)
	require.Equal(t, "version", leaves[0].Name)
}

func TestCollectLeafCommands_NestedCommands(t *testing.T) {
	action := func(args []string, flags *ParsedFlags) error { return nil }

	root := Root(RootSpec{Name: "slate"})

	journal := Group(GroupSpec{
		Name:   "journal",
		Parent: root,
	})

	Command(CommandSpec{
		Name:   "export",
		Parent: journal,
		Action: action,
	})

	var leaves []*DispatchNode
	collectLeafCommands(journal, &leaves)

	require.Len(t, leaves, 1)
	require.Equal(t, "export", leaves[0].Name)
}

func TestRenderHelp_Root(t *testing.T) {
	root := createTestTree()

	out := RenderHelp(root, root)

	require.Contains(t, out, "slate - Test CLI")
	require.Contains(t, out, "USAGE")
	require.Contains(t, out, "COMMANDS")
	require.Contains(t, out, "run")
	require.Contains(t, out, "version")
	require.Contains(t, out, "journal export")
	require.Contains(t, out, "no command starts a recording session")
}

func TestRenderHelp_RootOrdersRunFirst(t *testing.T) {
	root := createTestTree()

	out := RenderHelp(root, root)

	runIdx := strings.Index(out, "run")
	versionIdx := strings.Index(out, "version")
	require.Greater(t, versionIdx, runIdx, "run should be listed before version")
}

func TestRenderHelp_Subcommand(t *testing.T) {
	root := createTestTree()
	run := root.Children["run"]

	out := RenderHelp(run, root)

	require.Contains(t, out, "slate run")
	require.Contains(t, out, "USAGE")
	require.Contains(t, out, "ARGUMENTS")
	require.Contains(t, out, "[path]")
	require.Contains(t, out, "FLAGS")
	require.Contains(t, out, "--hide")
}

func TestRenderHelp_SubcommandWithDescription(t *testing.T) {
	root := Root(RootSpec{Name: "slate", Usage: "slate [command]"})
	cmd := Command(CommandSpec{
		Name:        "encode",
		Parent:      root,
		Summary:     "Encode a capture",
		Description: "Delegates to the slate-encode sidecar.",
		Usage:       "slate encode [encoder args]",
		Action:      mockAction,
	})

	out := RenderHelp(cmd, root)

	require.Contains(t, out, "Delegates to the slate-encode sidecar.")
}

func TestRenderHelp_GroupListsChildren(t *testing.T) {
	root := createTestTree()
	journal := root.Children["journal"]

	out := RenderHelp(journal, root)

	require.Contains(t, out, "COMMANDS")
	require.Contains(t, out, "export")
}
