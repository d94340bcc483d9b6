package dispatchers

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/slate-tools/cli/internal/ui/style"
)

// commandDisplayOrder pins the listing order in help output. Commands
// not listed appear alphabetically after listed ones.
var commandDisplayOrder = map[string]int{
	"run":      1,
	"sessions": 2,
	"encode":   3,
	"version":  4,
}

// formatUsage styles the usage line with the command in Info color and the rest muted.
func formatUsage(usage string) string {
	// Find where the command ends (first [ or <)
	cmdEnd := len(usage)
	for i, c := range usage {
		if c == '[' || c == '<' {
			cmdEnd = i
			break
		}
	}

	cmd := strings.TrimSpace(usage[:cmdEnd])
	rest := ""
	if cmdEnd < len(usage) {
		rest = usage[cmdEnd:]
	}

	if rest == "" {
		return style.Info(cmd)
	}
	return style.Info(cmd) + " " + style.Muted(rest)
}

func collectLeafCommands(node *DispatchNode, out *[]*DispatchNode) {
	if node.Action != nil {
		*out = append(*out, node)
		return
	}

	for _, child := range node.Children {
		collectLeafCommands(child, out)
	}
}

func sortByDisplayOrder(nodes []*DispatchNode) {
	sort.Slice(nodes, func(i, j int) bool {
		nameI := strings.Join(nodes[i].Path[1:], " ")
		nameJ := strings.Join(nodes[j].Path[1:], " ")
		orderI, hasI := commandDisplayOrder[nameI]
		orderJ, hasJ := commandDisplayOrder[nameJ]
		if hasI && hasJ {
			return orderI < orderJ
		}
		if hasI {
			return true
		}
		if hasJ {
			return false
		}
		return nameI < nameJ
	})
}

// RenderHelp builds the help text for a node. Split from HelpAction so
// tests can inspect output without capturing stdout.
func RenderHelp(node *DispatchNode, root *DispatchNode) string {
	var out bytes.Buffer

	if node == root {
		out.WriteString(root.Name)
		out.WriteString(" - ")
		out.WriteString(node.Summary)
		out.WriteString("\n\n")

		out.WriteString("USAGE\n   ")
		out.WriteString(formatUsage(node.Usage))
		out.WriteString("\n\n")

		var leaves []*DispatchNode
		for _, child := range root.Children {
			collectLeafCommands(child, &leaves)
		}
		sortByDisplayOrder(leaves)

		out.WriteString("COMMANDS\n")
		for _, cmd := range leaves {
			displayName := strings.Join(cmd.Path[1:], " ")
			fmt.Fprintf(&out, "   %s  %s\n", style.Info(fmt.Sprintf("%-12s", displayName)), cmd.Summary)
		}
		out.WriteString("\n")

		if len(root.Flags) > 0 {
			out.WriteString("FLAGS\n")
			writeFlagLines(&out, root.Flags)
			out.WriteString("\n")
		}

		fmt.Fprintf(&out, "Running '%s' with no command starts a recording session.\n", root.Name)
		fmt.Fprintf(&out, "See '%s help <command>' for detailed help on a specific command.\n", root.Name)
	} else {
		out.WriteString(strings.Join(node.Path, " "))
		if node.Summary != "" {
			out.WriteString(" - ")
			out.WriteString(node.Summary)
		}
		out.WriteString("\n\n")

		out.WriteString("USAGE\n   ")
		out.WriteString(formatUsage(node.Usage))
		out.WriteString("\n\n")

		if node.Description != "" {
			out.WriteString(node.Description)
			out.WriteString("\n\n")
		}

		if len(node.Children) > 0 {
			out.WriteString("COMMANDS\n")

			children := make([]*DispatchNode, 0, len(node.Children))
			for _, child := range node.Children {
				children = append(children, child)
			}
			sortByDisplayOrder(children)

			for _, child := range children {
				fmt.Fprintf(&out, "   %s  %s\n", style.Info(fmt.Sprintf("%-12s", child.Name)), child.Summary)
			}
			out.WriteString("\n")
		}

		if len(node.Args) > 0 {
			out.WriteString("ARGUMENTS\n")
			for _, a := range node.Args {
				name := a.Name
				if !a.Required {
					name = "[" + name + "]"
				}
				fmt.Fprintf(&out, "   %s  %s\n", style.Info(fmt.Sprintf("%-12s", name)), a.Description)
			}
			out.WriteString("\n")
		}

		if len(node.Flags) > 0 {
			out.WriteString("FLAGS\n")
			writeFlagLines(&out, node.Flags)
			out.WriteString("\n")
		}

		fmt.Fprintf(&out, "See '%s help <command>' to read about a specific command.\n", root.Name)
	}

	return out.String()
}

func writeFlagLines(out *bytes.Buffer, flags []FlagDescriptor) {
	for _, f := range flags {
		name := strings.Join(f.Names, ", ")
		if f.ValueHint != "" {
			name = name + " " + f.ValueHint
		}
		fmt.Fprintf(out, "   %s  %s\n", style.Info(fmt.Sprintf("%-24s", name)), f.Description)
	}
}

// HelpAction generates help output for a command node.
func HelpAction(node *DispatchNode, root *DispatchNode) CommandFunc {
	return func(args []string, flags *ParsedFlags) error {
		fmt.Print(RenderHelp(node, root))
		return nil
	}
}
