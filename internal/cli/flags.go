package cli

import "github.com/slate-tools/cli/internal/dispatchers"

var (
	RootFlags = []dispatchers.FlagDescriptor{
		{
			Names:       []string{"--help", "-h"},
			Description: "Show help",
			Scope:       dispatchers.FlagScopeGlobal,
		},
		{
			Names:       []string{"--version", "-v"},
			Description: "Show version",
			Scope:       dispatchers.FlagScopeGlobal,
		},
		{
			Names:       []string{"--no-color"},
			Description: "Disable colored output",
			Scope:       dispatchers.FlagScopeGlobal,
		},
		{
			Names:       []string{"--ask-path"},
			Description: "Prompt for the work directory even when one is saved",
			Scope:       dispatchers.FlagScopeLocal,
		},
		{
			Names:       []string{"--hide"},
			Description: "Start with the session surface collapsed",
			Scope:       dispatchers.FlagScopeLocal,
		},
	}

	RunFlags = []dispatchers.FlagDescriptor{
		{
			Names:       []string{"--ask-path"},
			Description: "Prompt for the work directory even when one is saved",
			Scope:       dispatchers.FlagScopeLocal,
		},
		{
			Names:       []string{"--hide"},
			Description: "Start with the session surface collapsed",
			Scope:       dispatchers.FlagScopeLocal,
		},
	}

	SessionsFlags = []dispatchers.FlagDescriptor{
		{
			Names:       []string{"--limit"},
			ValueHint:   "<n>",
			Description: "Limit number of results",
			Scope:       dispatchers.FlagScopeLocal,
		},
		{
			Names:       []string{"--since"},
			ValueHint:   "<date>",
			Description: "Show sessions started after date (YYYY-MM-DD)",
			Scope:       dispatchers.FlagScopeLocal,
		},
	}
)
