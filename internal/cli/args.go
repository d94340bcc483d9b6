package cli

import "github.com/slate-tools/cli/internal/dispatchers"

var (
	OptionalWorkDirArg = []dispatchers.ArgSpec{
		{
			Name:        "path",
			Description: "Work directory for the recording (defaults to the saved one)",
			Required:    false,
		},
	}

	EncodeArgs = []dispatchers.ArgSpec{
		{
			Name:        "args",
			Description: "Arguments handed verbatim to the encoder sidecar",
			Required:    false,
		},
	}
)
