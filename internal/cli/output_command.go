package cli

import (
	"context"
	"strings"

	"opdash/internal/api"
	"opdash/internal/errors"
)

// OutputCommand handles the output command
type OutputCommand struct {
	app *App
}

// NewOutputCommand creates a new output command handler
func NewOutputCommand(app *App) *OutputCommand {
	return &OutputCommand{app: app}
}

// Execute runs the output command
func (c *OutputCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "output", "usage: opdash output format=csv [active|history]")
	}

	format := args[0]
	if !strings.HasPrefix(format, "format=") {
		return errors.NewInvalidInputError("format", format, "invalid format option")
	}

	tasks := c.app.dashboard.Active()
	if len(args) > 1 {
		switch args[1] {
		case "active":
		case "history":
			tasks = c.app.dashboard.History()
		default:
			return errors.NewInvalidInputError("collection", args[1], "must be active or history")
		}
	}

	format = strings.TrimPrefix(format, "format=")
	switch format {
	case "csv":
		return api.WriteCSV(c.app.out, tasks)
	default:
		return errors.NewInvalidInputError("format", format, "unsupported format")
	}
}
