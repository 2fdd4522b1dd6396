package cli

import (
	"context"

	"opdash/internal/api"
	"opdash/internal/errors"
)

// Bulk actions handled by ClearCommand
const (
	ClearHistory = "history"
	ClearActive  = "active"
	ClearReset   = "reset"
)

// ClearCommand handles clear-history, clear-active and reset
type ClearCommand struct {
	app    *App
	target string
}

// NewClearCommand creates a handler for one of the bulk actions
func NewClearCommand(app *App, target string) *ClearCommand {
	return &ClearCommand{app: app, target: target}
}

// Execute runs the bulk action after confirmation
func (c *ClearCommand) Execute(ctx context.Context, args []string) error {
	var (
		result *api.Result
		err    error
	)

	confirm := c.app.Confirmer()
	switch c.target {
	case ClearHistory:
		result, err = c.app.dashboard.ClearHistory(ctx, confirm)
	case ClearActive:
		result, err = c.app.dashboard.ClearActiveTasks(ctx, confirm)
	case ClearReset:
		result, err = c.app.dashboard.ResetToDefaults(ctx, confirm)
	default:
		return errors.NewInvalidInputError("target", c.target, "unknown bulk action")
	}
	if err != nil {
		return c.app.errors.Handle("clear "+c.target, err)
	}

	c.app.printResult(result)
	return nil
}
