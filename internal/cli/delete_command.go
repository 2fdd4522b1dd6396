package cli

import (
	"context"

	"opdash/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute deletes the active task args[0] after confirmation
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("arguments", args, "usage: opdash delete <task-id>")
	}

	taskID, err := c.app.dashboard.ResolveTaskID(args[0])
	if err != nil {
		return c.app.errors.Handle("delete task", err)
	}

	result, err := c.app.dashboard.DeleteTask(ctx, taskID, c.app.Confirmer())
	if err != nil {
		return c.app.errors.Handle("delete task", err)
	}

	c.app.printResult(result)
	return nil
}
