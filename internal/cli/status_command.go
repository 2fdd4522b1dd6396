package cli

import (
	"context"

	"opdash/internal/domain"
	"opdash/internal/errors"
)

// StatusCommand handles the status command
type StatusCommand struct {
	app *App
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{app: app}
}

// Execute moves the task args[0] to the status args[1]
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("arguments", args, "usage: opdash status <task-id> <status>")
	}

	status, err := domain.ParseStatus(args[1])
	if err != nil {
		return errors.NewInvalidInputError("status", args[1], "must be Pendiente, En Proceso or Terminado")
	}

	taskID, err := c.app.dashboard.ResolveTaskID(args[0])
	if err != nil {
		return c.app.errors.Handle("change status", err)
	}

	result, err := c.app.dashboard.ChangeStatus(ctx, taskID, status)
	if err != nil {
		return c.app.errors.Handle("change status", err)
	}
	if note := result.Notification; note != nil && note.Severity == domain.SeverityError {
		return c.app.errors.Handle("change status", errors.NewValidationError(note.Message, nil))
	}

	c.app.printResult(result)
	return nil
}
