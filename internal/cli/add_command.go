package cli

import (
	"context"
	"strings"

	"opdash/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	app *App
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute creates a task named by args. With quick set only the owner is
// taken from the form and the remaining fields get quick-add defaults.
func (c *AddCommand) Execute(ctx context.Context, args []string, form TaskForm, quick bool) error {
	name := strings.Join(args, " ")
	if name != "" {
		form.Name = &name
	}

	if quick {
		var owner string
		if form.Owner != nil {
			owner = *form.Owner
		}
		var taskName string
		if form.Name != nil {
			taskName = *form.Name
		}
		result, err := c.app.dashboard.QuickAdd(ctx, taskName, owner)
		if err != nil {
			return c.app.errors.Handle("add task", err)
		}
		c.app.printResult(result)
		return nil
	}

	task, err := form.Apply(c.app.dashboard.DraftTask())
	if err != nil {
		return err
	}

	c.app.dashboard.OpenCreate()
	result, err := c.app.dashboard.SaveTask(ctx, task)
	if err != nil {
		c.app.dashboard.CloseSession()
		return c.app.errors.Handle("add task", err)
	}

	c.app.printResult(result)
	if result.Task != nil {
		c.app.printf("ID: %s\n", result.Task.ID)
	}
	return nil
}

// EditCommand handles the edit command
type EditCommand struct {
	app *App
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app}
}

// Execute opens the task args[0] for editing, applies the form and saves it
func (c *EditCommand) Execute(ctx context.Context, args []string, form TaskForm) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("arguments", args, "usage: opdash edit <task-id> [flags]")
	}
	if form.IsEmpty() {
		return errors.NewInvalidInputError("flags", nil, "nothing to change, pass at least one field flag")
	}

	taskID, err := c.app.dashboard.ResolveTaskID(args[0])
	if err != nil {
		return c.app.errors.Handle("edit task", err)
	}

	session, err := c.app.dashboard.OpenEdit(taskID)
	if err != nil {
		return c.app.errors.Handle("edit task", err)
	}

	task, err := form.Apply(*session.Task)
	if err != nil {
		c.app.dashboard.CloseSession()
		return err
	}

	result, err := c.app.dashboard.SaveTask(ctx, task)
	if err != nil {
		c.app.dashboard.CloseSession()
		return c.app.errors.Handle("edit task", err)
	}

	c.app.printResult(result)
	return nil
}
