package cli

import (
	"context"
	"fmt"
	"strings"

	"opdash/internal/domain"
	"opdash/internal/errors"
)

// ListCommand handles the list command
type ListCommand struct {
	app *App
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute runs the list command. The first argument may select the
// collection (active or history); the remaining arguments filter by name or
// owner.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	tasks := c.app.dashboard.Active()
	if len(args) > 0 {
		switch args[0] {
		case "active":
			args = args[1:]
		case "history":
			tasks = c.app.dashboard.History()
			args = args[1:]
		}
	}

	if len(args) > 0 {
		text := strings.Join(args, " ")
		if strings.TrimSpace(text) == "" {
			return errors.NewInvalidInputError("filter", text, "filter text cannot be blank")
		}
		tasks = filterTasks(tasks, text)
	}

	return c.printTasks(tasks)
}

// filterTasks keeps tasks whose name or owner contains text, case-insensitively
func filterTasks(tasks []domain.Task, text string) []domain.Task {
	needle := strings.ToLower(text)
	var matched []domain.Task
	for _, task := range tasks {
		if strings.Contains(strings.ToLower(task.Name), needle) || strings.Contains(strings.ToLower(task.Owner), needle) {
			matched = append(matched, task)
		}
	}
	return matched
}

// printTasks prints one line per task in collection order
func (c *ListCommand) printTasks(tasks []domain.Task) error {
	out := c.app.out
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found")
		return nil
	}

	fmt.Fprintf(out, "%-10s %-26s %-20s %9s %-8s %-4s %-6s %-11s %s\n",
		"ID", "Name", "Owner", "Progress", "", "Ctry", "Prio", "Due", "Status")
	fmt.Fprintln(out, strings.Repeat("-", 110))

	for _, task := range tasks {
		fmt.Fprintf(out, "%-10s %-26s %-20s %9s %-8s %-4s %-6s %-11s %s\n",
			shortID(task.ID),
			truncate(task.Name, 26),
			truncate(task.Owner, 20),
			fmt.Sprintf("%d/%d", task.WorkedCount, task.AssignedCount),
			progressBar(task.WorkedCount, task.AssignedCount, 8),
			task.Country,
			task.Priority,
			task.DueDate,
			task.Status,
		)
	}
	return nil
}

// shortID keeps seed ids intact and shortens generated uuids
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

func progressBar(worked, assigned, width int) string {
	filled := 0
	if assigned > 0 {
		filled = worked * width / assigned
	}
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
}
