package cli

import (
	"context"

	"opdash/internal/domain"
	"opdash/internal/errors"
)

// ThemeCommand handles the theme command
type ThemeCommand struct {
	app *App
}

// NewThemeCommand creates a new theme command handler
func NewThemeCommand(app *App) *ThemeCommand {
	return &ThemeCommand{app: app}
}

// Execute prints the theme, toggles it, or sets it to light or dark
func (c *ThemeCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		c.app.printf("Theme: %s\n", c.app.dashboard.Theme())
		return nil
	}

	if args[0] == "toggle" {
		theme, err := c.app.dashboard.ToggleTheme(ctx)
		if err != nil {
			return c.app.errors.Handle("toggle theme", err)
		}
		c.app.printf("Theme: %s\n", theme)
		return nil
	}

	theme, err := domain.ParseTheme(args[0])
	if err != nil {
		return errors.NewInvalidInputError("theme", args[0], "must be light, dark or toggle")
	}
	if err := c.app.dashboard.SetTheme(ctx, theme); err != nil {
		return c.app.errors.Handle("set theme", err)
	}
	c.app.printf("Theme: %s\n", theme)
	return nil
}
