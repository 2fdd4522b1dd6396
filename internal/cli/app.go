package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"opdash/internal/api"
	"opdash/internal/config"
)

// App carries what every command handler needs: the dashboard, the resolved
// configuration and the terminal streams.
type App struct {
	dashboard api.DashboardAPI
	config    *config.Config
	in        *bufio.Reader
	out       io.Writer
	errors    *ErrorHandler
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(dashboard api.DashboardAPI, cfg *config.Config, in io.Reader, out io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &App{
		dashboard: dashboard,
		config:    cfg,
		in:        bufio.NewReader(in),
		out:       out,
		errors:    NewErrorHandler(),
	}
}

// Confirmer returns the gate used for destructive commands. With
// --yes (or OPDASH_ASSUME_YES) every prompt is approved.
func (a *App) Confirmer() api.Confirmer {
	if a.config.Application.AssumeYes {
		return api.AlwaysConfirm
	}
	return api.ConfirmFunc(a.prompt)
}

// prompt asks on out and reads a y/yes answer from in. EOF counts as no.
func (a *App) prompt(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(a.out, "%s [y/N]: ", prompt)

	line, err := a.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// printResult reports what an intent did
func (a *App) printResult(result *api.Result) {
	if result == nil {
		return
	}
	if result.Notification != nil {
		fmt.Fprintf(a.out, "[%s] %s\n", result.Notification.Severity, result.Notification.Message)
		return
	}
	if !result.Applied {
		fmt.Fprintln(a.out, "No changes made")
	}
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}
