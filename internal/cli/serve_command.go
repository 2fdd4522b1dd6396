package cli

import (
	"context"
	"fmt"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	httpapi "opdash/internal/http"
	"opdash/internal/logging"
)

// ServeCommand handles the serve command
type ServeCommand struct {
	app *App
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app}
}

// Execute serves the JSON API until SIGINT/SIGTERM, then drains in-flight
// requests within the configured shutdown timeout.
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	server := httpapi.NewServer(c.app.dashboard, c.app.config.Server.Addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()
	c.app.printf("Serving dashboard API on http://%s (Ctrl+C to stop)\n", server.Addr())

	wait := gfshutdown.GracefulShutdown(
		ctx,
		c.app.config.Server.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				logging.Logger().Info("graceful shutdown initiated")
				return server.Shutdown(ctx)
			},
		},
	)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	case code := <-wait:
		logging.Logger().Info("server stopped", "exit_code", code)
		if code != 0 {
			return fmt.Errorf("shutdown finished with exit code %d", code)
		}
		return nil
	}
}
