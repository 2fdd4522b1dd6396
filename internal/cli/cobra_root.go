package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"opdash/internal/api"
	"opdash/internal/config"
)

// Opener builds the dashboard once flags have been applied to the
// configuration.
type Opener func(ctx context.Context, cfg *config.Config) (api.DashboardAPI, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd       *cobra.Command
	config    *config.Config
	open      Opener
	dashboard api.DashboardAPI
	in        io.Reader
	out       io.Writer
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg *config.Config, open Opener) *RootCommand {
	root := &RootCommand{
		config: cfg,
		open:   open,
		in:     os.Stdin,
		out:    os.Stdout,
	}

	root.cmd = &cobra.Command{
		Use:   "opdash",
		Short: "An operations dashboard for production tasks",
		Long: `OpDash tracks production tasks (assigned vs. worked units), moves them
through Pendiente -> En Proceso -> Terminado and archives finished tasks to a
history log.

EXAMPLES:
  opdash list                              # List active tasks
  opdash list history                      # List archived tasks
  opdash add "Inventario Q2" --owner "Diana Arteaga" --assigned 120
  opdash add "Revisión" --owner "Steven Díaz" --quick
  opdash status 2 "En Proceso"             # Change the status of task 2
  opdash edit 2 --worked 40                # Update fields of task 2
  opdash delete 4                          # Delete task 4 (asks first)
  opdash summary                           # KPIs and chart series
  opdash output format=csv history > h.csv # Export history to CSV
  opdash serve                             # Serve the local JSON API

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > .env > defaults

  Storage Configuration:
    OPDASH_STORAGE_BACKEND                 sqlite or redis (default: sqlite)
    OPDASH_DB_DIR                          Database directory (default: ~/.opdash)
    OPDASH_DB_FILENAME                     Database filename (default: opdash.db)
    OPDASH_REDIS_ADDR                      Redis address (default: 127.0.0.1:6379)
    OPDASH_REDIS_PREFIX                    Redis key prefix (default: none)
    OPDASH_STORAGE_TIMEOUT                 Load/save timeout (default: 5s)

  Dashboard Configuration:
    OPDASH_NOTIFICATION_LIMIT              Live notifications kept (default: 5)
    OPDASH_NOTIFICATION_TTL                Notification lifetime (default: 5s)
    OPDASH_THEME                           auto, light or dark (default: auto)
    OPDASH_VALIDATION_TASK_NAME_MAX        Max task name length (default: 255)

  Server Configuration:
    OPDASH_SERVER_ADDR                     Listen address (default: 127.0.0.1:8080)
    OPDASH_SERVER_SHUTDOWN_TIMEOUT         Drain timeout (default: 10s)

  Application Configuration:
    OPDASH_APP_TIMEOUT                     Command timeout (default: 60s)
    OPDASH_APP_VERBOSE                     Verbose output (default: false)
    OPDASH_ASSUME_YES                      Skip confirmations (default: false)
    OPDASH_DEBUG                           Debug logging to stderr`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.getConfigFromFlags()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// SetIO replaces the terminal streams, mainly for tests
func (r *RootCommand) SetIO(in io.Reader, out io.Writer) {
	r.in = in
	r.out = out
	r.cmd.SetOut(out)
	r.cmd.SetErr(out)
}

// SetArgs sets the arguments parsed by Execute
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Execute runs the root command and closes the dashboard afterwards
func (r *RootCommand) Execute() error {
	err := r.cmd.Execute()
	if r.dashboard != nil {
		if closeErr := r.dashboard.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		r.dashboard = nil
	}
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Storage configuration
	flags.String("storage-backend", "", "Storage backend, sqlite or redis (overrides OPDASH_STORAGE_BACKEND)")
	flags.String("db-dir", "", "Database directory (overrides OPDASH_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides OPDASH_DB_FILENAME)")
	flags.String("redis-addr", "", "Redis address (overrides OPDASH_REDIS_ADDR)")
	flags.Duration("storage-timeout", 0, "Storage load/save timeout (overrides OPDASH_STORAGE_TIMEOUT)")

	// Server configuration
	flags.String("server-addr", "", "JSON API listen address (overrides OPDASH_SERVER_ADDR)")

	// Display configuration
	flags.String("theme", "", "Theme used when none is stored: auto, light or dark (overrides OPDASH_THEME)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides OPDASH_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides OPDASH_APP_VERBOSE)")
	flags.BoolP("yes", "y", false, "Answer yes to confirmation prompts (overrides OPDASH_ASSUME_YES)")
}

// addTaskFlags adds the task form flags shared by add and edit
func addTaskFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("name", "", "Task name")
	flags.String("owner", "", "Task owner")
	flags.Int("assigned", 0, "Units assigned")
	flags.Int("worked", 0, "Units worked")
	flags.String("country", "", "Country: SV, GT, CR or Reg")
	flags.String("priority", "", "Priority: Alta, Media or Baja")
	flags.String("start", "", "Start date (YYYY-MM-DD)")
	flags.String("due", "", "Due date (YYYY-MM-DD)")
	flags.String("status", "", "Status: Pendiente, En Proceso or Terminado")
}

// taskFormFromFlags collects the task form flags that were given
func taskFormFromFlags(cmd *cobra.Command) TaskForm {
	flags := cmd.Flags()
	var form TaskForm

	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	num := func(name string) *int {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetInt(name)
		return &v
	}

	form.Name = str("name")
	form.Owner = str("owner")
	form.Assigned = num("assigned")
	form.Worked = num("worked")
	form.Country = str("country")
	form.Priority = str("priority")
	form.StartDate = str("start")
	form.DueDate = str("due")
	form.Status = str("status")
	return form
}

// withApp opens the dashboard on first use and runs fn under the
// application timeout.
func (r *RootCommand) withApp(fn func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
		defer cancel()

		app, err := r.app(ctx)
		if err != nil {
			return err
		}
		return fn(ctx, app, cmd, args)
	}
}

func (r *RootCommand) app(ctx context.Context) (*App, error) {
	if r.dashboard == nil {
		if r.open == nil {
			return nil, fmt.Errorf("dashboard opener not configured")
		}
		if r.config.Application.Verbose {
			fmt.Fprintf(r.out, "Using %s storage\n", r.describeStorage())
		}
		dashboard, err := r.open(ctx, r.config)
		if err != nil {
			return nil, NewErrorHandler().Handle("open dashboard", err)
		}
		r.dashboard = dashboard
	}
	return NewApp(r.dashboard, r.config, r.in, r.out), nil
}

func (r *RootCommand) describeStorage() string {
	if r.config.Storage.Backend == config.BackendRedis {
		return "redis at " + r.config.Storage.RedisAddr
	}
	return "sqlite at " + r.config.GetDatabasePath()
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	listCmd := &cobra.Command{
		Use:   "list [active|history] [text]",
		Short: "List active or archived tasks",
		Long: `List tasks in collection order.

The first argument selects the collection (default: active). Remaining
arguments filter by task name or owner (case-insensitive partial matching).

Examples:
  opdash list                   # Active tasks
  opdash list history           # Archived tasks
  opdash list active "sofia"    # Active tasks owned by or named after Sofia`,
		RunE: r.withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			return NewListCommand(app).Execute(ctx, args)
		}),
	}

	statusCmd := &cobra.Command{
		Use:   "status <task-id> <status>",
		Short: "Change the status of an active task",
		Long: `Move an active task to Pendiente, En Proceso or Terminado.

A task needs worked units before it can leave Pendiente. Moving a task to
Terminado archives it to the history.`,
		Args: cobra.ExactArgs(2),
		RunE: r.withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			return NewStatusCommand(app).Execute(ctx, args)
		}),
	}

	addCmd := &cobra.Command{
		Use:   "add [task name]",
		Short: "Create a task",
		Long: `Create a task from the given flags. Unset fields default to country Reg,
priority Media, status Pendiente and today's dates.

With --quick only the name and --owner are used.`,
		RunE: r.withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			quick, _ := cmd.Flags().GetBool("quick")
			return NewAddCommand(app).Execute(ctx, args, taskFormFromFlags(cmd), quick)
		}),
	}
	addTaskFlags(addCmd)
	addCmd.Flags().Bool("quick", false, "Quick-add with default fields")

	editCmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Edit an active task",
		Long:  "Open an active task, apply the given field flags and save it. Saving with status Terminado archives the task.",
		Args:  cobra.ExactArgs(1),
		RunE: r.withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			return NewEditCommand(app).Execute(ctx, args, taskFormFromFlags(cmd))
		}),
	}
	addTaskFlags(editCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete an active task",
		Long: `Delete an active task permanently.

This operation cannot be undone. You will be asked to confirm unless --yes is given.`,
		Args: cobra.ExactArgs(1),
		RunE: r.withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			return NewDeleteCommand(app).Execute(ctx, args)
		}),
	}

	clearHistoryCmd := &cobra.Command{
		Use:   "clear-history",
		Short: "Permanently clear the history",
		Args:  cobra.NoArgs,
		RunE: r.withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			return NewClearCommand(app, ClearHistory).Execute(ctx, args)
		}),
	}

	clearActiveCmd := &cobra.Command{
		Use:   "clear-active",
		Short: "Delete all active tasks",
		Args:  cobra.NoArgs,
		RunE: r.withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			return NewClearCommand(app, ClearActive).Execute(ctx, args)
		}),
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the demo dataset",
		Args:  cobra.NoArgs,
		RunE: r.withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			return NewClearCommand(app, ClearReset).Execute(ctx, args)
		}),
	}

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show KPIs and chart series",
		Long:  "Show completion KPIs for the active tasks and series by country, priority and owner for both collections.",
		Args:  cobra.NoArgs,
		RunE: r.withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			return NewSummaryCommand(app).Execute(ctx, args)
		}),
	}

	outputCmd := &cobra.Command{
		Use:   "output format=csv [active|history]",
		Short: "Export tasks in specified format",
		Long: `Export active or archived tasks in the specified format.

Supported formats:
  csv - Comma-separated values format

Example:
  opdash output format=csv history`,
		Args: cobra.RangeArgs(1, 2),
		RunE: r.withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			return NewOutputCommand(app).Execute(ctx, args)
		}),
	}

	themeCmd := &cobra.Command{
		Use:   "theme [toggle|light|dark]",
		Short: "Show, toggle or set the theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: r.withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			return NewThemeCommand(app).Execute(ctx, args)
		}),
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local JSON API",
		Long:  "Start the dashboard JSON API and block until SIGINT or SIGTERM.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			openCtx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			app, err := r.app(openCtx)
			cancel()
			if err != nil {
				return err
			}
			// The server outlives the application timeout
			return NewServeCommand(app).Execute(context.Background(), args)
		},
	}

	r.cmd.AddCommand(
		listCmd,
		statusCmd,
		addCmd,
		editCmd,
		deleteCmd,
		clearHistoryCmd,
		clearActiveCmd,
		resetCmd,
		summaryCmd,
		outputCmd,
		themeCmd,
		serveCmd,
	)
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// getConfigFromFlags updates the configuration with values from command-line flags
func (r *RootCommand) getConfigFromFlags() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("storage-backend") {
		v, _ := flags.GetString("storage-backend")
		overrides.StorageBackend = &v
	}
	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("redis-addr") {
		v, _ := flags.GetString("redis-addr")
		overrides.RedisAddr = &v
	}
	if flags.Changed("storage-timeout") {
		v, _ := flags.GetDuration("storage-timeout")
		overrides.StorageTimeout = &v
	}
	if flags.Changed("server-addr") {
		v, _ := flags.GetString("server-addr")
		overrides.ServerAddr = &v
	}
	if flags.Changed("theme") {
		v, _ := flags.GetString("theme")
		overrides.Theme = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}
	if flags.Changed("yes") {
		v, _ := flags.GetBool("yes")
		overrides.AssumeYes = &v
	}

	config.ApplyOverrides(r.config, overrides)
	return r.config.Validate()
}
