// Package cli implements the tt command line on top of the API.
package cli

import (
	"context"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"timetracker/internal/api"
	"timetracker/internal/config"
	"timetracker/internal/errors"
)

// Backend is what the commands need from a running application.
type Backend interface {
	API() api.API
	StartScheduler(ctx context.Context) error
	Close() error
}

// Connector builds a Backend for a loaded configuration. Logs go to logOut.
type Connector func(cfg *config.Config, logOut io.Writer) (Backend, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	connect Connector
	out     io.Writer
	errOut  io.Writer

	config  *config.Config
	backend Backend
	app     *App

	configFile string
	userID     int64
	jsonOutput bool
	dbDir      string
	dbFilename string
	timezone   string
	logLevel   string
	logFormat  string
	timeout    time.Duration
}

// NewRootCommand creates the root cobra command with global flags. The
// backend is only connected once a command that needs it runs.
func NewRootCommand(connect Connector, out, errOut io.Writer) *RootCommand {
	root := &RootCommand{
		connect: connect,
		out:     out,
		errOut:  errOut,
	}

	root.cmd = &cobra.Command{
		Use:   "tt",
		Short: "Track time spent on tasks",
		Long: `tt records work sessions against tasks, one running session per user.

Starting a task while another is running closes the running one at the same
instant. Sessions left running past midnight are closed at 23:59 of the day
they started by the auto-completion sweep (tt sweep, or tt daemon).

EXAMPLES:
  tt user add "Ada Lovelace" ada@example.com
  tt --user 1 task add "Write report"
  tt --user 1 start "Write report"
  tt --user 1 status
  tt --user 1 stop
  tt --user 1 durations                    # per task, today so far
  tt --user 1 intervals --from 09:00 --to 17:00
  tt --user 1 total --last 2w

CONFIGURATION:
  Flags override environment variables, which override the YAML file named
  by --config or TT_CONFIG, which overrides the defaults.

    TT_USER                Acting user ID
    TT_DB_DIR              Database directory (default: ~/.tt)
    TT_DB_FILENAME         Database filename (default: tt.db)
    TT_TIMEZONE            IANA zone used for calendar days (default: Local)
    TT_INACTIVE_LABEL      Label for gaps in the timeline (default: Inactive)
    TT_SWEEPER_ENABLED     Run auto-completion in the daemon (default: true)
    TT_SWEEPER_AT          Daily sweep time, HH:MM (default: 23:59)
    TT_LOG_LEVEL           debug, info, warn or error (default: info)
    TT_LOG_FORMAT          text or json (default: text)
    TT_APP_TIMEOUT         Per-command timeout (default: 60s)
    TT_DEBUG               Force debug logging`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command exposes the underlying cobra command.
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command and releases the backend afterwards.
func (r *RootCommand) Execute(ctx context.Context) error {
	defer r.close()
	return r.cmd.ExecuteContext(ctx)
}

func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.StringVar(&r.configFile, "config", "", "YAML configuration file (overrides TT_CONFIG)")
	flags.Int64VarP(&r.userID, "user", "u", 0, "acting user ID (overrides TT_USER)")
	flags.BoolVar(&r.jsonOutput, "json", false, "print results as JSON")

	flags.StringVar(&r.dbDir, "db-dir", "", "database directory (overrides TT_DB_DIR)")
	flags.StringVar(&r.dbFilename, "db-filename", "", "database filename (overrides TT_DB_FILENAME)")
	flags.StringVar(&r.timezone, "timezone", "", "IANA timezone for calendar days (overrides TT_TIMEZONE)")
	flags.StringVar(&r.logLevel, "log-level", "", "log level (overrides TT_LOG_LEVEL)")
	flags.StringVar(&r.logFormat, "log-format", "", "log format, text or json (overrides TT_LOG_FORMAT)")
	flags.DurationVar(&r.timeout, "timeout", 0, "per-command timeout (overrides TT_APP_TIMEOUT)")
}

func (r *RootCommand) addSubcommands() {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	userCmd.AddCommand(
		&cobra.Command{
			Use:   "add <name> <email>",
			Short: "Register a user",
			Args:  cobra.MinimumNArgs(2),
			RunE:  r.run(func(app *App) Command { return NewUserAddCommand(app) }),
		},
		&cobra.Command{
			Use:   "list",
			Short: "List users",
			Args:  cobra.NoArgs,
			RunE:  r.run(func(app *App) Command { return NewUserListCommand(app) }),
		},
	)

	var description string
	taskAddCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(1),
		RunE:  r.run(func(app *App) Command { return NewTaskAddCommand(app, description) }),
	}
	taskAddCmd.Flags().StringVarP(&description, "description", "d", "", "task description")

	var includeInactive bool
	taskListCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE:  r.run(func(app *App) Command { return NewTaskListCommand(app, includeInactive) }),
	}
	taskListCmd.Flags().BoolVarP(&includeInactive, "all", "a", false, "include inactive tasks")

	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	taskCmd.AddCommand(
		taskAddCmd,
		taskListCmd,
		&cobra.Command{
			Use:   "activate <task id>",
			Short: "Mark a task active",
			Args:  cobra.ExactArgs(1),
			RunE:  r.run(func(app *App) Command { return NewTaskActiveCommand(app, true) }),
		},
		&cobra.Command{
			Use:   "deactivate <task id>",
			Short: "Mark a task inactive; its history is kept",
			Args:  cobra.ExactArgs(1),
			RunE:  r.run(func(app *App) Command { return NewTaskActiveCommand(app, false) }),
		},
	)

	startCmd := &cobra.Command{
		Use:   "start <task id | title>",
		Short: "Start tracking a task",
		Long:  "Start tracking time for a task. A running session is stopped at the same instant.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  r.run(func(app *App) Command { return NewStartCommand(app) }),
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running session",
		Args:  cobra.NoArgs,
		RunE:  r.run(func(app *App) Command { return NewStopCommand(app) }),
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the running session",
		Args:  cobra.NoArgs,
		RunE:  r.run(func(app *App) Command { return NewStatusCommand(app) }),
	}

	var entriesWindow rangeFlags
	entriesCmd := &cobra.Command{
		Use:   "entries",
		Short: "List time entries (default: today so far)",
		Args:  cobra.NoArgs,
		RunE:  r.run(func(app *App) Command { return NewEntriesCommand(app, entriesWindow) }),
	}
	entriesWindow.register(entriesCmd)

	var durationsWindow rangeFlags
	durationsCmd := &cobra.Command{
		Use:   "durations",
		Short: "Show time per task (default: today so far)",
		Long: `Show time per task, ordered by when each task was first tracked.

With only --to, the window starts at the beginning of that day.
With only --from, the window ends now.`,
		Args: cobra.NoArgs,
		RunE: r.run(func(app *App) Command { return NewDurationsCommand(app, durationsWindow) }),
	}
	durationsWindow.register(durationsCmd)

	var intervalsWindow rangeFlags
	intervalsCmd := &cobra.Command{
		Use:   "intervals",
		Short: "Show the timeline of work and inactivity (default: last 7 days)",
		Long: `Show the timeline of work and inactivity.

--from and --to must be given together. A running session extends to now,
even past --to.`,
		Args: cobra.NoArgs,
		RunE: r.run(func(app *App) Command { return NewIntervalsCommand(app, intervalsWindow) }),
	}
	intervalsWindow.register(intervalsCmd)

	var totalWindow rangeFlags
	totalCmd := &cobra.Command{
		Use:   "total",
		Short: "Show total work (default: last 7 days)",
		Long: `Show total work over a window.

With only --from, the window covers the seven days after it.
With only --to, it covers the seven days before it.`,
		Args: cobra.NoArgs,
		RunE: r.run(func(app *App) Command { return NewTotalCommand(app, totalWindow) }),
	}
	totalWindow.register(totalCmd)

	var confirm bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all of the user's time entries",
		Args:  cobra.NoArgs,
		RunE:  r.run(func(app *App) Command { return NewClearCommand(app, confirm) }),
	}
	clearCmd.Flags().BoolVarP(&confirm, "yes", "y", false, "confirm deletion")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Close sessions left running from earlier days",
		Args:  cobra.NoArgs,
		RunE:  r.run(func(app *App) Command { return NewSweepCommand(app) }),
	}

	daemonCmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the daily auto-completion sweep until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.ensureApp(cmd)
			if err != nil {
				return err
			}
			return NewDaemonCommand(app, r.backend).Execute(cmd.Context(), args)
		},
	}

	r.cmd.AddCommand(
		userCmd,
		taskCmd,
		startCmd,
		stopCmd,
		statusCmd,
		entriesCmd,
		durationsCmd,
		intervalsCmd,
		totalCmd,
		clearCmd,
		sweepCmd,
		daemonCmd,
	)
}

// run adapts a handler factory into a cobra RunE bounded by the configured timeout.
func (r *RootCommand) run(factory func(app *App) Command) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := r.ensureApp(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), r.config.Application.Timeout)
		defer cancel()

		return factory(app).Execute(ctx, args)
	}
}

// ensureApp loads configuration, connects the backend and builds the App on first use.
func (r *RootCommand) ensureApp(cmd *cobra.Command) (*App, error) {
	if r.app != nil {
		return r.app, nil
	}

	cfg, err := r.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	userID, err := r.resolveUser(cmd)
	if err != nil {
		return nil, err
	}

	backend, err := r.connect(cfg, r.errOut)
	if err != nil {
		return nil, NewErrorHandler().Handle("open tracker", err)
	}

	r.config = cfg
	r.backend = backend
	r.app = NewApp(backend.API(), cfg, r.out).WithUser(userID).WithJSON(r.jsonOutput)
	return r.app, nil
}

func (r *RootCommand) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	loader := config.NewLoader()
	if r.configFile != "" {
		loader.WithFile(r.configFile)
	}

	flags := cmd.Flags()
	overrides := &config.ConfigOverrides{}
	if flags.Changed("db-dir") {
		overrides.DBDir = &r.dbDir
	}
	if flags.Changed("db-filename") {
		overrides.DBFilename = &r.dbFilename
	}
	if flags.Changed("timezone") {
		overrides.Timezone = &r.timezone
	}
	if flags.Changed("log-level") {
		overrides.LogLevel = &r.logLevel
	}
	if flags.Changed("log-format") {
		overrides.LogFormat = &r.logFormat
	}
	if flags.Changed("timeout") {
		overrides.Timeout = &r.timeout
	}

	return loader.LoadWithOverrides(overrides)
}

func (r *RootCommand) resolveUser(cmd *cobra.Command) (int64, error) {
	if cmd.Flags().Changed("user") {
		return r.userID, nil
	}
	env := os.Getenv("TT_USER")
	if env == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(env, 10, 64)
	if err != nil {
		return 0, errors.NewInvalidArgumentError("TT_USER", env, "must be an integer user ID")
	}
	return id, nil
}

func (r *RootCommand) close() {
	if r.backend == nil {
		return
	}
	_ = r.backend.Close()
	r.backend = nil
	r.app = nil
}
