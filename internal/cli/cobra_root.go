package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"taskflow/internal/api"
	"taskflow/internal/clock"
	"taskflow/internal/config"
	"taskflow/internal/logging"
	"taskflow/internal/view"
)

// Opener builds the API once flags have been applied to the configuration.
// The returned cleanup releases whatever the opener acquired.
type Opener func(ctx context.Context, cfg *config.Config) (api.API, func() error, error)

// annotationNeedsAPI marks commands that open the task store.
const annotationNeedsAPI = "taskflow/needs-api"

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd        *cobra.Command
	opener     Opener
	config     *config.Config
	clock      clock.Clock
	app        *App
	cleanup    func() error
	errHandler *ErrorHandler
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(opener Opener) *RootCommand {
	root := &RootCommand{
		opener:     opener,
		errHandler: NewErrorHandler(),
	}

	root.cmd = &cobra.Command{
		Use:   "taskflow",
		Short: "A command-line task manager with built-in timers",
		Long: `taskflow keeps a personal task list with categories, priorities, due dates,
tags and per-task time tracking.

EXAMPLES:
  taskflow add "Write report" -c Work -p high --due tomorrow
  taskflow list --scope today                # Tasks due today
  taskflow list --sort priority              # Highest priority first
  taskflow list "report"                     # Search titles, descriptions and tags
  taskflow timer start 3f2a                  # Track time until Ctrl-C
  taskflow pomodoro --length 25m             # Focus countdown
  taskflow done 3f2a                         # Toggle completion
  taskflow theme toggle                      # Switch light/dark output

Task ids may be shortened to any unique prefix.

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config file > defaults
  The config file is TF_CONFIG or ~/.taskflow/config.yaml.

  Storage Configuration:
    TF_STORAGE_BACKEND                     sqlite or memory (default: sqlite)
    TF_STORAGE_DIR                         Data directory (default: ~/.taskflow)
    TF_STORAGE_FILENAME                    Database filename (default: taskflow.db)
    TF_STORAGE_QUERY_TIMEOUT               Read timeout (default: 5s)
    TF_STORAGE_WRITE_TIMEOUT               Write timeout (default: 10s)

  Task Configuration:
    TF_TASKS_DEFAULT_CATEGORY              Category for new tasks (default: Personal)
    TF_TASKS_DEFAULT_PRIORITY              Priority for new tasks (default: Medium)
    TF_TASKS_CATEGORIES                    Suggested categories (default: Work,Study,Personal)
    TF_TASKS_TITLE_MAX                     Maximum title length (default: 255)

  Timer and Display Configuration:
    TF_TIMER_POMODORO_LENGTH               Pomodoro length (default: 25m)
    TF_DISPLAY_DEFAULT_SORT                newest, due or priority (default: newest)
    TF_DISPLAY_DATE_FORMAT                 Due date layout (default: Jan 2, 2006)

  Application Configuration:
    TF_APP_TIMEOUT                         Per-command timeout (default: 30s)
    TF_APP_VERBOSE                         Enable debug output (default: false)
    TF_ENV                                 development, testing or production`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationNeedsAPI] != "true" {
				return nil
			}
			return root.open(cmd)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// SetClock replaces the clock handed to commands. Tests use a fake clock.
func (r *RootCommand) SetClock(c clock.Clock) {
	r.clock = c
}

// Command exposes the cobra command, mainly for tests.
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command and releases the store afterwards
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx and releases the store
// afterwards, even when the command failed.
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	if closeErr := r.close(); err == nil {
		err = closeErr
	}
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Config file (overrides TF_CONFIG)")

	// Storage configuration
	flags.String("storage-backend", "", "Storage backend: sqlite or memory (overrides TF_STORAGE_BACKEND)")
	flags.String("storage-dir", "", "Data directory (overrides TF_STORAGE_DIR)")
	flags.String("storage-filename", "", "Database filename (overrides TF_STORAGE_FILENAME)")
	flags.Duration("query-timeout", 0, "Storage read timeout (overrides TF_STORAGE_QUERY_TIMEOUT)")
	flags.Duration("write-timeout", 0, "Storage write timeout (overrides TF_STORAGE_WRITE_TIMEOUT)")

	// Task configuration
	flags.String("default-category", "", "Category for new tasks (overrides TF_TASKS_DEFAULT_CATEGORY)")
	flags.String("default-priority", "", "Priority for new tasks (overrides TF_TASKS_DEFAULT_PRIORITY)")

	// Timer and display configuration
	flags.Duration("pomodoro-length", 0, "Pomodoro length (overrides TF_TIMER_POMODORO_LENGTH)")
	flags.String("default-sort", "", "Default list order (overrides TF_DISPLAY_DEFAULT_SORT)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Per-command timeout (overrides TF_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable debug output (overrides TF_APP_VERBOSE)")
}

// getOverridesFromFlags collects the flags the user actually set
func (r *RootCommand) getOverridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	durationFlag := func(name string) *time.Duration {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetDuration(name)
		return &v
	}

	overrides.ConfigFile = stringFlag("config")
	overrides.StorageBackend = stringFlag("storage-backend")
	overrides.StorageDir = stringFlag("storage-dir")
	overrides.StorageFilename = stringFlag("storage-filename")
	overrides.QueryTimeout = durationFlag("query-timeout")
	overrides.WriteTimeout = durationFlag("write-timeout")
	overrides.DefaultCategory = stringFlag("default-category")
	overrides.DefaultPriority = stringFlag("default-priority")
	overrides.PomodoroLength = durationFlag("pomodoro-length")
	overrides.DefaultSort = stringFlag("default-sort")
	overrides.Timeout = durationFlag("app-timeout")
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}
	return overrides
}

// open loads configuration and builds the App for cmd
func (r *RootCommand) open(cmd *cobra.Command) error {
	cfg, err := config.NewLoader().LoadWithOverrides(r.getOverridesFromFlags())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	r.config = cfg
	if cfg.Application.Verbose {
		logging.SetDebug(true)
	}

	apiInstance, cleanup, err := r.opener(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to open task store: %w", err)
	}
	r.cleanup = cleanup

	r.app = NewAppWithConfig(apiInstance, cfg).WithIO(cmd.InOrStdin(), cmd.OutOrStdout())
	if r.clock != nil {
		r.app.WithClock(r.clock)
	}
	return nil
}

func (r *RootCommand) close() error {
	if r.app == nil {
		return nil
	}
	err := r.app.api.Close()
	if r.cleanup != nil {
		if cleanupErr := r.cleanup(); err == nil {
			err = cleanupErr
		}
	}
	r.app = nil
	r.cleanup = nil
	return err
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 30 * time.Second
}

// run wraps a handler with the per-command timeout and error mapping
func (r *RootCommand) run(operation string, handler func(app *App) Command) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
		defer cancel()
		return r.errHandler.Handle(operation, handler(r.app).Execute(ctx, args))
	}
}

// runForeground is run for commands that last until interrupted
func (r *RootCommand) runForeground(operation string, handler func(app *App) Command) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return r.errHandler.Handle(operation, handler(r.app).Execute(ctx, args))
	}
}

func needsAPI(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationNeedsAPI] = "true"
	return cmd
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.addCommand(),
		r.listCommand(),
		r.showCommand(),
		r.editCommand(),
		r.doneCommand(),
		r.deleteCommand(),
		r.timerCommand(),
		r.pomodoroCommand(),
		r.themeCommand(),
		r.statsCommand(),
		r.outputCommand(),
	)
}

func (r *RootCommand) addCommand() *cobra.Command {
	var opts AddCommand
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task",
		Long: `Add a task. The title is every positional argument joined by spaces.

Due dates accept YYYY-MM-DD, today, tomorrow or an offset such as 3d, 2w, 1mo.`,
		Args: cobra.MinimumNArgs(1),
		RunE: r.run("add task", func(app *App) Command {
			c := NewAddCommand(app)
			c.Description, c.Category, c.Priority, c.Due, c.Tags = opts.Description, opts.Category, opts.Priority, opts.Due, opts.Tags
			return c
		}),
	}
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "Task description")
	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "Category (default from config)")
	cmd.Flags().StringVarP(&opts.Priority, "priority", "p", "", "High, Medium or Low")
	cmd.Flags().StringVar(&opts.Due, "due", "", "Due date")
	cmd.Flags().StringSliceVarP(&opts.Tags, "tag", "t", nil, "Tag (repeatable)")
	_ = cmd.RegisterFlagCompletionFunc("category", r.completeCategories)
	_ = cmd.RegisterFlagCompletionFunc("priority", completePriorities)
	return needsAPI(cmd)
}

func (r *RootCommand) listCommand() *cobra.Command {
	var query api.ListQuery
	cmd := &cobra.Command{
		Use:   "list [search text]",
		Short: "List tasks",
		Long: `List tasks in a scope. Filters take precedence over search text, and
search text over sorting: only one of the three applies.

Scopes: dashboard (all), my-tasks (open), today, upcoming, completed.`,
		RunE: r.run("list tasks", func(app *App) Command {
			c := NewListCommand(app)
			c.Query = query
			return c
		}),
	}
	cmd.Flags().StringVar(&query.Scope, "scope", "", "Navigation scope")
	cmd.Flags().StringVarP(&query.Category, "category", "c", "", "Only this category")
	cmd.Flags().StringVarP(&query.Priority, "priority", "p", "", "Only this priority")
	cmd.Flags().BoolVar(&query.HighPriority, "high", false, "Only High priority tasks")
	cmd.Flags().BoolVar(&query.TimerRunning, "running", false, "Only tasks with a running timer")
	cmd.Flags().StringVarP(&query.Sort, "sort", "s", "", "newest, due or priority")
	_ = cmd.RegisterFlagCompletionFunc("scope", completeScopes)
	_ = cmd.RegisterFlagCompletionFunc("category", r.completeCategories)
	_ = cmd.RegisterFlagCompletionFunc("priority", completePriorities)
	return needsAPI(cmd)
}

func (r *RootCommand) showCommand() *cobra.Command {
	return needsAPI(&cobra.Command{
		Use:   "show <task-id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: r.run("show task", func(app *App) Command {
			return NewShowCommand(app)
		}),
	})
}

func (r *RootCommand) editCommand() *cobra.Command {
	var (
		title, description, category, priority, due string
		clearDue                                    bool
		tags                                        []string
	)
	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Edit a task",
		Long:  "Edit a task. Only the flags you pass are changed.",
		Args:  cobra.ExactArgs(1),
	}
	flags := cmd.Flags()
	cmd.RunE = r.run("edit task", func(app *App) Command {
		c := NewEditCommand(app)
		if flags.Changed("title") {
			c.Input.Title = &title
		}
		if flags.Changed("description") {
			c.Input.Description = &description
		}
		if flags.Changed("category") {
			c.Input.Category = &category
		}
		if flags.Changed("priority") {
			c.Input.Priority = &priority
		}
		if flags.Changed("due") {
			c.Input.Due = &due
		}
		if flags.Changed("tag") {
			c.Input.Tags = &tags
		}
		c.Input.ClearDue = clearDue
		return c
	})
	flags.StringVar(&title, "title", "", "New title")
	flags.StringVarP(&description, "description", "d", "", "New description")
	flags.StringVarP(&category, "category", "c", "", "New category")
	flags.StringVarP(&priority, "priority", "p", "", "High, Medium or Low")
	flags.StringVar(&due, "due", "", "New due date")
	flags.BoolVar(&clearDue, "clear-due", false, "Remove the due date")
	flags.StringSliceVarP(&tags, "tag", "t", nil, "Replace tags (repeatable)")
	_ = cmd.RegisterFlagCompletionFunc("category", r.completeCategories)
	_ = cmd.RegisterFlagCompletionFunc("priority", completePriorities)
	return needsAPI(cmd)
}

func (r *RootCommand) doneCommand() *cobra.Command {
	return needsAPI(&cobra.Command{
		Use:   "done <task-id>",
		Short: "Toggle task completion",
		Long:  "Mark a task completed, or reopen it if it already is. Completing stops its timer.",
		Args:  cobra.ExactArgs(1),
		RunE: r.run("update task", func(app *App) Command {
			return NewDoneCommand(app)
		}),
	})
}

func (r *RootCommand) deleteCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Long: `Delete a task and its tracked time.

This operation cannot be undone. You will be asked to confirm unless --yes is given.`,
		Args: cobra.ExactArgs(1),
		RunE: r.run("delete task", func(app *App) Command {
			c := NewDeleteCommand(app)
			c.Yes = yes
			return c
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return needsAPI(cmd)
}

func (r *RootCommand) timerCommand() *cobra.Command {
	timerCmd := &cobra.Command{
		Use:   "timer",
		Short: "Track time on a task",
	}

	var runFor time.Duration
	start := needsAPI(&cobra.Command{
		Use:   "start <task-id>",
		Short: "Run the task's timer in the foreground",
		Long:  "Count up the task's tracked time once per second until interrupted (Ctrl-C) or --for elapses.",
		Args:  cobra.ExactArgs(1),
		RunE: r.runForeground("start timer", func(app *App) Command {
			c := NewTimerCommand(app)
			c.For = runFor
			return actionCommand{c, "start"}
		}),
	})
	start.Flags().DurationVar(&runFor, "for", 0, "Stop after this long")

	stop := needsAPI(&cobra.Command{
		Use:   "stop <task-id>",
		Short: "Stop the task's timer",
		Args:  cobra.ExactArgs(1),
		RunE: r.run("stop timer", func(app *App) Command {
			return actionCommand{NewTimerCommand(app), "stop"}
		}),
	})

	reset := needsAPI(&cobra.Command{
		Use:   "reset <task-id>",
		Short: "Stop the task's timer and zero its tracked time",
		Args:  cobra.ExactArgs(1),
		RunE: r.run("reset timer", func(app *App) Command {
			return actionCommand{NewTimerCommand(app), "reset"}
		}),
	})

	timerCmd.AddCommand(start, stop, reset)
	return timerCmd
}

func (r *RootCommand) pomodoroCommand() *cobra.Command {
	var length time.Duration
	cmd := &cobra.Command{
		Use:   "pomodoro",
		Short: "Run a focus countdown",
		Long:  "Count down a pomodoro (default 25m) in the foreground. Ctrl-C abandons it.",
		Args:  cobra.NoArgs,
		RunE: r.runForeground("run pomodoro", func(app *App) Command {
			c := NewPomodoroCommand(app)
			c.Length = length
			return c
		}),
	}
	cmd.Flags().DurationVarP(&length, "length", "l", 0, "Countdown length (default from config)")
	return needsAPI(cmd)
}

func (r *RootCommand) themeCommand() *cobra.Command {
	themeCmd := needsAPI(&cobra.Command{
		Use:   "theme",
		Short: "Show or change the colour theme",
		Args:  cobra.NoArgs,
		RunE: r.run("show theme", func(app *App) Command {
			return NewThemeCommand(app)
		}),
	})
	themeCmd.AddCommand(
		needsAPI(&cobra.Command{
			Use:   "get",
			Short: "Print the current theme",
			Args:  cobra.NoArgs,
			RunE: r.run("show theme", func(app *App) Command {
				return actionCommand{NewThemeCommand(app), "get"}
			}),
		}),
		needsAPI(&cobra.Command{
			Use:       "set <light|dark>",
			Short:     "Set the theme",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{"light", "dark"},
			RunE: r.run("set theme", func(app *App) Command {
				return actionCommand{NewThemeCommand(app), "set"}
			}),
		}),
		needsAPI(&cobra.Command{
			Use:   "toggle",
			Short: "Switch between light and dark",
			Args:  cobra.NoArgs,
			RunE: r.run("toggle theme", func(app *App) Command {
				return actionCommand{NewThemeCommand(app), "toggle"}
			}),
		}),
	)
	return themeCmd
}

func (r *RootCommand) statsCommand() *cobra.Command {
	return needsAPI(&cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		Args:  cobra.NoArgs,
		RunE: r.run("show statistics", func(app *App) Command {
			return NewStatsCommand(app)
		}),
	})
}

func (r *RootCommand) outputCommand() *cobra.Command {
	return needsAPI(&cobra.Command{
		Use:   "output format=csv|json",
		Short: "Export tasks",
		Long: `Export every task in the specified format.

Supported formats:
  csv  - Comma-separated values
  json - The stored record format, usable as a backup

Example:
  taskflow output format=csv > tasks.csv`,
		Args: cobra.ExactArgs(1),
		RunE: r.run("export tasks", func(app *App) Command {
			return NewOutputCommand(app)
		}),
	})
}

// actionCommand prefixes the positional args with a fixed action, so cobra
// subcommands can share one handler.
type actionCommand struct {
	Command
	action string
}

func (c actionCommand) Execute(ctx context.Context, args []string) error {
	return c.Command.Execute(ctx, append([]string{c.action}, args...))
}

func (r *RootCommand) completeCategories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return cfg.Tasks.Categories, cobra.ShellCompDirectiveNoFileComp
}

func completePriorities(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"High", "Medium", "Low"}, cobra.ShellCompDirectiveNoFileComp
}

func completeScopes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	scopes := make([]string, 0, len(view.Scopes()))
	for _, scope := range view.Scopes() {
		scopes = append(scopes, string(scope))
	}
	return scopes, cobra.ShellCompDirectiveNoFileComp
}
