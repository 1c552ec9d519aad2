package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"taskflow/internal/api"
	"taskflow/internal/clock"
	"taskflow/internal/config"
)

// App represents the main CLI application
type App struct {
	api      api.API
	config   *config.Config
	in       io.Reader
	out      io.Writer
	clock    clock.Clock
	registry *CommandRegistry
}

// NewApp creates a new CLI application instance with default configuration
func NewApp(apiInstance api.API) *App {
	return NewAppWithConfig(apiInstance, config.NewConfig())
}

// NewAppWithConfig creates a new CLI application instance with dependency injection
func NewAppWithConfig(apiInstance api.API, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		api:    apiInstance,
		config: cfg,
		in:     os.Stdin,
		out:    &syncWriter{w: os.Stdout},
		clock:  clock.Real(),
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// WithIO replaces stdin and stdout.
func (a *App) WithIO(in io.Reader, out io.Writer) *App {
	a.in = in
	a.out = &syncWriter{w: out}
	return a
}

// WithClock sets the clock used for foreground waits. It should be the same
// clock the API ticks on.
func (a *App) WithClock(c clock.Clock) *App {
	a.clock = c
	return a
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}
	return a.registry.Execute(ctx, args[0], args[1:])
}

func (a *App) renderer(ctx context.Context) *Renderer {
	return NewRenderer(a.out, a.api.Theme(ctx), a.config.Display, a.clock.Now)
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// syncWriter serialises writes from timer callbacks and the command itself.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
