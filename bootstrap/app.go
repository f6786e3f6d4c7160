package bootstrap

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/kbukum/lazykit/config"
	"github.com/kbukum/lazykit/logger"
	"github.com/kbukum/lazykit/observability"
)

// App holds the process-wide state of a lazykit application: its
// settings, its logger and the installed pipeline observability.
type App struct {
	Name     string
	Settings *config.Settings
	Logger   *logger.Logger

	gracefulTimeout time.Duration
	shutdown        observability.ShutdownFunc

	mu     sync.Mutex
	onStop []func(context.Context) error
	closed bool
}

// NewApp loads settings for name, initializes the logger and installs
// observability for lazy pipelines and tasks.
func NewApp(ctx context.Context, name string, opts ...Option) (*App, error) {
	o := resolveOptions(opts)

	s := o.settings
	if s == nil {
		loaded, err := config.Load(name, o.loader...)
		if err != nil {
			return nil, err
		}
		s = loaded
	} else {
		if s.Name == "" {
			s.Name = name
		}
		s.ApplyDefaults()
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("config validation: %w", err)
		}
	}

	app := &App{
		Name:            s.Name,
		Settings:        s,
		gracefulTimeout: o.gracefulTimeout,
	}

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(s.Logging)
		logger.RegisterDefaults("lazy", "task", "observability", "rediskv", "sqlrow")
		app.Logger = logger.GetGlobalLogger()
	}
	app.Logger = app.Logger.WithComponent(s.Name)

	shutdown, err := observability.Setup(ctx, s, o.setup...)
	if err != nil {
		return nil, err
	}
	app.shutdown = shutdown

	app.Logger.Info("application initialized", logger.Fields(
		"name", s.Name,
		"version", s.Version,
		"environment", s.Environment,
		"telemetry", s.Telemetry.Enabled,
	))
	return app, nil
}

// OnStop registers fn to run when the app closes. Hooks run in reverse
// registration order, before observability is shut down.
func (a *App) OnStop(fn func(context.Context) error) {
	if fn == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onStop = append(a.onStop, fn)
}

// Close runs the stop hooks and shuts observability down. Calling it more
// than once is a no-op.
func (a *App) Close(ctx context.Context) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	hooks := a.onStop
	a.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, a.gracefulTimeout)
	defer cancel()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := stderrors.Join(errs...); err != nil {
		a.Logger.Warn("shutdown finished with errors", logger.Fields(logger.FieldError, err.Error()))
		return err
	}
	a.Logger.Info("application stopped")
	return nil
}

// RunTask runs fn with a context cancelled on SIGINT or SIGTERM, then
// closes the app. fn's error takes precedence over a shutdown error.
func (a *App) RunTask(ctx context.Context, fn func(ctx context.Context) error) error {
	taskCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	taskErr := fn(taskCtx)
	if taskErr != nil && taskCtx.Err() != nil && ctx.Err() == nil {
		a.Logger.Info("task cancelled by signal")
	}

	if stopErr := a.Close(context.WithoutCancel(ctx)); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}
