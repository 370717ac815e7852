package server

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	xhttp "Traxor/pkg/http"
	applogger "Traxor/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Runner is a background component that blocks until ctx is done.
type Runner interface {
	Run(ctx context.Context) error
}

// App encapsulates the entire application lifecycle.
type App struct {
	log        *applogger.Logger
	httpServer *xhttp.Server
	runners    []Runner
	closers    []func() error
}

// New creates an App. Closers run in order after everything has stopped.
func New(l *applogger.Logger, httpServer *xhttp.Server, runners []Runner, closers ...func() error) *App {
	return &App{
		log:        l,
		httpServer: httpServer,
		runners:    runners,
		closers:    closers,
	}
}

// Run starts the application and blocks until SIGINT or SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext runs until ctx is done or a component fails, then shuts
// everything down.
func (a *App) RunContext(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(a.httpServer.Start)
	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("shutting down")
		// Stop applies the server's own shutdown timeout.
		return a.httpServer.Stop(context.Background())
	})
	for _, r := range a.runners {
		g.Go(func() error { return r.Run(gctx) })
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	for _, c := range a.closers {
		if cerr := c(); cerr != nil {
			a.log.Warn("close failed", applogger.Error(cerr))
		}
	}

	if err != nil {
		a.log.Error("app stopped with error", applogger.Error(err))
		return err
	}
	a.log.Info("shutdown complete")
	return nil
}
