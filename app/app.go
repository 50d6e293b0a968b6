package app

import (
	"context"
	"log/slog"

	"github.com/silentpro/dashboard/config"
	httpapi "github.com/silentpro/dashboard/internal/api/http"
	"github.com/silentpro/dashboard/internal/calendar"
	"github.com/silentpro/dashboard/internal/catalog"
	"github.com/silentpro/dashboard/internal/report"
	"github.com/silentpro/dashboard/internal/spapi"
)

// App is the main application.
type App struct {
	hs *httpapi.Server
	c  *config.Config
}

// New returns a new instance of App.
func New(c *config.Config) *App {
	return &App{
		c: c,
	}
}

// Start starts the app.
func (a *App) Start(ctx context.Context) error {
	slog.Default().InfoContext(ctx, "starting sales dashboard")

	cal := calendar.New(&a.c.Calendar)
	cat := catalog.New(&a.c.Catalog)
	orders := spapi.New(&a.c.Upstream)
	reports := report.New(&a.c.Report, orders, cal, cat)

	a.hs = httpapi.New(&a.c.HTTP, reports, cat)
	if err := a.hs.Start(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()),
		)
		return err
	}

	return nil
}

// Stop stops the application and waits for the server to exit.
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		if err := a.hs.Stop(ctx); err != nil {
			slog.Default().ErrorContext(ctx, "http server shutdown failed",
				slog.String("err", err.Error()),
			)
		}
	}
}

// Done returns a channel that is closed after the application has exited.
func (a *App) Done() <-chan struct{} {
	return a.hs.Done()
}
