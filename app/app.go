// Package app assembles the backend: database, event bus, realtime
// transport, the five modules, and the HTTP server.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/hnaspl/woltk-calendar/app/eventbus"
	"github.com/hnaspl/woltk-calendar/app/modules/attendance"
	"github.com/hnaspl/woltk-calendar/app/modules/guild"
	"github.com/hnaspl/woltk-calendar/app/modules/lineup"
	"github.com/hnaspl/woltk-calendar/app/modules/raid"
	"github.com/hnaspl/woltk-calendar/app/modules/signup"
	"github.com/hnaspl/woltk-calendar/app/observability"
	"github.com/hnaspl/woltk-calendar/app/realtime"
	"github.com/hnaspl/woltk-calendar/app/shared/metrics"
	"github.com/hnaspl/woltk-calendar/config"
	"github.com/hnaspl/woltk-calendar/pkg/jwt"
)

// App holds the assembled backend.
type App struct {
	Config          *config.Config
	Observability   *observability.Observability
	DB              *bun.DB
	EventBus        eventbus.EventBus
	WatermillRouter *message.Router
	HTTPServer      *http.Server

	Guild      *guild.Module
	Raid       *raid.Module
	Signup     *signup.Module
	Lineup     *lineup.Module
	Attendance *attendance.Module
}

// Initialize wires every component. Nothing starts processing until Run.
func (a *App) Initialize(ctx context.Context, cfg *config.Config, obs *observability.Observability) error {
	a.Config = cfg
	a.Observability = obs
	logger := obs.Logger

	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	a.DB = bun.NewDB(pgdb, pgdialect.New())
	if err := a.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	bus, err := eventbus.New(ctx, cfg.NATS.URL, logger)
	if err != nil {
		return fmt.Errorf("failed to create event bus: %w", err)
	}
	a.EventBus = bus

	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create watermill router: %w", err)
	}
	a.WatermillRouter = router

	transport := realtime.NewNATSTransport(bus.Conn())
	serviceMetrics := metrics.NewServiceMetrics(obs.Registry)
	tracer := obs.Tracer

	a.Guild = guild.NewGuildModule(a.DB, logger, serviceMetrics, tracer)

	a.Raid, err = raid.NewRaidModule(ctx, a.DB, bus, router, a.Guild.Service, logger, serviceMetrics, tracer)
	if err != nil {
		return fmt.Errorf("failed to initialize raid module: %w", err)
	}

	a.Signup, err = signup.NewSignupModule(ctx, a.DB, bus, router, a.Guild.Service, a.Raid.Repo, logger, serviceMetrics, tracer)
	if err != nil {
		return fmt.Errorf("failed to initialize signup module: %w", err)
	}

	a.Lineup, err = lineup.NewLineupModule(ctx, a.DB, bus, router, transport, a.Guild.Service, a.Signup.Repo, a.Raid.Repo, logger, serviceMetrics, tracer)
	if err != nil {
		return fmt.Errorf("failed to initialize lineup module: %w", err)
	}

	a.Attendance = attendance.NewAttendanceModule(a.DB, a.Guild.Service, a.Raid.Repo, logger, serviceMetrics, tracer)

	tokens := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.DefaultTTL)
	a.HTTPServer = newHTTPServer(cfg, tokens, a)

	return nil
}

// Run starts the watermill router and the HTTP server, then blocks until
// the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	logger := a.Observability.Logger

	errCh := make(chan error, 2)
	go func() {
		if err := a.WatermillRouter.Run(ctx); err != nil {
			errCh <- fmt.Errorf("watermill router stopped: %w", err)
		}
	}()
	go func() {
		logger.InfoContext(ctx, "HTTP server listening", "address", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server stopped: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Close shuts everything down in reverse dependency order.
func (a *App) Close(ctx context.Context) {
	logger := a.Observability.Logger

	if a.HTTPServer != nil {
		if err := a.HTTPServer.Shutdown(ctx); err != nil {
			logger.Error("Error shutting down HTTP server", "error", err)
		}
	}
	if a.Lineup != nil {
		if err := a.Lineup.Close(); err != nil {
			logger.Error("Error stopping realtime ingress", "error", err)
		}
	}
	if a.WatermillRouter != nil {
		if err := a.WatermillRouter.Close(); err != nil {
			logger.Error("Error closing watermill router", "error", err)
		}
	}
	if a.EventBus != nil {
		if err := a.EventBus.Close(); err != nil {
			logger.Error("Error closing event bus", "error", err)
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			logger.Error("Error closing database", "error", err)
		}
	}
}
