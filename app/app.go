// Package app assembles the memebot backend: configuration, observability,
// the event bus, the Watermill router and the contest module.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/dank-league/memebot/app/modules/contest"
	"github.com/dank-league/memebot/app/modules/contest/infrastructure/templates"
	"github.com/dank-league/memebot/app/modules/contest/infrastructure/transport"
	"github.com/dank-league/memebot/config"
	"github.com/dank-league/memebot/internal/eventbus"
	"github.com/dank-league/memebot/internal/observability"
)

// Gateway send/reaction budget. Discord's global limit is 50 requests per
// second; staying well under leaves room for the gateway's own traffic.
const (
	transportRPS   = 25
	transportBurst = 10
)

// App holds the assembled application.
type App struct {
	Config          *config.Config
	Logger          *slog.Logger
	WatermillRouter *message.Router
	ContestModule   *contest.Module

	eventBus     eventbus.EventBus
	gateway      *transport.NATSGateway
	metricsSrv   *http.Server
	routerCancel context.CancelFunc
	wg           sync.WaitGroup
}

// NewApp initializes the application with the necessary services and
// configuration.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := observability.NewLogger(cfg.Observability.Environment)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewPrometheusContestMetrics(registry)
	tracer := otel.Tracer("memebot")

	eventBus, err := eventbus.NewNATSEventBus(cfg.NATS.URL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	gateway, err := transport.NewNATSGateway(cfg.NATS.URL, logger)
	if err != nil {
		eventBus.Close()
		return nil, fmt.Errorf("failed to initialize gateway client: %w", err)
	}

	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		gateway.Close()
		eventBus.Close()
		return nil, fmt.Errorf("failed to create Watermill router: %w", err)
	}

	routerCtx, routerCancel := context.WithCancel(context.Background())

	contestModule, err := contest.NewContestModule(
		ctx,
		cfg,
		logger,
		metrics,
		registry,
		tracer,
		transport.NewRateLimited(gateway, transportRPS, transportBurst),
		templates.NewFileSelector(cfg.Contest.TemplatesDir),
		gateway,
		eventBus,
		router,
		routerCtx,
	)
	if err != nil {
		routerCancel()
		gateway.Close()
		eventBus.Close()
		return nil, fmt.Errorf("failed to initialize contest module: %w", err)
	}

	mux := chi.NewRouter()
	mux.Use(chimiddleware.Recoverer)
	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	metricsSrv := &http.Server{
		Addr:              cfg.Observability.MetricsAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &App{
		Config:          cfg,
		Logger:          logger,
		WatermillRouter: router,
		ContestModule:   contestModule,
		eventBus:        eventBus,
		gateway:         gateway,
		metricsSrv:      metricsSrv,
		routerCancel:    routerCancel,
	}, nil
}

// Run starts the metrics server, the contest module and the Watermill
// router. It blocks until the context is canceled or the router stops.
func (a *App) Run(ctx context.Context) error {
	a.wg.Add(1)
	go a.ContestModule.Run(ctx, &a.wg)

	go func() {
		a.Logger.Info("Serving metrics and health endpoints",
			slog.String("address", a.metricsSrv.Addr))
		if err := a.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Error("Metrics server stopped", slog.Any("error", err))
		}
	}()

	a.Logger.InfoContext(ctx, "Starting Watermill router")
	return a.WatermillRouter.Run(ctx)
}

// Close shuts the application down in dependency order.
func (a *App) Close() error {
	a.Logger.Info("Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.metricsSrv.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error("Failed to shut down metrics server", slog.Any("error", err))
	}

	var firstErr error
	if err := a.ContestModule.Close(); err != nil {
		firstErr = err
	}
	a.routerCancel()
	a.wg.Wait()

	if err := a.eventBus.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	a.gateway.Close()

	a.Logger.Info("Application shut down")
	return firstErr
}
