// Package contest wires the contest module: registry, scheduler, service,
// handlers and router.
package contest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	contestservice "github.com/dank-league/memebot/app/modules/contest/application"
	contestrouter "github.com/dank-league/memebot/app/modules/contest/infrastructure/router"
	"github.com/dank-league/memebot/config"
	"github.com/dank-league/memebot/internal/eventbus"
	"github.com/dank-league/memebot/internal/observability"
)

// Module represents the contest module.
type Module struct {
	EventBus       eventbus.EventBus
	ContestService contestservice.Service
	ContestRouter  *contestrouter.ContestRouter
	config         *config.Config
	logger         *slog.Logger
	cancelFunc     context.CancelFunc
}

// NewContestModule creates a new instance of the contest module. transport
// and capabilities are the outbound chat collaborators; templates picks the
// announcement attachment.
func NewContestModule(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	metrics observability.ContestMetrics,
	prometheusRegistry *prometheus.Registry,
	tracer trace.Tracer,
	transport contestservice.Transport,
	templates contestservice.TemplateSelector,
	capabilities contestservice.CapabilityChecker,
	eventBus eventbus.EventBus,
	router *message.Router,
	routerCtx context.Context,
) (*Module, error) {
	logger.InfoContext(ctx, "contest.NewContestModule called")

	registry := contestservice.NewRegistry()
	scheduler := contestservice.NewDeadlineScheduler(routerCtx, eventBus, logger)

	service := contestservice.NewContestService(
		registry,
		scheduler,
		transport,
		templates,
		capabilities,
		logger,
		metrics,
		tracer,
	)

	contestRouter := contestrouter.NewContestRouter(logger, router, eventBus, eventBus, cfg, prometheusRegistry, tracer)
	if err := contestRouter.Configure(routerCtx, service); err != nil {
		return nil, fmt.Errorf("failed to configure contest router: %w", err)
	}

	return &Module{
		EventBus:       eventBus,
		ContestService: service,
		ContestRouter:  contestRouter,
		config:         cfg,
		logger:         logger,
	}, nil
}

// Run keeps the contest module alive until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting contest module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	m.logger.InfoContext(ctx, "Contest module goroutine stopped")
}

// Close stops the contest module and cleans up resources.
func (m *Module) Close() error {
	m.logger.Info("Stopping contest module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.ContestRouter != nil {
		if err := m.ContestRouter.Close(); err != nil {
			m.logger.Error("Error closing ContestRouter from module", "error", err)
			return fmt.Errorf("error closing ContestRouter: %w", err)
		}
	}

	m.logger.Info("Contest module stopped")
	return nil
}
