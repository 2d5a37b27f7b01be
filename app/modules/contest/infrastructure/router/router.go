package contestrouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	contestservice "github.com/dank-league/memebot/app/modules/contest/application"
	contestevents "github.com/dank-league/memebot/app/modules/contest/domain/events"
	contesthandlers "github.com/dank-league/memebot/app/modules/contest/infrastructure/handlers"
	"github.com/dank-league/memebot/config"
	"github.com/dank-league/memebot/internal/eventbus"
	"github.com/dank-league/memebot/internal/handlerwrapper"
)

// ContestRouter handles routing for contest module events.
type ContestRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	subscriber     eventbus.EventBus
	publisher      eventbus.EventBus
	config         *config.Config
	tracer         trace.Tracer
	metricsBuilder *metrics.PrometheusMetricsBuilder
}

// NewContestRouter creates a new ContestRouter. registry may be nil, in
// which case no router metrics are recorded.
func NewContestRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	cfg *config.Config,
	registry *prometheus.Registry,
	tracer trace.Tracer,
) *ContestRouter {
	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if registry != nil {
		builder := metrics.NewPrometheusMetricsBuilder(registry, "", "")
		metricsBuilder = &builder
	}

	return &ContestRouter{
		logger:         logger,
		Router:         router,
		subscriber:     subscriber,
		publisher:      publisher,
		config:         cfg,
		tracer:         tracer,
		metricsBuilder: metricsBuilder,
	}
}

// Configure sets up the router with the necessary handlers and dependencies.
func (r *ContestRouter) Configure(routerCtx context.Context, contestService contestservice.Service) error {
	contestHandlers := contesthandlers.NewContestHandlers(contestService, r.config.Discord.Prefix, r.logger, r.tracer)

	if r.metricsBuilder != nil {
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
	)

	if err := r.RegisterHandlers(routerCtx, contestHandlers); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

type handlerDeps struct {
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	logger     *slog.Logger
	tracer     trace.Tracer
}

// registerHandler registers a typed handler for a topic. Handlers publish
// their follow-up events through the wrapper, so the router side has no
// publish topic.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "contest." + topic

	deps.router.AddNoPublisherHandler(
		handlerName,
		topic,
		deps.subscriber,
		handlerwrapper.WrapTyped(
			handlerName,
			deps.logger,
			deps.tracer,
			deps.publisher,
			handler,
		),
	)
}

// RegisterHandlers registers the contest module's event handlers.
func (r *ContestRouter) RegisterHandlers(ctx context.Context, handlers contesthandlers.Handlers) error {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
	}

	registerHandler(deps, contestevents.MessageCreatedV1, handlers.HandleMessageCreated)
	registerHandler(deps, contestevents.ReactionUpdatedV1, handlers.HandleReactionUpdated)
	registerHandler(deps, contestevents.SubmissionsCloseRequestedV1, handlers.HandleSubmissionsCloseRequested)
	registerHandler(deps, contestevents.ResolveRequestedV1, handlers.HandleResolveRequested)

	return nil
}

// Close stops the router.
func (r *ContestRouter) Close() error {
	return r.Router.Close()
}
