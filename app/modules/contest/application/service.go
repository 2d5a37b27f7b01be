package contestservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	contesttypes "github.com/dank-league/memebot/app/modules/contest/domain/types"
	"github.com/dank-league/memebot/internal/observability"
	"github.com/dank-league/memebot/internal/observability/attr"
)

// ContestService handles contest-related logic.
type ContestService struct {
	registry     *Registry
	scheduler    Scheduler
	transport    Transport
	templates    TemplateSelector
	capabilities CapabilityChecker
	logger       *slog.Logger
	metrics      observability.ContestMetrics
	tracer       trace.Tracer
	clock        func() time.Time
}

// NewContestService creates a new ContestService.
func NewContestService(
	registry *Registry,
	scheduler Scheduler,
	transport Transport,
	templates TemplateSelector,
	capabilities CapabilityChecker,
	logger *slog.Logger,
	metrics observability.ContestMetrics,
	tracer trace.Tracer,
) Service {
	return &ContestService{
		registry:     registry,
		scheduler:    scheduler,
		transport:    transport,
		templates:    templates,
		capabilities: capabilities,
		logger:       logger,
		metrics:      metrics,
		tracer:       tracer,
		clock:        time.Now,
	}
}

// ContestOperationResult carries the outcome of a service operation. At most
// one of Success/Failure is set; both nil means the event was a silent drop.
type ContestOperationResult struct {
	Success any
	Failure any
}

func (s *ContestService) serviceWrapper(ctx context.Context, operation string, guildID contesttypes.GuildID, serviceFunc func(ctx context.Context) (ContestOperationResult, error)) (ContestOperationResult, error) {
	return serviceWrapper(ctx, operation, guildID, serviceFunc, s.logger, s.metrics, s.tracer)
}

// serviceWrapper wraps every service operation with a span, operation
// metrics and panic recovery so a single bad event cannot crash the router
// or other guilds' processing.
func serviceWrapper(
	ctx context.Context,
	operation string,
	guildID contesttypes.GuildID,
	serviceFunc func(ctx context.Context) (ContestOperationResult, error),
	logger *slog.Logger,
	metrics observability.ContestMetrics,
	tracer trace.Tracer,
) (result ContestOperationResult, err error) {
	if serviceFunc == nil {
		return ContestOperationResult{}, errors.New("service function is nil")
	}

	ctx, span := tracer.Start(ctx, operation, trace.WithAttributes(
		attribute.String("guild_id", string(guildID)),
	))
	defer span.End()

	metrics.RecordOperationAttempt(ctx, operation)
	start := time.Now()
	defer func() {
		metrics.RecordOperationDuration(ctx, operation, time.Since(start))

		if r := recover(); r != nil {
			err = fmt.Errorf("Panic in %s: %v", operation, r)
			logger.ErrorContext(ctx, "Recovered from panic in service operation",
				attr.String("operation", operation),
				attr.String("guild_id", string(guildID)),
				attr.Any("panic", r),
			)
			metrics.RecordOperationFailure(ctx, operation)
			result = ContestOperationResult{}
		}
	}()

	result, err = serviceFunc(ctx)
	if err != nil {
		span.RecordError(err)
		metrics.RecordOperationFailure(ctx, operation)
		return ContestOperationResult{}, fmt.Errorf("%s operation failed: %w", operation, err)
	}

	metrics.RecordOperationSuccess(ctx, operation)
	return result, nil
}
