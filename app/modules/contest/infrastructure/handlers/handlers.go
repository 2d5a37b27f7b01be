package contesthandlers

import (
	"log/slog"

	contestservice "github.com/dank-league/memebot/app/modules/contest/application"
	"github.com/dank-league/memebot/internal/handlerwrapper"
	"go.opentelemetry.io/otel/trace"
)

// ContestHandlers implements the Handlers interface for contest events.
type ContestHandlers struct {
	service contestservice.Service
	prefix  string
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewContestHandlers creates a new ContestHandlers instance. prefix is the
// command prefix recognized in chat messages, such as "+".
func NewContestHandlers(service contestservice.Service, prefix string, logger *slog.Logger, tracer trace.Tracer) *ContestHandlers {
	return &ContestHandlers{
		service: service,
		prefix:  prefix,
		logger:  logger,
		tracer:  tracer,
	}
}

// mapOperationResult converts a service operation result to handler Results.
// A result with neither Success nor Failure set produces no events.
func mapOperationResult(result contestservice.ContestOperationResult, successTopic, failureTopic string) []handlerwrapper.Result {
	switch {
	case result.Success != nil:
		return []handlerwrapper.Result{{Topic: successTopic, Payload: result.Success}}
	case result.Failure != nil && failureTopic != "":
		return []handlerwrapper.Result{{Topic: failureTopic, Payload: result.Failure}}
	default:
		return nil
	}
}
