package contesthandlers

import (
	"context"

	contestevents "github.com/dank-league/memebot/app/modules/contest/domain/events"
	"github.com/dank-league/memebot/internal/handlerwrapper"
)

// Handlers defines the contract for contest event handlers.
type Handlers interface {
	HandleMessageCreated(ctx context.Context, payload *contestevents.MessageCreatedPayloadV1) ([]handlerwrapper.Result, error)
	HandleReactionUpdated(ctx context.Context, payload *contestevents.ReactionUpdatedPayloadV1) ([]handlerwrapper.Result, error)
	HandleSubmissionsCloseRequested(ctx context.Context, payload *contestevents.SubmissionsCloseRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleResolveRequested(ctx context.Context, payload *contestevents.ResolveRequestedPayloadV1) ([]handlerwrapper.Result, error)
}
