package contesthandlers

import (
	"context"
	"errors"

	contestevents "github.com/dank-league/memebot/app/modules/contest/domain/events"
	"github.com/dank-league/memebot/internal/handlerwrapper"
)

// HandleSubmissionsCloseRequested handles the submission-window deadline
// for a guild's contest.
func (h *ContestHandlers) HandleSubmissionsCloseRequested(ctx context.Context, payload *contestevents.SubmissionsCloseRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.CloseSubmissions(ctx, payload.GuildID)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		contestevents.VotingStartedV1,
		"",
	), nil
}

// HandleResolveRequested handles the voting-window deadline for a guild's
// contest.
func (h *ContestHandlers) HandleResolveRequested(ctx context.Context, payload *contestevents.ResolveRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.ResolveContest(ctx, payload.GuildID)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		contestevents.ContestResolvedV1,
		"",
	), nil
}
