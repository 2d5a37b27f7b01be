package contesthandlers

import (
	"context"
	"errors"

	contestevents "github.com/dank-league/memebot/app/modules/contest/domain/events"
	contesttypes "github.com/dank-league/memebot/app/modules/contest/domain/types"
	"github.com/dank-league/memebot/internal/handlerwrapper"
)

// HandleReactionUpdated feeds vote-emoji reaction changes to the vote
// tally. Reactions from bots, reactions in direct messages, and reactions
// with any other emoji are dropped.
func (h *ContestHandlers) HandleReactionUpdated(ctx context.Context, payload *contestevents.ReactionUpdatedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	if payload.ReactorIsBot || payload.GuildID == "" || payload.Emoji != contesttypes.VoteEmoji {
		return nil, nil
	}

	result, err := h.service.UpdateVote(ctx, *payload)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		contestevents.VoteRecordedV1,
		"",
	), nil
}
