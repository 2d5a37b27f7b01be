package contesthandlers

import (
	"context"
	"errors"
	"strings"

	contestservice "github.com/dank-league/memebot/app/modules/contest/application"
	contestevents "github.com/dank-league/memebot/app/modules/contest/domain/events"
	"github.com/dank-league/memebot/internal/handlerwrapper"
)

const startCommand = "start"

// HandleMessageCreated classifies an inbound chat message and dispatches it.
// Bot-authored messages and direct messages are dropped. A message whose
// first token is the start command begins a contest; a reply to another
// message is treated as a submission attempt. Everything else is ignored.
func (h *ContestHandlers) HandleMessageCreated(ctx context.Context, payload *contestevents.MessageCreatedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	if payload.AuthorIsBot || payload.GuildID == "" {
		return nil, nil
	}

	if h.isStartCommand(payload.Content) {
		result, err := h.service.StartContest(ctx, contestservice.StartContestCommand{
			GuildID:     payload.GuildID,
			ChannelID:   payload.ChannelID,
			RequestedBy: payload.AuthorID,
		})
		if err != nil {
			return nil, err
		}

		return mapOperationResult(result,
			contestevents.ContestStartedV1,
			contestevents.ContestStartFailedV1,
		), nil
	}

	if payload.ReplyToMessageID != "" {
		result, err := h.service.RecordSubmission(ctx, *payload)
		if err != nil {
			return nil, err
		}

		return mapOperationResult(result,
			contestevents.SubmissionAcceptedV1,
			"",
		), nil
	}

	return nil, nil
}

func (h *ContestHandlers) isStartCommand(content string) bool {
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return false
	}
	return fields[0] == h.prefix+startCommand
}
