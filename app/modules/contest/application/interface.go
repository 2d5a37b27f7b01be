package contestservice

import (
	"context"

	contestevents "github.com/dank-league/memebot/app/modules/contest/domain/events"
	contesttypes "github.com/dank-league/memebot/app/modules/contest/domain/types"
)

// StartContestCommand is an admin request to start a contest.
type StartContestCommand struct {
	GuildID     contesttypes.GuildID
	ChannelID   contesttypes.ChannelID
	RequestedBy contesttypes.UserID
}

// Service is the contest module's application interface.
type Service interface {
	StartContest(ctx context.Context, cmd StartContestCommand) (ContestOperationResult, error)
	RecordSubmission(ctx context.Context, msg contestevents.MessageCreatedPayloadV1) (ContestOperationResult, error)
	UpdateVote(ctx context.Context, reaction contestevents.ReactionUpdatedPayloadV1) (ContestOperationResult, error)
	CloseSubmissions(ctx context.Context, guildID contesttypes.GuildID) (ContestOperationResult, error)
	ResolveContest(ctx context.Context, guildID contesttypes.GuildID) (ContestOperationResult, error)
}
