package contestservice

import (
	"context"

	contestevents "github.com/dank-league/memebot/app/modules/contest/domain/events"
	"github.com/dank-league/memebot/internal/observability/attr"
)

// UpdateVote applies a reaction-count change to a participant's tally. The
// stored value overwrites any previous one; two racing updates settle on
// whichever applies last, which is fine because the source of truth is the
// external reaction count. Ignored updates are silent.
func (s *ContestService) UpdateVote(ctx context.Context, reaction contestevents.ReactionUpdatedPayloadV1) (ContestOperationResult, error) {
	return s.serviceWrapper(ctx, "UpdateVote", reaction.GuildID, func(ctx context.Context) (ContestOperationResult, error) {
		votes, err := s.registry.UpdateVote(reaction.GuildID, reaction.ReplyToMessageID, reaction.MessageAuthorID, reaction.Count)
		if err != nil {
			reason, ok := Rejected(err)
			if !ok {
				return ContestOperationResult{}, err
			}
			s.metrics.RecordVoteIgnored(ctx, string(reaction.GuildID), string(reason))
			s.logger.DebugContext(ctx, "Vote update ignored",
				attr.String("guild_id", string(reaction.GuildID)),
				attr.String("participant", string(reaction.MessageAuthorID)),
				attr.String("reason", string(reason)),
			)
			return ContestOperationResult{}, nil
		}

		s.metrics.RecordVoteRecorded(ctx, string(reaction.GuildID))
		s.logger.DebugContext(ctx, "Vote count updated",
			attr.String("guild_id", string(reaction.GuildID)),
			attr.String("participant", string(reaction.MessageAuthorID)),
			attr.Int("votes", votes),
		)

		return ContestOperationResult{
			Success: &contestevents.VoteRecordedPayloadV1{
				GuildID:     reaction.GuildID,
				Participant: reaction.MessageAuthorID,
				Votes:       votes,
			},
		}, nil
	})
}
