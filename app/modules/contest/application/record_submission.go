package contestservice

import (
	"context"

	contestevents "github.com/dank-league/memebot/app/modules/contest/domain/events"
	contesttypes "github.com/dank-league/memebot/app/modules/contest/domain/types"
	"github.com/dank-league/memebot/internal/observability/attr"
)

// RecordSubmission handles a reply to the announcement post. Accepted
// submissions are acknowledged with a reaction; every rejection is silent
// because rejected replies are steady-state traffic, not faults.
func (s *ContestService) RecordSubmission(ctx context.Context, msg contestevents.MessageCreatedPayloadV1) (ContestOperationResult, error) {
	return s.serviceWrapper(ctx, "RecordSubmission", msg.GuildID, func(ctx context.Context) (ContestOperationResult, error) {
		err := s.registry.RecordSubmission(msg.GuildID, msg.ReplyToMessageID, msg.AuthorID)
		if err != nil {
			reason, ok := Rejected(err)
			if !ok {
				return ContestOperationResult{}, err
			}
			s.metrics.RecordSubmissionRejected(ctx, string(msg.GuildID), string(reason))
			s.logger.DebugContext(ctx, "Submission rejected",
				attr.String("guild_id", string(msg.GuildID)),
				attr.String("author_id", string(msg.AuthorID)),
				attr.String("reason", string(reason)),
			)
			return ContestOperationResult{}, nil
		}

		// Acknowledge outside the registry lock. If the reaction fails the
		// entry simply keeps AckApplied=false and raw counts are stored
		// as-is later.
		if err := s.transport.AddReaction(ctx, msg.ChannelID, msg.MessageID, contesttypes.VoteEmoji); err != nil {
			s.logger.WarnContext(ctx, "Failed to acknowledge submission",
				attr.String("guild_id", string(msg.GuildID)),
				attr.String("message_id", string(msg.MessageID)),
				attr.Error(err),
			)
		} else {
			s.registry.MarkAckApplied(msg.GuildID, msg.AuthorID)
		}

		s.metrics.RecordSubmissionAccepted(ctx, string(msg.GuildID))
		s.logger.InfoContext(ctx, "Submission accepted",
			attr.String("guild_id", string(msg.GuildID)),
			attr.String("author_id", string(msg.AuthorID)),
			attr.String("message_id", string(msg.MessageID)),
		)

		return ContestOperationResult{
			Success: &contestevents.SubmissionAcceptedPayloadV1{
				GuildID:      msg.GuildID,
				Participant:  msg.AuthorID,
				SubmissionID: msg.MessageID,
			},
		}, nil
	})
}
