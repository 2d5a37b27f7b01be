package contestservice

import (
	"context"
	"errors"
	"fmt"

	contestevents "github.com/dank-league/memebot/app/modules/contest/domain/events"
	contesttypes "github.com/dank-league/memebot/app/modules/contest/domain/types"
	"github.com/dank-league/memebot/internal/observability/attr"
)

const msgVotingStarted = "Submissions are now closed. Voting ends in 5 minutes!"

// CloseSubmissions transitions a contest to the voting phase when its
// submission deadline fires. A missing or already-transitioned record is a
// success-no-op: the deadline may race manual flows introduced later, and
// must never fail in a way that affects other guilds' timers.
func (s *ContestService) CloseSubmissions(ctx context.Context, guildID contesttypes.GuildID) (ContestOperationResult, error) {
	return s.serviceWrapper(ctx, "CloseSubmissions", guildID, func(ctx context.Context) (ContestOperationResult, error) {
		view, err := s.registry.CloseSubmissions(guildID)
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrWrongPhase) {
			s.logger.InfoContext(ctx, "Submission deadline fired for absent or transitioned contest",
				attr.String("guild_id", string(guildID)),
			)
			return ContestOperationResult{}, nil
		}
		if err != nil {
			return ContestOperationResult{}, fmt.Errorf("failed to close submissions: %w", err)
		}

		if _, err := s.transport.SendMessage(ctx, view.AnnouncementChannelID, msgVotingStarted, ""); err != nil {
			s.logger.WarnContext(ctx, "Failed to announce voting phase",
				attr.String("guild_id", string(guildID)),
				attr.Error(err),
			)
		}

		s.logger.InfoContext(ctx, "Submissions closed, voting open",
			attr.String("guild_id", string(guildID)),
			attr.Int("submissions", view.Submissions),
		)

		return ContestOperationResult{
			Success: &contestevents.VotingStartedPayloadV1{
				GuildID:   guildID,
				ChannelID: view.AnnouncementChannelID,
			},
		}, nil
	})
}
