package contestservice

import (
	"context"
	"errors"
	"fmt"

	contestevents "github.com/dank-league/memebot/app/modules/contest/domain/events"
	contesttypes "github.com/dank-league/memebot/app/modules/contest/domain/types"
	"github.com/dank-league/memebot/internal/observability/attr"
)

const msgNoWinner = "The competition is over, but no winner was determined."

// ResolveContest finishes a contest when its voting deadline fires: computes
// the winner, announces the outcome and removes the record. A missing record
// is a success-no-op.
func (s *ContestService) ResolveContest(ctx context.Context, guildID contesttypes.GuildID) (ContestOperationResult, error) {
	return s.serviceWrapper(ctx, "ResolveContest", guildID, func(ctx context.Context) (ContestOperationResult, error) {
		resolution, err := s.registry.ResolveAndRemove(guildID)
		if errors.Is(err, ErrNotFound) {
			s.logger.InfoContext(ctx, "Voting deadline fired for absent contest",
				attr.String("guild_id", string(guildID)),
			)
			return ContestOperationResult{}, nil
		}
		if err != nil {
			return ContestOperationResult{}, fmt.Errorf("failed to resolve contest: %w", err)
		}

		text := msgNoWinner
		if resolution.Winner != nil {
			text = fmt.Sprintf("The competition is over! The winner is <@%s> with %d votes! Congratulations!",
				*resolution.Winner, resolution.WinningVotes)
		}
		if _, err := s.transport.SendMessage(ctx, resolution.ChannelID, text, ""); err != nil {
			s.logger.WarnContext(ctx, "Failed to announce contest outcome",
				attr.String("guild_id", string(guildID)),
				attr.Error(err),
			)
		}

		s.metrics.RecordContestResolved(ctx, string(guildID), resolution.Winner != nil)
		s.logger.InfoContext(ctx, "Contest resolved",
			attr.String("guild_id", string(guildID)),
			attr.Bool("has_winner", resolution.Winner != nil),
			attr.Int("participants", len(resolution.Standings)),
		)

		return ContestOperationResult{
			Success: &contestevents.ContestResolvedPayloadV1{
				GuildID:      guildID,
				ChannelID:    resolution.ChannelID,
				Winner:       resolution.Winner,
				WinningVotes: resolution.WinningVotes,
				Standings:    resolution.Standings,
			},
		}, nil
	})
}
