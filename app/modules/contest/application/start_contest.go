package contestservice

import (
	"context"
	"fmt"

	contestevents "github.com/dank-league/memebot/app/modules/contest/domain/events"
	"github.com/dank-league/memebot/internal/observability/attr"
)

// User-visible copy for the start flow.
const (
	msgAlreadyRunning = "A competition is already running in this server."
	msgContestStarted = "Competition has started and submissions will stop in 20 minutes! Create a meme using this template:"
)

// StartContest handles an admin "start" command: checks the sender's
// capability, posts the announcement with a random template, creates the
// registry record and arms the phase deadlines. Only the duplicate-start
// notice is user-visible on failure.
func (s *ContestService) StartContest(ctx context.Context, cmd StartContestCommand) (ContestOperationResult, error) {
	return s.serviceWrapper(ctx, "StartContest", cmd.GuildID, func(ctx context.Context) (ContestOperationResult, error) {
		isAdmin, err := s.capabilities.IsAdministrator(ctx, cmd.GuildID, cmd.RequestedBy)
		if err != nil {
			return ContestOperationResult{}, fmt.Errorf("capability check failed: %w", err)
		}
		if !isAdmin {
			s.logger.DebugContext(ctx, "Ignoring start command from non-admin",
				attr.String("guild_id", string(cmd.GuildID)),
				attr.String("user_id", string(cmd.RequestedBy)),
			)
			return ContestOperationResult{}, nil
		}

		// Fast-fail before posting anything. TryCreate below still guards
		// against a concurrent start winning the race.
		if _, active := s.registry.Get(cmd.GuildID); active {
			return s.rejectDuplicateStart(ctx, cmd)
		}

		template, err := s.templates.Select(ctx)
		if err != nil {
			return ContestOperationResult{}, fmt.Errorf("failed to select template: %w", err)
		}

		if _, err := s.transport.SendMessage(ctx, cmd.ChannelID, msgContestStarted, ""); err != nil {
			return ContestOperationResult{}, fmt.Errorf("failed to send start announcement: %w", err)
		}
		announcementID, err := s.transport.SendMessage(ctx, cmd.ChannelID, "", template)
		if err != nil {
			return ContestOperationResult{}, fmt.Errorf("failed to post template: %w", err)
		}

		createdAt := s.clock()
		view, err := s.registry.TryCreate(cmd.GuildID, cmd.ChannelID, announcementID, createdAt)
		if err != nil {
			// A concurrent start won the race after our fast-path check.
			// The stray announcement post stays behind, same as two admins
			// racing each other.
			s.logger.WarnContext(ctx, "Lost start race, contest already active",
				attr.String("guild_id", string(cmd.GuildID)),
			)
			return s.rejectDuplicateStart(ctx, cmd)
		}

		s.scheduler.Arm(cmd.GuildID, createdAt)
		s.metrics.RecordContestStarted(ctx, string(cmd.GuildID))

		s.logger.InfoContext(ctx, "Contest started",
			attr.String("guild_id", string(cmd.GuildID)),
			attr.String("channel_id", string(cmd.ChannelID)),
			attr.String("announcement_id", string(announcementID)),
			attr.String("template", template),
		)

		return ContestOperationResult{
			Success: &contestevents.ContestStartedPayloadV1{
				GuildID:               cmd.GuildID,
				ChannelID:             cmd.ChannelID,
				AnnouncementMessageID: view.AnnouncementMessageID,
				StartedBy:             cmd.RequestedBy,
				Template:              template,
				SubmissionsCloseAt:    createdAt.Add(SubmissionWindow),
				VotingClosesAt:        createdAt.Add(SubmissionWindow + VotingWindow),
			},
		}, nil
	})
}

func (s *ContestService) rejectDuplicateStart(ctx context.Context, cmd StartContestCommand) (ContestOperationResult, error) {
	if _, err := s.transport.SendMessage(ctx, cmd.ChannelID, msgAlreadyRunning, ""); err != nil {
		s.logger.WarnContext(ctx, "Failed to send duplicate-start notice",
			attr.String("guild_id", string(cmd.GuildID)),
			attr.Error(err),
		)
	}
	return ContestOperationResult{
		Failure: &contestevents.ContestStartFailedPayloadV1{
			GuildID: cmd.GuildID,
			Reason:  "already_active",
		},
	}, nil
}
