package contestservice

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dank-league/memebot/internal/handlerwrapper"
	"github.com/dank-league/memebot/internal/observability/attr"

	"github.com/google/uuid"

	contestevents "github.com/dank-league/memebot/app/modules/contest/domain/events"
	contesttypes "github.com/dank-league/memebot/app/modules/contest/domain/types"
	contestutil "github.com/dank-league/memebot/app/modules/contest/utils"
)

// Fixed phase windows. Submissions close 20 minutes after the contest is
// created; voting closes 5 minutes after that.
const (
	SubmissionWindow = 20 * time.Minute
	VotingWindow     = 5 * time.Minute
)

// DeadlineScheduler arms two independent deadline tasks per contest and
// publishes close/resolve commands onto the event bus when they fire. State
// is in-process only; contests do not survive a restart and neither do
// their timers.
type DeadlineScheduler struct {
	ctx              context.Context
	publisher        handlerwrapper.Publisher
	logger           *slog.Logger
	clock            contestutil.Clock
	submissionWindow time.Duration
	votingWindow     time.Duration

	mu    sync.Mutex
	armed map[contesttypes.GuildID]*armedContest
}

type armedContest struct {
	cancel context.CancelFunc
}

var _ Scheduler = (*DeadlineScheduler)(nil)

// SchedulerOption customizes a DeadlineScheduler.
type SchedulerOption func(*DeadlineScheduler)

// WithClock substitutes the clock, used by tests.
func WithClock(clock contestutil.Clock) SchedulerOption {
	return func(s *DeadlineScheduler) { s.clock = clock }
}

// WithWindows overrides the phase windows, used by tests.
func WithWindows(submission, voting time.Duration) SchedulerOption {
	return func(s *DeadlineScheduler) {
		s.submissionWindow = submission
		s.votingWindow = voting
	}
}

// NewDeadlineScheduler creates a scheduler. Timers stop when ctx is
// canceled.
func NewDeadlineScheduler(ctx context.Context, publisher handlerwrapper.Publisher, logger *slog.Logger, opts ...SchedulerOption) *DeadlineScheduler {
	s := &DeadlineScheduler{
		ctx:              ctx,
		publisher:        publisher,
		logger:           logger,
		clock:            contestutil.NewRealClock(),
		submissionWindow: SubmissionWindow,
		votingWindow:     VotingWindow,
		armed:            make(map[contesttypes.GuildID]*armedContest),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Arm schedules the submission-close and voting-close deadlines for a newly
// created contest, relative to createdAt. Re-arming a guild replaces its
// pending deadlines.
func (s *DeadlineScheduler) Arm(guildID contesttypes.GuildID, createdAt time.Time) {
	ctx, cancel := context.WithCancel(s.ctx)
	arming := &armedContest{cancel: cancel}

	s.mu.Lock()
	if previous, ok := s.armed[guildID]; ok {
		previous.cancel()
	}
	s.armed[guildID] = arming
	s.mu.Unlock()

	now := s.clock.Now()
	closeDelay := createdAt.Add(s.submissionWindow).Sub(now)
	resolveDelay := createdAt.Add(s.submissionWindow + s.votingWindow).Sub(now)

	s.logger.Info("Armed contest deadlines",
		attr.String("guild_id", string(guildID)),
		attr.Duration("submissions_close_in", closeDelay),
		attr.Duration("voting_close_in", resolveDelay),
	)

	go s.fireAfter(ctx, guildID, closeDelay,
		contestevents.SubmissionsCloseRequestedV1,
		contestevents.SubmissionsCloseRequestedPayloadV1{GuildID: guildID},
		nil,
	)
	go s.fireAfter(ctx, guildID, resolveDelay,
		contestevents.ResolveRequestedV1,
		contestevents.ResolveRequestedPayloadV1{GuildID: guildID},
		func() { s.disarm(guildID, arming) },
	)
}

// Cancel stops any pending deadlines for the guild. It reports whether
// deadlines were armed. Not used by any flow yet; kept so an admin abort
// command does not have to restructure the scheduler.
func (s *DeadlineScheduler) Cancel(guildID contesttypes.GuildID) bool {
	s.mu.Lock()
	arming, ok := s.armed[guildID]
	if ok {
		delete(s.armed, guildID)
	}
	s.mu.Unlock()

	if ok {
		arming.cancel()
	}
	return ok
}

// fireAfter waits out the delay and publishes one deadline command. Publish
// failures are logged and swallowed: a broken bus must not take down the
// process or other guilds' timers.
func (s *DeadlineScheduler) fireAfter(ctx context.Context, guildID contesttypes.GuildID, delay time.Duration, topic string, payload any, done func()) {
	if delay < 0 {
		delay = 0
	}

	select {
	case <-ctx.Done():
		return
	case <-s.clock.After(delay):
	}

	msg, err := handlerwrapper.NewResultMessage(uuid.NewString(), "phase_scheduler", payload)
	if err != nil {
		s.logger.Error("Failed to build deadline message",
			attr.String("guild_id", string(guildID)),
			attr.String("topic", topic),
			attr.Error(err),
		)
		return
	}

	if err := s.publisher.Publish(topic, msg); err != nil {
		s.logger.Error("Failed to publish deadline event",
			attr.String("guild_id", string(guildID)),
			attr.String("topic", topic),
			attr.Error(err),
		)
		return
	}

	s.logger.Debug("Deadline fired",
		attr.String("guild_id", string(guildID)),
		attr.String("topic", topic),
	)

	if done != nil {
		done()
	}
}

// disarm removes the guild's entry if it still belongs to this arming; a
// newer Arm for the same guild keeps its own entry.
func (s *DeadlineScheduler) disarm(guildID contesttypes.GuildID, arming *armedContest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.armed[guildID]; ok && current == arming {
		delete(s.armed, guildID)
	}
}
