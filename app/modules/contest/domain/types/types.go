// Package contesttypes holds the domain types for guild meme contests.
package contesttypes

import "time"

// GuildID identifies the community a contest runs in. Contests are scoped
// per guild.
type GuildID string

// UserID identifies a participant or admin on the chat platform.
type UserID string

// ChannelID identifies the channel the announcement post lives in.
type ChannelID string

// MessageID identifies a single post on the chat platform.
type MessageID string

// Phase is the lifecycle phase of a contest.
type Phase string

const (
	PhaseSubmissionsOpen Phase = "SUBMISSIONS_OPEN"
	PhaseVotingOpen      Phase = "VOTING_OPEN"
	PhaseResolved        Phase = "RESOLVED"
)

func (p Phase) String() string {
	return string(p)
}

// CanTransitionTo reports whether moving from p to target is a legal phase
// transition. Resolved is terminal.
func (p Phase) CanTransitionTo(target Phase) bool {
	switch p {
	case PhaseSubmissionsOpen:
		return target == PhaseVotingOpen
	case PhaseVotingOpen:
		return target == PhaseResolved
	default:
		return false
	}
}

// Emoji used both to acknowledge accepted submissions and to cast votes.
const VoteEmoji = "👍"

// Contest is the state of one guild's running contest. Mutation is
// serialized by the registry; the type itself carries no locking.
type Contest struct {
	GuildID               GuildID
	AnnouncementChannelID ChannelID
	AnnouncementMessageID MessageID
	Phase                 Phase
	Ledger                *Ledger
	CreatedAt             time.Time
}

// NewContest creates a contest in the submissions-open phase with an empty
// ledger.
func NewContest(guildID GuildID, channelID ChannelID, messageID MessageID, createdAt time.Time) *Contest {
	return &Contest{
		GuildID:               guildID,
		AnnouncementChannelID: channelID,
		AnnouncementMessageID: messageID,
		Phase:                 PhaseSubmissionsOpen,
		Ledger:                NewLedger(),
		CreatedAt:             createdAt,
	}
}

// ContestView is a read-only snapshot of a contest, safe to hold after the
// registry lock is released.
type ContestView struct {
	GuildID               GuildID
	AnnouncementChannelID ChannelID
	AnnouncementMessageID MessageID
	Phase                 Phase
	CreatedAt             time.Time
	Submissions           int
}

// View snapshots the contest.
func (c *Contest) View() ContestView {
	return ContestView{
		GuildID:               c.GuildID,
		AnnouncementChannelID: c.AnnouncementChannelID,
		AnnouncementMessageID: c.AnnouncementMessageID,
		Phase:                 c.Phase,
		CreatedAt:             c.CreatedAt,
		Submissions:           c.Ledger.Len(),
	}
}
