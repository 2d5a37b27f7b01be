// Package contestevents defines the topics and payloads the contest module
// consumes and emits. Inbound discord.* topics are published by the gateway
// service; contest.* topics are owned by this module.
package contestevents

import (
	"time"

	contesttypes "github.com/dank-league/memebot/app/modules/contest/domain/types"
)

const (
	// Inbound platform events, published by the gateway.
	MessageCreatedV1  = "discord.message.created.v1"
	ReactionUpdatedV1 = "discord.reaction.updated.v1"

	// Contest lifecycle events.
	ContestStartedV1     = "contest.started.v1"
	ContestStartFailedV1 = "contest.start.failed.v1"
	SubmissionAcceptedV1 = "contest.submission.accepted.v1"
	VoteRecordedV1       = "contest.vote.recorded.v1"
	VotingStartedV1      = "contest.voting.started.v1"
	ContestResolvedV1    = "contest.resolved.v1"

	// Deadline commands, published by the phase scheduler.
	SubmissionsCloseRequestedV1 = "contest.submissions.close.requested.v1"
	ResolveRequestedV1          = "contest.resolve.requested.v1"
)

// MessageCreatedPayloadV1 is an inbound chat message. ReplyToMessageID is
// empty when the message is not a reply. GuildID is empty for direct
// messages, which the contest module drops at the boundary.
type MessageCreatedPayloadV1 struct {
	GuildID          contesttypes.GuildID   `json:"guild_id"`
	ChannelID        contesttypes.ChannelID `json:"channel_id"`
	MessageID        contesttypes.MessageID `json:"message_id"`
	AuthorID         contesttypes.UserID    `json:"author_id"`
	AuthorIsBot      bool                   `json:"author_is_bot"`
	Content          string                 `json:"content"`
	ReplyToMessageID contesttypes.MessageID `json:"reply_to_message_id,omitempty"`
}

// ReactionUpdatedPayloadV1 is an inbound reaction-count change on a message.
// Count is the total number of reactions with Emoji currently on the
// message, as observed by the gateway.
type ReactionUpdatedPayloadV1 struct {
	GuildID          contesttypes.GuildID   `json:"guild_id"`
	ChannelID        contesttypes.ChannelID `json:"channel_id"`
	MessageID        contesttypes.MessageID `json:"message_id"`
	MessageAuthorID  contesttypes.UserID    `json:"message_author_id"`
	ReplyToMessageID contesttypes.MessageID `json:"reply_to_message_id,omitempty"`
	Emoji            string                 `json:"emoji"`
	ReactorID        contesttypes.UserID    `json:"reactor_id"`
	ReactorIsBot     bool                   `json:"reactor_is_bot"`
	Count            int                    `json:"count"`
}

// ContestStartedPayloadV1 announces a newly created contest.
type ContestStartedPayloadV1 struct {
	GuildID               contesttypes.GuildID   `json:"guild_id"`
	ChannelID             contesttypes.ChannelID `json:"channel_id"`
	AnnouncementMessageID contesttypes.MessageID `json:"announcement_message_id"`
	StartedBy             contesttypes.UserID    `json:"started_by"`
	Template              string                 `json:"template"`
	SubmissionsCloseAt    time.Time              `json:"submissions_close_at"`
	VotingClosesAt        time.Time              `json:"voting_closes_at"`
}

// SubmissionAcceptedPayloadV1 records an accepted submission.
type SubmissionAcceptedPayloadV1 struct {
	GuildID      contesttypes.GuildID   `json:"guild_id"`
	Participant  contesttypes.UserID    `json:"participant"`
	SubmissionID contesttypes.MessageID `json:"submission_id"`
}

// VoteRecordedPayloadV1 records an applied vote-count update.
type VoteRecordedPayloadV1 struct {
	GuildID     contesttypes.GuildID `json:"guild_id"`
	Participant contesttypes.UserID  `json:"participant"`
	Votes       int                  `json:"votes"`
}

// VotingStartedPayloadV1 announces the submissions-closed transition.
type VotingStartedPayloadV1 struct {
	GuildID   contesttypes.GuildID   `json:"guild_id"`
	ChannelID contesttypes.ChannelID `json:"channel_id"`
}

// ContestResolvedPayloadV1 announces the final outcome. Winner is nil when
// the ledger was empty.
type ContestResolvedPayloadV1 struct {
	GuildID      contesttypes.GuildID    `json:"guild_id"`
	ChannelID    contesttypes.ChannelID  `json:"channel_id"`
	Winner       *contesttypes.UserID    `json:"winner,omitempty"`
	WinningVotes int                     `json:"winning_votes"`
	Standings    []contesttypes.Standing `json:"standings"`
}

// ContestStartFailedPayloadV1 reports a start command that was not honored.
type ContestStartFailedPayloadV1 struct {
	GuildID contesttypes.GuildID `json:"guild_id"`
	Reason  string               `json:"reason"`
}

// SubmissionsCloseRequestedPayloadV1 asks the contest module to close
// submissions for a guild. Published by the phase scheduler.
type SubmissionsCloseRequestedPayloadV1 struct {
	GuildID contesttypes.GuildID `json:"guild_id"`
}

// ResolveRequestedPayloadV1 asks the contest module to resolve a guild's
// contest. Published by the phase scheduler.
type ResolveRequestedPayloadV1 struct {
	GuildID contesttypes.GuildID `json:"guild_id"`
}
