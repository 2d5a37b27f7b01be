package contestservice

import (
	"context"
	"time"

	contesttypes "github.com/dank-league/memebot/app/modules/contest/domain/types"
)

// Transport is the outbound messaging collaborator. Implementations talk to
// the chat platform (directly or through the gateway service) and may block
// on network I/O; callers must not invoke them while holding registry locks.
type Transport interface {
	// SendMessage posts text to a channel, optionally with a file
	// attachment (empty path means none), and returns the new post's ID.
	SendMessage(ctx context.Context, channelID contesttypes.ChannelID, text string, attachment string) (contesttypes.MessageID, error)
	// AddReaction adds an emoji reaction to a post.
	AddReaction(ctx context.Context, channelID contesttypes.ChannelID, messageID contesttypes.MessageID, emoji string) error
}

// TemplateSelector picks one meme template uniformly at random from the
// available set. The result is an attachment path/identifier the transport
// understands. Not cacheable: every call may return a different template.
type TemplateSelector interface {
	Select(ctx context.Context) (string, error)
}

// CapabilityChecker answers platform permission questions.
type CapabilityChecker interface {
	IsAdministrator(ctx context.Context, guildID contesttypes.GuildID, userID contesttypes.UserID) (bool, error)
}

// Scheduler arms the phase deadlines for a newly created contest.
type Scheduler interface {
	Arm(guildID contesttypes.GuildID, createdAt time.Time)
	// Cancel stops any pending deadlines for the guild. Nothing triggers
	// cancellation yet; the path exists for an admin abort command.
	Cancel(guildID contesttypes.GuildID) bool
}
