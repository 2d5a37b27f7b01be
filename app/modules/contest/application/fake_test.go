package contestservice

import (
	"context"
	"fmt"
	"sync"
	"time"

	contesttypes "github.com/dank-league/memebot/app/modules/contest/domain/types"
)

// ------------------------
// Fake Transport
// ------------------------

type sentMessage struct {
	ChannelID  contesttypes.ChannelID
	Text       string
	Attachment string
}

type addedReaction struct {
	ChannelID contesttypes.ChannelID
	MessageID contesttypes.MessageID
	Emoji     string
}

// FakeTransport provides a programmable stub for the Transport port. Sent
// messages and reactions are recorded for assertions.
type FakeTransport struct {
	mu        sync.Mutex
	sent      []sentMessage
	reactions []addedReaction
	nextID    int

	SendMessageFunc func(ctx context.Context, channelID contesttypes.ChannelID, text string, attachment string) (contesttypes.MessageID, error)
	AddReactionFunc func(ctx context.Context, channelID contesttypes.ChannelID, messageID contesttypes.MessageID, emoji string) error
}

func NewFakeTransport() *FakeTransport {
	return &FakeTransport{}
}

func (f *FakeTransport) SendMessage(ctx context.Context, channelID contesttypes.ChannelID, text string, attachment string) (contesttypes.MessageID, error) {
	f.mu.Lock()
	f.sent = append(f.sent, sentMessage{ChannelID: channelID, Text: text, Attachment: attachment})
	f.nextID++
	id := contesttypes.MessageID(fmt.Sprintf("sent-%d", f.nextID))
	f.mu.Unlock()

	if f.SendMessageFunc != nil {
		return f.SendMessageFunc(ctx, channelID, text, attachment)
	}
	return id, nil
}

func (f *FakeTransport) AddReaction(ctx context.Context, channelID contesttypes.ChannelID, messageID contesttypes.MessageID, emoji string) error {
	f.mu.Lock()
	f.reactions = append(f.reactions, addedReaction{ChannelID: channelID, MessageID: messageID, Emoji: emoji})
	f.mu.Unlock()

	if f.AddReactionFunc != nil {
		return f.AddReactionFunc(ctx, channelID, messageID, emoji)
	}
	return nil
}

func (f *FakeTransport) Sent() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentMessage, len(f.sent))
	copy(out, f.sent)
	return out
}

func (f *FakeTransport) Reactions() []addedReaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]addedReaction, len(f.reactions))
	copy(out, f.reactions)
	return out
}

var _ Transport = (*FakeTransport)(nil)

// ------------------------
// Fake TemplateSelector
// ------------------------

type FakeTemplateSelector struct {
	SelectFunc func(ctx context.Context) (string, error)
}

func (f *FakeTemplateSelector) Select(ctx context.Context) (string, error) {
	if f.SelectFunc != nil {
		return f.SelectFunc(ctx)
	}
	return "templates/drake.png", nil
}

var _ TemplateSelector = (*FakeTemplateSelector)(nil)

// ------------------------
// Fake CapabilityChecker
// ------------------------

type FakeCapabilityChecker struct {
	IsAdministratorFunc func(ctx context.Context, guildID contesttypes.GuildID, userID contesttypes.UserID) (bool, error)
}

func (f *FakeCapabilityChecker) IsAdministrator(ctx context.Context, guildID contesttypes.GuildID, userID contesttypes.UserID) (bool, error) {
	if f.IsAdministratorFunc != nil {
		return f.IsAdministratorFunc(ctx, guildID, userID)
	}
	return true, nil
}

var _ CapabilityChecker = (*FakeCapabilityChecker)(nil)

// ------------------------
// Fake Scheduler
// ------------------------

type FakeScheduler struct {
	mu       sync.Mutex
	armed    []contesttypes.GuildID
	canceled []contesttypes.GuildID
}

func (f *FakeScheduler) Arm(guildID contesttypes.GuildID, createdAt time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.armed = append(f.armed, guildID)
}

func (f *FakeScheduler) Cancel(guildID contesttypes.GuildID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.canceled = append(f.canceled, guildID)
	return true
}

func (f *FakeScheduler) Armed() []contesttypes.GuildID {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]contesttypes.GuildID, len(f.armed))
	copy(out, f.armed)
	return out
}

var _ Scheduler = (*FakeScheduler)(nil)
