// Package transport implements the contest module's outbound chat ports
// over NATS request/reply to the Discord gateway service.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	nc "github.com/nats-io/nats.go"

	contesttypes "github.com/dank-league/memebot/app/modules/contest/domain/types"
	"github.com/dank-league/memebot/internal/observability/attr"
)

// Gateway request/reply subjects. The gateway service owns the Discord
// session; the backend never holds a Discord connection itself.
const (
	sendMessageSubject = "discord.gateway.message.send.v1"
	addReactionSubject = "discord.gateway.reaction.add.v1"
	permissionSubject  = "discord.gateway.permission.check.v1"
)

const defaultRequestTimeout = 5 * time.Second

type sendMessageRequest struct {
	ChannelID  contesttypes.ChannelID `json:"channel_id"`
	Content    string                 `json:"content"`
	Attachment string                 `json:"attachment,omitempty"`
}

type sendMessageResponse struct {
	MessageID contesttypes.MessageID `json:"message_id"`
	Error     string                 `json:"error,omitempty"`
}

type addReactionRequest struct {
	ChannelID contesttypes.ChannelID `json:"channel_id"`
	MessageID contesttypes.MessageID `json:"message_id"`
	Emoji     string                 `json:"emoji"`
}

type addReactionResponse struct {
	Error string `json:"error,omitempty"`
}

type permissionCheckRequest struct {
	GuildID contesttypes.GuildID `json:"guild_id"`
	UserID  contesttypes.UserID  `json:"user_id"`
}

type permissionCheckResponse struct {
	Administrator bool   `json:"administrator"`
	Error         string `json:"error,omitempty"`
}

// NATSGateway talks to the Discord gateway over NATS request/reply. It
// implements both the Transport and CapabilityChecker ports.
type NATSGateway struct {
	conn    *nc.Conn
	timeout time.Duration
	logger  *slog.Logger
}

// NewNATSGateway connects to NATS and returns a gateway client. Close
// releases the connection.
func NewNATSGateway(natsURL string, logger *slog.Logger) (*NATSGateway, error) {
	conn, err := nc.Connect(natsURL, nc.RetryOnFailedConnect(true))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSGateway{
		conn:    conn,
		timeout: defaultRequestTimeout,
		logger:  logger,
	}, nil
}

// SendMessage posts text (and an optional attachment) to a channel through
// the gateway and returns the created message's ID.
func (g *NATSGateway) SendMessage(ctx context.Context, channelID contesttypes.ChannelID, text string, attachment string) (contesttypes.MessageID, error) {
	var resp sendMessageResponse
	err := g.request(ctx, sendMessageSubject, sendMessageRequest{
		ChannelID:  channelID,
		Content:    text,
		Attachment: attachment,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Error != "" {
		return "", fmt.Errorf("gateway rejected send to %s: %s", channelID, resp.Error)
	}
	if resp.MessageID == "" {
		return "", errors.New("gateway returned empty message ID")
	}
	return resp.MessageID, nil
}

// AddReaction adds an emoji reaction to a message through the gateway.
func (g *NATSGateway) AddReaction(ctx context.Context, channelID contesttypes.ChannelID, messageID contesttypes.MessageID, emoji string) error {
	var resp addReactionResponse
	err := g.request(ctx, addReactionSubject, addReactionRequest{
		ChannelID: channelID,
		MessageID: messageID,
		Emoji:     emoji,
	}, &resp)
	if err != nil {
		return err
	}
	if resp.Error != "" {
		return fmt.Errorf("gateway rejected reaction on %s: %s", messageID, resp.Error)
	}
	return nil
}

// IsAdministrator asks the gateway whether the user holds the administrator
// permission in the guild.
func (g *NATSGateway) IsAdministrator(ctx context.Context, guildID contesttypes.GuildID, userID contesttypes.UserID) (bool, error) {
	var resp permissionCheckResponse
	err := g.request(ctx, permissionSubject, permissionCheckRequest{
		GuildID: guildID,
		UserID:  userID,
	}, &resp)
	if err != nil {
		return false, err
	}
	if resp.Error != "" {
		return false, fmt.Errorf("gateway permission check failed for %s in %s: %s", userID, guildID, resp.Error)
	}
	return resp.Administrator, nil
}

// Close releases the NATS connection.
func (g *NATSGateway) Close() {
	g.conn.Close()
}

func (g *NATSGateway) request(ctx context.Context, subject string, req any, resp any) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", subject, err)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	reply, err := g.conn.RequestWithContext(ctx, subject, data)
	if err != nil {
		g.logger.ErrorContext(ctx, "Gateway request failed",
			attr.String("subject", subject),
			attr.Error(err),
		)
		return fmt.Errorf("gateway request %s failed: %w", subject, err)
	}

	if err := json.Unmarshal(reply.Data, resp); err != nil {
		return fmt.Errorf("failed to unmarshal %s reply: %w", subject, err)
	}
	return nil
}
