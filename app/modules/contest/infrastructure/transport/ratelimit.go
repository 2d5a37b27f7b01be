package transport

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	contestservice "github.com/dank-league/memebot/app/modules/contest/application"
	contesttypes "github.com/dank-league/memebot/app/modules/contest/domain/types"
)

// RateLimited decorates a Transport with a token-bucket limiter so bursts
// of announcements and ack reactions stay inside the chat platform's rate
// limits. Calls block until a token is available or the context ends.
type RateLimited struct {
	inner   contestservice.Transport
	limiter *rate.Limiter
}

// NewRateLimited wraps inner with a limiter allowing rps requests per
// second with the given burst.
func NewRateLimited(inner contestservice.Transport, rps float64, burst int) *RateLimited {
	return &RateLimited{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (t *RateLimited) SendMessage(ctx context.Context, channelID contesttypes.ChannelID, text string, attachment string) (contesttypes.MessageID, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait: %w", err)
	}
	return t.inner.SendMessage(ctx, channelID, text, attachment)
}

func (t *RateLimited) AddReaction(ctx context.Context, channelID contesttypes.ChannelID, messageID contesttypes.MessageID, emoji string) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	return t.inner.AddReaction(ctx, channelID, messageID, emoji)
}
