package contestservice

import (
	"context"
	"errors"
	"testing"

	contestevents "github.com/dank-league/memebot/app/modules/contest/domain/events"
	contesttypes "github.com/dank-league/memebot/app/modules/contest/domain/types"
)

func TestContestService_CloseSubmissions(t *testing.T) {
	t.Run("transitions to voting and announces it", func(t *testing.T) {
		f, _ := startedFixture(t)

		result, err := f.service.CloseSubmissions(context.Background(), "guild-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		payload, ok := result.Success.(*contestevents.VotingStartedPayloadV1)
		if !ok || payload.GuildID != "guild-1" {
			t.Fatalf("got result %+v, want VotingStartedPayloadV1", result)
		}

		view, _ := f.registry.Get("guild-1")
		if view.Phase != contesttypes.PhaseVotingOpen {
			t.Errorf("got phase %s, want %s", view.Phase, contesttypes.PhaseVotingOpen)
		}

		sent := f.transport.Sent()
		last := sent[len(sent)-1]
		if last.Text != msgVotingStarted {
			t.Errorf("got announcement %q, want %q", last.Text, msgVotingStarted)
		}
	})

	t.Run("no-op when no contest exists", func(t *testing.T) {
		f := newServiceFixture()

		result, err := f.service.CloseSubmissions(context.Background(), "guild-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Success != nil || result.Failure != nil {
			t.Errorf("got result %+v, want empty", result)
		}
	})

	t.Run("no-op when voting already open", func(t *testing.T) {
		f, _ := startedFixture(t)
		if _, err := f.service.CloseSubmissions(context.Background(), "guild-1"); err != nil {
			t.Fatal(err)
		}

		result, err := f.service.CloseSubmissions(context.Background(), "guild-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Success != nil {
			t.Errorf("got result %+v, want empty", result)
		}
	})

	t.Run("still transitions when the announcement fails", func(t *testing.T) {
		f, _ := startedFixture(t)
		f.transport.SendMessageFunc = func(ctx context.Context, channelID contesttypes.ChannelID, text string, attachment string) (contesttypes.MessageID, error) {
			return "", errors.New("channel gone")
		}

		result, err := f.service.CloseSubmissions(context.Background(), "guild-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Success == nil {
			t.Fatalf("got result %+v, want success", result)
		}

		view, _ := f.registry.Get("guild-1")
		if view.Phase != contesttypes.PhaseVotingOpen {
			t.Errorf("got phase %s, want %s", view.Phase, contesttypes.PhaseVotingOpen)
		}
	})
}
