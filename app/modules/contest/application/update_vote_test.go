package contestservice

import (
	"context"
	"testing"

	contestevents "github.com/dank-league/memebot/app/modules/contest/domain/events"
	contesttypes "github.com/dank-league/memebot/app/modules/contest/domain/types"
)

func votingFixture(t *testing.T) (*serviceFixture, *contestevents.ContestStartedPayloadV1) {
	t.Helper()
	f, started := startedFixture(t)
	if _, err := f.service.RecordSubmission(context.Background(), submissionFrom("user-1", started.AnnouncementMessageID)); err != nil {
		t.Fatal(err)
	}
	if _, err := f.service.CloseSubmissions(context.Background(), "guild-1"); err != nil {
		t.Fatal(err)
	}
	return f, started
}

func reactionWith(count int, replyTo contesttypes.MessageID) contestevents.ReactionUpdatedPayloadV1 {
	return contestevents.ReactionUpdatedPayloadV1{
		GuildID:          "guild-1",
		ChannelID:        "chan-1",
		MessageID:        "submission-user-1",
		MessageAuthorID:  "user-1",
		ReplyToMessageID: replyTo,
		Emoji:            contesttypes.VoteEmoji,
		ReactorID:        "voter-1",
		Count:            count,
	}
}

func TestContestService_UpdateVote(t *testing.T) {
	t.Run("excludes the registered ack from the tally", func(t *testing.T) {
		f, started := votingFixture(t)

		result, err := f.service.UpdateVote(context.Background(), reactionWith(4, started.AnnouncementMessageID))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		payload, ok := result.Success.(*contestevents.VoteRecordedPayloadV1)
		if !ok {
			t.Fatalf("got result %+v, want VoteRecordedPayloadV1", result)
		}
		if payload.Votes != 3 {
			t.Errorf("got %d votes, want 3", payload.Votes)
		}
	})

	t.Run("overwrites with the latest observed count", func(t *testing.T) {
		f, started := votingFixture(t)

		if _, err := f.service.UpdateVote(context.Background(), reactionWith(4, started.AnnouncementMessageID)); err != nil {
			t.Fatal(err)
		}
		result, err := f.service.UpdateVote(context.Background(), reactionWith(8, started.AnnouncementMessageID))
		if err != nil {
			t.Fatal(err)
		}

		payload := result.Success.(*contestevents.VoteRecordedPayloadV1)
		if payload.Votes != 7 {
			t.Errorf("got %d votes, want 7", payload.Votes)
		}
	})

	t.Run("ignores votes before voting opens", func(t *testing.T) {
		f, started := startedFixture(t)
		if _, err := f.service.RecordSubmission(context.Background(), submissionFrom("user-1", started.AnnouncementMessageID)); err != nil {
			t.Fatal(err)
		}

		result, err := f.service.UpdateVote(context.Background(), reactionWith(4, started.AnnouncementMessageID))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Success != nil {
			t.Errorf("got result %+v, want empty", result)
		}
	})

	t.Run("ignores reactions on non-submission posts", func(t *testing.T) {
		f, _ := votingFixture(t)

		reaction := reactionWith(4, "some-other-post")
		result, err := f.service.UpdateVote(context.Background(), reaction)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Success != nil {
			t.Errorf("got result %+v, want empty", result)
		}
	})

	t.Run("ignores votes for unknown participants", func(t *testing.T) {
		f, started := votingFixture(t)

		reaction := reactionWith(4, started.AnnouncementMessageID)
		reaction.MessageAuthorID = "lurker"
		result, err := f.service.UpdateVote(context.Background(), reaction)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Success != nil {
			t.Errorf("got result %+v, want empty", result)
		}
	})

	t.Run("ignores votes without an active contest", func(t *testing.T) {
		f := newServiceFixture()

		result, err := f.service.UpdateVote(context.Background(), reactionWith(4, "announce-1"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Success != nil {
			t.Errorf("got result %+v, want empty", result)
		}
	})
}
