package contesttypes

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLedger_Add(t *testing.T) {
	l := NewLedger()

	if !l.Add("user-1") {
		t.Error("first Add returned false")
	}
	if l.Add("user-1") {
		t.Error("duplicate Add returned true")
	}
	if !l.Has("user-1") {
		t.Error("Has returned false for accepted participant")
	}
	if l.Has("user-2") {
		t.Error("Has returned true for unknown participant")
	}
	if l.Len() != 1 {
		t.Errorf("got len %d, want 1", l.Len())
	}

	entry, ok := l.Entry("user-1")
	if !ok || entry.Votes != 0 || entry.AckApplied {
		t.Errorf("got entry %+v, want zero votes and no ack", entry)
	}
}

func TestLedger_SetVotes(t *testing.T) {
	l := NewLedger()
	l.Add("user-1")

	if !l.SetVotes("user-1", 3) {
		t.Error("SetVotes returned false for known participant")
	}
	if l.SetVotes("ghost", 3) {
		t.Error("SetVotes returned true for unknown participant")
	}

	// Overwrite, not accumulate.
	l.SetVotes("user-1", 7)
	entry, _ := l.Entry("user-1")
	if entry.Votes != 7 {
		t.Errorf("got %d votes, want 7", entry.Votes)
	}
}

func TestLedger_MarkAckApplied(t *testing.T) {
	l := NewLedger()
	l.Add("user-1")

	l.MarkAckApplied("user-1")
	l.MarkAckApplied("ghost")

	entry, _ := l.Entry("user-1")
	if !entry.AckApplied {
		t.Error("AckApplied not set")
	}
}

func TestLedger_Winner(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(*Ledger)
		wantOK    bool
		wantUser  UserID
		wantVotes int
	}{
		{
			name:   "empty ledger has no winner",
			setup:  func(l *Ledger) {},
			wantOK: false,
		},
		{
			name: "single participant with zero votes wins",
			setup: func(l *Ledger) {
				l.Add("user-1")
			},
			wantOK:    true,
			wantUser:  "user-1",
			wantVotes: 0,
		},
		{
			name: "strict maximum wins",
			setup: func(l *Ledger) {
				l.Add("a")
				l.Add("b")
				l.Add("c")
				l.SetVotes("a", 2)
				l.SetVotes("b", 5)
				l.SetVotes("c", 4)
			},
			wantOK:    true,
			wantUser:  "b",
			wantVotes: 5,
		},
		{
			name: "tie goes to earliest submission",
			setup: func(l *Ledger) {
				l.Add("a")
				l.Add("b")
				l.Add("c")
				l.SetVotes("a", 2)
				l.SetVotes("b", 5)
				l.SetVotes("c", 5)
			},
			wantOK:    true,
			wantUser:  "b",
			wantVotes: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger()
			tt.setup(l)

			winner, votes, ok := l.Winner()
			if ok != tt.wantOK {
				t.Fatalf("got ok=%v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if winner != tt.wantUser || votes != tt.wantVotes {
				t.Errorf("got winner %s with %d votes, want %s with %d", winner, votes, tt.wantUser, tt.wantVotes)
			}
		})
	}
}

func TestLedger_Standings(t *testing.T) {
	l := NewLedger()
	l.Add("a")
	l.Add("b")
	l.Add("c")
	l.SetVotes("b", 3)

	want := []Standing{
		{Participant: "a", Votes: 0},
		{Participant: "b", Votes: 3},
		{Participant: "c", Votes: 0},
	}
	if diff := cmp.Diff(want, l.Standings()); diff != "" {
		t.Errorf("standings mismatch (-want +got):\n%s", diff)
	}
}
