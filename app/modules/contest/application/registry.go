package contestservice

import (
	"sync"
	"time"

	contesttypes "github.com/dank-league/memebot/app/modules/contest/domain/types"
)

// Registry owns every guild's contest record. The registry map has its own
// lock; each record carries a second lock serializing phase and ledger
// mutation, so events for different guilds never block each other. No lock
// is ever held across external I/O.
type Registry struct {
	mu       sync.RWMutex
	contests map[contesttypes.GuildID]*registryEntry
}

type registryEntry struct {
	mu      sync.Mutex
	contest *contesttypes.Contest
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{contests: make(map[contesttypes.GuildID]*registryEntry)}
}

func (r *Registry) lookup(guildID contesttypes.GuildID) (*registryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.contests[guildID]
	return entry, ok
}

// TryCreate atomically inserts a new contest in the submissions-open phase.
// It fails with ErrAlreadyActive if the guild already has a record; records
// are removed exactly once, at resolution, so presence means active.
func (r *Registry) TryCreate(guildID contesttypes.GuildID, channelID contesttypes.ChannelID, announcementID contesttypes.MessageID, now time.Time) (contesttypes.ContestView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.contests[guildID]; ok {
		return contesttypes.ContestView{}, ErrAlreadyActive
	}

	contest := contesttypes.NewContest(guildID, channelID, announcementID, now)
	r.contests[guildID] = &registryEntry{contest: contest}
	return contest.View(), nil
}

// Get returns a snapshot of the guild's contest. The record may be mutated
// or removed concurrently after Get returns; callers must not treat the
// snapshot as current.
func (r *Registry) Get(guildID contesttypes.GuildID) (contesttypes.ContestView, bool) {
	entry, ok := r.lookup(guildID)
	if !ok {
		return contesttypes.ContestView{}, false
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.contest.View(), true
}

// RecordSubmission accepts a reply to the announcement post as a new
// submission, inserting the participant with zero votes. Rejections carry a
// RejectionError reason.
func (r *Registry) RecordSubmission(guildID contesttypes.GuildID, replyTo contesttypes.MessageID, participant contesttypes.UserID) error {
	entry, ok := r.lookup(guildID)
	if !ok {
		return &RejectionError{Reason: ReasonNoActiveContest}
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	contest := entry.contest
	if contest.Phase != contesttypes.PhaseSubmissionsOpen {
		return &RejectionError{Reason: ReasonSubmissionsClosed}
	}
	if replyTo != contest.AnnouncementMessageID {
		return &RejectionError{Reason: ReasonWrongThread}
	}
	if !contest.Ledger.Add(participant) {
		return &RejectionError{Reason: ReasonDuplicateSubmission}
	}
	return nil
}

// MarkAckApplied records that the acknowledgement reaction registered on the
// participant's submission. Harmless if the contest or participant is gone.
func (r *Registry) MarkAckApplied(guildID contesttypes.GuildID, participant contesttypes.UserID) {
	entry, ok := r.lookup(guildID)
	if !ok {
		return
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.contest.Ledger.MarkAckApplied(participant)
}

// UpdateVote overwrites the participant's vote count from a raw reaction
// tally. The bot's own acknowledgement reaction is excluded only when it is
// known to have registered; the stored count never goes below zero. Votes
// apply only while voting is open. Returns the stored count.
func (r *Registry) UpdateVote(guildID contesttypes.GuildID, replyTo contesttypes.MessageID, participant contesttypes.UserID, rawCount int) (int, error) {
	entry, ok := r.lookup(guildID)
	if !ok {
		return 0, &RejectionError{Reason: ReasonNoActiveContest}
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	contest := entry.contest
	if contest.Phase != contesttypes.PhaseVotingOpen {
		return 0, &RejectionError{Reason: ReasonVotingNotOpen}
	}
	if replyTo != contest.AnnouncementMessageID {
		return 0, &RejectionError{Reason: ReasonWrongThread}
	}
	ledgerEntry, ok := contest.Ledger.Entry(participant)
	if !ok {
		return 0, &RejectionError{Reason: ReasonUnknownParticipant}
	}

	votes := rawCount
	if ledgerEntry.AckApplied {
		votes--
	}
	if votes < 0 {
		votes = 0
	}
	contest.Ledger.SetVotes(participant, votes)
	return votes, nil
}

// CloseSubmissions transitions the contest from submissions-open to
// voting-open and returns a snapshot of the updated record.
func (r *Registry) CloseSubmissions(guildID contesttypes.GuildID) (contesttypes.ContestView, error) {
	entry, ok := r.lookup(guildID)
	if !ok {
		return contesttypes.ContestView{}, ErrNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	contest := entry.contest
	if !contest.Phase.CanTransitionTo(contesttypes.PhaseVotingOpen) {
		return contesttypes.ContestView{}, ErrWrongPhase
	}
	contest.Phase = contesttypes.PhaseVotingOpen
	return contest.View(), nil
}

// Resolution is the outcome of a finished contest.
type Resolution struct {
	GuildID      contesttypes.GuildID
	ChannelID    contesttypes.ChannelID
	Winner       *contesttypes.UserID
	WinningVotes int
	Standings    []contesttypes.Standing
}

// ResolveAndRemove transitions the contest to resolved, computes the winner
// (first participant in submission order holding the maximum count; none on
// an empty ledger) and removes the record. Late events for the guild see
// NotFound afterwards.
func (r *Registry) ResolveAndRemove(guildID contesttypes.GuildID) (Resolution, error) {
	entry, ok := r.lookup(guildID)
	if !ok {
		return Resolution{}, ErrNotFound
	}

	entry.mu.Lock()
	contest := entry.contest
	if contest.Phase == contesttypes.PhaseResolved {
		entry.mu.Unlock()
		return Resolution{}, ErrNotFound
	}
	contest.Phase = contesttypes.PhaseResolved

	resolution := Resolution{
		GuildID:   guildID,
		ChannelID: contest.AnnouncementChannelID,
		Standings: contest.Ledger.Standings(),
	}
	if winner, votes, ok := contest.Ledger.Winner(); ok {
		resolution.Winner = &winner
		resolution.WinningVotes = votes
	}
	entry.mu.Unlock()

	// The record is gone for everyone acquiring the map lock after this;
	// stragglers already holding the entry observe the resolved phase.
	r.mu.Lock()
	if current, ok := r.contests[guildID]; ok && current == entry {
		delete(r.contests, guildID)
	}
	r.mu.Unlock()

	return resolution, nil
}

// Len returns the number of active contests.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.contests)
}
