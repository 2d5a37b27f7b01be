package contesttypes

// LedgerEntry is the per-participant state in a contest ledger. Votes is the
// latest observed reaction tally, not an accumulator. AckApplied records
// whether the bot's acknowledgement reaction registered on the submission,
// which decides whether the raw reaction count must be reduced by one.
type LedgerEntry struct {
	Votes      int
	AckApplied bool
}

// Ledger tracks accepted submissions and their current vote counts for one
// contest. Participants are kept in submission order so winner selection is
// deterministic. Not safe for concurrent use; the registry serializes access.
type Ledger struct {
	entries map[UserID]*LedgerEntry
	order   []UserID
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[UserID]*LedgerEntry)}
}

// Add inserts a participant with zero votes. It reports false if the
// participant already has an entry.
func (l *Ledger) Add(participant UserID) bool {
	if _, ok := l.entries[participant]; ok {
		return false
	}
	l.entries[participant] = &LedgerEntry{}
	l.order = append(l.order, participant)
	return true
}

// Has reports whether the participant has an accepted submission. Presence
// is independent of vote count, which may legitimately be zero.
func (l *Ledger) Has(participant UserID) bool {
	_, ok := l.entries[participant]
	return ok
}

// SetVotes overwrites the participant's vote count with the latest observed
// value. It reports false for unknown participants.
func (l *Ledger) SetVotes(participant UserID, votes int) bool {
	entry, ok := l.entries[participant]
	if !ok {
		return false
	}
	entry.Votes = votes
	return true
}

// MarkAckApplied records that the acknowledgement reaction registered on the
// participant's submission.
func (l *Ledger) MarkAckApplied(participant UserID) {
	if entry, ok := l.entries[participant]; ok {
		entry.AckApplied = true
	}
}

// Entry returns a copy of the participant's entry.
func (l *Ledger) Entry(participant UserID) (LedgerEntry, bool) {
	entry, ok := l.entries[participant]
	if !ok {
		return LedgerEntry{}, false
	}
	return *entry, true
}

// Len returns the number of accepted submissions.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Winner returns the first participant in submission order holding the
// maximum vote count. ok is false for an empty ledger.
func (l *Ledger) Winner() (winner UserID, votes int, ok bool) {
	for _, participant := range l.order {
		entry := l.entries[participant]
		if !ok || entry.Votes > votes {
			winner, votes, ok = participant, entry.Votes, true
		}
	}
	return winner, votes, ok
}

// Standing is one participant's tally in a resolved contest.
type Standing struct {
	Participant UserID `json:"participant"`
	Votes       int    `json:"votes"`
}

// Standings returns the ledger contents in submission order.
func (l *Ledger) Standings() []Standing {
	standings := make([]Standing, 0, len(l.order))
	for _, participant := range l.order {
		standings = append(standings, Standing{
			Participant: participant,
			Votes:       l.entries[participant].Votes,
		})
	}
	return standings
}
