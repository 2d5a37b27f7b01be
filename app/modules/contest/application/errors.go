package contestservice

import "errors"

var (
	// ErrAlreadyActive is returned by TryCreate when the guild already has a
	// running contest.
	ErrAlreadyActive = errors.New("a contest is already active for this guild")

	// ErrNotFound is returned when no contest exists for the guild.
	ErrNotFound = errors.New("no active contest for this guild")

	// ErrWrongPhase is returned by phase transitions that arrive after the
	// contest already moved past the requested phase.
	ErrWrongPhase = errors.New("contest already past this phase")
)

// RejectionReason classifies why a submission or vote update was not
// applied. All reasons are expected steady-state outcomes, not faults.
type RejectionReason string

const (
	ReasonNoActiveContest     RejectionReason = "no_active_contest"
	ReasonSubmissionsClosed   RejectionReason = "submissions_closed"
	ReasonWrongThread         RejectionReason = "wrong_thread"
	ReasonDuplicateSubmission RejectionReason = "duplicate_submission"
	ReasonUnknownParticipant  RejectionReason = "unknown_participant"
	ReasonVotingNotOpen       RejectionReason = "voting_not_open"
)

// RejectionError carries the reason a submission or vote was rejected.
type RejectionError struct {
	Reason RejectionReason
}

func (e *RejectionError) Error() string {
	return "rejected: " + string(e.Reason)
}

// Rejected extracts the rejection reason from err, if it is one.
func Rejected(err error) (RejectionReason, bool) {
	var rejection *RejectionError
	if errors.As(err, &rejection) {
		return rejection.Reason, true
	}
	return "", false
}
