package contesthandlers

import (
	"context"

	contestservice "github.com/dank-league/memebot/app/modules/contest/application"
	contestevents "github.com/dank-league/memebot/app/modules/contest/domain/events"
	contesttypes "github.com/dank-league/memebot/app/modules/contest/domain/types"
)

// ------------------------
// Fake Contest Service
// ------------------------

// FakeContestService provides a programmable stub for the
// contestservice.Service interface.
type FakeContestService struct {
	trace []string

	StartContestFunc     func(ctx context.Context, cmd contestservice.StartContestCommand) (contestservice.ContestOperationResult, error)
	RecordSubmissionFunc func(ctx context.Context, msg contestevents.MessageCreatedPayloadV1) (contestservice.ContestOperationResult, error)
	UpdateVoteFunc       func(ctx context.Context, reaction contestevents.ReactionUpdatedPayloadV1) (contestservice.ContestOperationResult, error)
	CloseSubmissionsFunc func(ctx context.Context, guildID contesttypes.GuildID) (contestservice.ContestOperationResult, error)
	ResolveContestFunc   func(ctx context.Context, guildID contesttypes.GuildID) (contestservice.ContestOperationResult, error)
}

// NewFakeContestService initializes a new FakeContestService.
func NewFakeContestService() *FakeContestService {
	return &FakeContestService{
		trace: []string{},
	}
}

func (f *FakeContestService) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of service methods called.
func (f *FakeContestService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// --- Service Interface Implementation ---

func (f *FakeContestService) StartContest(ctx context.Context, cmd contestservice.StartContestCommand) (contestservice.ContestOperationResult, error) {
	f.record("StartContest")
	if f.StartContestFunc != nil {
		return f.StartContestFunc(ctx, cmd)
	}
	return contestservice.ContestOperationResult{}, nil
}

func (f *FakeContestService) RecordSubmission(ctx context.Context, msg contestevents.MessageCreatedPayloadV1) (contestservice.ContestOperationResult, error) {
	f.record("RecordSubmission")
	if f.RecordSubmissionFunc != nil {
		return f.RecordSubmissionFunc(ctx, msg)
	}
	return contestservice.ContestOperationResult{}, nil
}

func (f *FakeContestService) UpdateVote(ctx context.Context, reaction contestevents.ReactionUpdatedPayloadV1) (contestservice.ContestOperationResult, error) {
	f.record("UpdateVote")
	if f.UpdateVoteFunc != nil {
		return f.UpdateVoteFunc(ctx, reaction)
	}
	return contestservice.ContestOperationResult{}, nil
}

func (f *FakeContestService) CloseSubmissions(ctx context.Context, guildID contesttypes.GuildID) (contestservice.ContestOperationResult, error) {
	f.record("CloseSubmissions")
	if f.CloseSubmissionsFunc != nil {
		return f.CloseSubmissionsFunc(ctx, guildID)
	}
	return contestservice.ContestOperationResult{}, nil
}

func (f *FakeContestService) ResolveContest(ctx context.Context, guildID contesttypes.GuildID) (contestservice.ContestOperationResult, error) {
	f.record("ResolveContest")
	if f.ResolveContestFunc != nil {
		return f.ResolveContestFunc(ctx, guildID)
	}
	return contestservice.ContestOperationResult{}, nil
}

// Ensure the fake satisfies the Service interface
var _ contestservice.Service = (*FakeContestService)(nil)
