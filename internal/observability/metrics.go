package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ContestMetrics records contest domain and operation metrics.
type ContestMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)

	RecordContestStarted(ctx context.Context, guildID string)
	RecordSubmissionAccepted(ctx context.Context, guildID string)
	RecordSubmissionRejected(ctx context.Context, guildID string, reason string)
	RecordVoteRecorded(ctx context.Context, guildID string)
	RecordVoteIgnored(ctx context.Context, guildID string, reason string)
	RecordContestResolved(ctx context.Context, guildID string, withWinner bool)
}

// PrometheusContestMetrics implements ContestMetrics on a prometheus Registry.
type PrometheusContestMetrics struct {
	operationAttempts    *prometheus.CounterVec
	operationSuccesses   *prometheus.CounterVec
	operationFailures    *prometheus.CounterVec
	operationDuration    *prometheus.HistogramVec
	contestsStarted      *prometheus.CounterVec
	submissionsAccepted  *prometheus.CounterVec
	submissionsRejected  *prometheus.CounterVec
	votesRecorded        *prometheus.CounterVec
	votesIgnored         *prometheus.CounterVec
	contestsResolved     *prometheus.CounterVec
}

// NewPrometheusContestMetrics registers contest metrics on the given registry.
func NewPrometheusContestMetrics(registry *prometheus.Registry) *PrometheusContestMetrics {
	factory := promauto.With(registry)
	return &PrometheusContestMetrics{
		operationAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "memebot_operation_attempts_total",
			Help: "Number of service operation attempts.",
		}, []string{"operation"}),
		operationSuccesses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "memebot_operation_successes_total",
			Help: "Number of service operations that completed without error.",
		}, []string{"operation"}),
		operationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "memebot_operation_failures_total",
			Help: "Number of service operations that returned an error.",
		}, []string{"operation"}),
		operationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "memebot_operation_duration_seconds",
			Help:    "Service operation duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		contestsStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "memebot_contests_started_total",
			Help: "Number of contests started.",
		}, []string{"guild_id"}),
		submissionsAccepted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "memebot_submissions_accepted_total",
			Help: "Number of submissions accepted.",
		}, []string{"guild_id"}),
		submissionsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "memebot_submissions_rejected_total",
			Help: "Number of submissions rejected, by reason.",
		}, []string{"guild_id", "reason"}),
		votesRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "memebot_votes_recorded_total",
			Help: "Number of vote count updates applied.",
		}, []string{"guild_id"}),
		votesIgnored: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "memebot_votes_ignored_total",
			Help: "Number of vote updates ignored, by reason.",
		}, []string{"guild_id", "reason"}),
		contestsResolved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "memebot_contests_resolved_total",
			Help: "Number of contests resolved, split by winner presence.",
		}, []string{"guild_id", "outcome"}),
	}
}

func (m *PrometheusContestMetrics) RecordOperationAttempt(_ context.Context, operation string) {
	m.operationAttempts.WithLabelValues(operation).Inc()
}

func (m *PrometheusContestMetrics) RecordOperationSuccess(_ context.Context, operation string) {
	m.operationSuccesses.WithLabelValues(operation).Inc()
}

func (m *PrometheusContestMetrics) RecordOperationFailure(_ context.Context, operation string) {
	m.operationFailures.WithLabelValues(operation).Inc()
}

func (m *PrometheusContestMetrics) RecordOperationDuration(_ context.Context, operation string, duration time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *PrometheusContestMetrics) RecordContestStarted(_ context.Context, guildID string) {
	m.contestsStarted.WithLabelValues(guildID).Inc()
}

func (m *PrometheusContestMetrics) RecordSubmissionAccepted(_ context.Context, guildID string) {
	m.submissionsAccepted.WithLabelValues(guildID).Inc()
}

func (m *PrometheusContestMetrics) RecordSubmissionRejected(_ context.Context, guildID string, reason string) {
	m.submissionsRejected.WithLabelValues(guildID, reason).Inc()
}

func (m *PrometheusContestMetrics) RecordVoteRecorded(_ context.Context, guildID string) {
	m.votesRecorded.WithLabelValues(guildID).Inc()
}

func (m *PrometheusContestMetrics) RecordVoteIgnored(_ context.Context, guildID string, reason string) {
	m.votesIgnored.WithLabelValues(guildID, reason).Inc()
}

func (m *PrometheusContestMetrics) RecordContestResolved(_ context.Context, guildID string, withWinner bool) {
	outcome := "no_winner"
	if withWinner {
		outcome = "winner"
	}
	m.contestsResolved.WithLabelValues(guildID, outcome).Inc()
}

// NoOpMetrics is a ContestMetrics implementation that discards everything.
// Used in tests.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string)                {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string)                {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string)                {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpMetrics) RecordContestStarted(context.Context, string)                  {}
func (NoOpMetrics) RecordSubmissionAccepted(context.Context, string)              {}
func (NoOpMetrics) RecordSubmissionRejected(context.Context, string, string)      {}
func (NoOpMetrics) RecordVoteRecorded(context.Context, string)                    {}
func (NoOpMetrics) RecordVoteIgnored(context.Context, string, string)             {}
func (NoOpMetrics) RecordContestResolved(context.Context, string, bool)           {}
