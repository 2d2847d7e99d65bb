package workers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lumistudy/tutor-api/internal/database"
	"github.com/lumistudy/tutor-api/internal/queue"
)

const (
	// RollupWindowDays is the mood aggregation window
	RollupWindowDays = 7
)

// MoodRollupWorker consumes mood rollup jobs and refreshes per-subject mood
// summaries from recent mood log entries.
type MoodRollupWorker struct {
	moods     database.MoodLogRepositoryInterface
	summaries database.MoodSummaryRepositoryInterface
	jobQueue  queue.JobQueue // for re-enqueueing failed jobs
	logger    *zap.Logger
}

// NewMoodRollupWorker creates a new mood rollup worker
func NewMoodRollupWorker(
	moods database.MoodLogRepositoryInterface,
	summaries database.MoodSummaryRepositoryInterface,
	jobQueue queue.JobQueue,
	logger *zap.Logger,
) *MoodRollupWorker {
	return &MoodRollupWorker{
		moods:     moods,
		summaries: summaries,
		jobQueue:  jobQueue,
		logger:    logger,
	}
}

// ProcessMoodRollupJob recomputes mood summaries for the job's user. The
// aggregate covers every subject the user chatted about in the window, so a
// burst of jobs for different subjects converges on the same result.
func (w *MoodRollupWorker) ProcessMoodRollupJob(ctx context.Context, job *queue.Job) error {
	aggregates, err := w.moods.AggregateWindow(ctx, job.UserID, RollupWindowDays)
	if err != nil {
		return fmt.Errorf("failed to aggregate mood logs: %w", err)
	}

	now := time.Now().UTC()
	for _, summary := range aggregates {
		summary.WindowDays = RollupWindowDays
		summary.UpdatedAt = now
		if err := w.summaries.Upsert(ctx, summary); err != nil {
			return fmt.Errorf("failed to upsert mood summary: %w", err)
		}
	}

	w.logger.Info("mood_rollup_completed",
		zap.String("user_id", job.UserID.String()),
		zap.Int("subjects", len(aggregates)),
	)
	return nil
}

// ProcessJob processes a job based on its type
func (w *MoodRollupWorker) ProcessJob(ctx context.Context, msg queue.MessageInterface) error {
	job := msg.GetJob()

	switch job.Type {
	case queue.JobTypeMoodRollup:
		if err := w.ProcessMoodRollupJob(ctx, job); err != nil {
			return w.handleJobError(ctx, msg, job, err)
		}
		if ackErr := msg.Ack(); ackErr != nil {
			return fmt.Errorf("failed to ack job: %w", ackErr)
		}
		return nil

	default:
		// Unknown job type, send to DLQ
		if nackErr := msg.Nack(false); nackErr != nil {
			w.logger.Warn("nack_failed", zap.Error(nackErr))
		}
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

// handleJobError retries a failed job by re-enqueueing it with an incremented
// retry count, routing to the DLQ once retries are exhausted.
func (w *MoodRollupWorker) handleJobError(ctx context.Context, msg queue.MessageInterface, job *queue.Job, err error) error {
	if !job.CanRetry() {
		w.logger.Error("mood_rollup_retries_exhausted",
			zap.String("job_id", job.ID.String()),
			zap.Int("retry_count", job.RetryCount),
			zap.Error(err),
		)
		if nackErr := msg.Nack(false); nackErr != nil {
			w.logger.Warn("nack_failed", zap.Error(nackErr))
		}
		return fmt.Errorf("mood rollup failed permanently: %w", err)
	}

	job.IncrementRetry()
	if enqErr := w.jobQueue.Enqueue(ctx, job); enqErr != nil {
		// Could not re-enqueue, requeue the original delivery instead
		if nackErr := msg.Nack(true); nackErr != nil {
			w.logger.Warn("nack_failed", zap.Error(nackErr))
		}
		return fmt.Errorf("failed to re-enqueue job: %w", enqErr)
	}

	if ackErr := msg.Ack(); ackErr != nil {
		return fmt.Errorf("failed to ack job after re-enqueue: %w", ackErr)
	}

	w.logger.Warn("mood_rollup_retrying",
		zap.String("job_id", job.ID.String()),
		zap.Int("retry_count", job.RetryCount),
		zap.Error(err),
	)
	return nil
}
