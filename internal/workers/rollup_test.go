package workers

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lumistudy/tutor-api/internal/models"
	"github.com/lumistudy/tutor-api/internal/queue"
)

type fakeMoodRepo struct {
	aggregates []*models.MoodSummary
	aggErr     error
}

func (f *fakeMoodRepo) Create(ctx context.Context, entry *models.MoodLogEntry) error { return nil }

func (f *fakeMoodRepo) ListByUser(ctx context.Context, userID uuid.UUID, days int) ([]*models.MoodLogEntry, error) {
	return nil, nil
}

func (f *fakeMoodRepo) AggregateWindow(ctx context.Context, userID uuid.UUID, days int) ([]*models.MoodSummary, error) {
	if f.aggErr != nil {
		return nil, f.aggErr
	}
	return f.aggregates, nil
}

func (f *fakeMoodRepo) DeleteBySubject(ctx context.Context, userID, subjectID uuid.UUID) error {
	return nil
}

type fakeSummaryRepo struct {
	upserts   []*models.MoodSummary
	upsertErr error
}

func (f *fakeSummaryRepo) Upsert(ctx context.Context, summary *models.MoodSummary) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, summary)
	return nil
}

func (f *fakeSummaryRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.MoodSummary, error) {
	return f.upserts, nil
}

type fakeQueue struct {
	enqueued []*queue.Job
	enqErr   error
}

func (f *fakeQueue) Enqueue(ctx context.Context, job *queue.Job) error {
	if f.enqErr != nil {
		return f.enqErr
	}
	f.enqueued = append(f.enqueued, job)
	return nil
}

func (f *fakeQueue) Consume(ctx context.Context, prefetchCount int) (<-chan *queue.Message, <-chan error, error) {
	return nil, nil, nil
}

func (f *fakeQueue) Close() error                          { return nil }
func (f *fakeQueue) HealthCheck(ctx context.Context) error { return nil }

type fakeMessage struct {
	job     *queue.Job
	acked   bool
	nacked  bool
	requeue bool
}

func (m *fakeMessage) Ack() error {
	m.acked = true
	return nil
}

func (m *fakeMessage) Nack(requeue bool) error {
	m.nacked = true
	m.requeue = requeue
	return nil
}

func (m *fakeMessage) GetJob() *queue.Job { return m.job }

func TestProcessMoodRollupJob(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	moods := &fakeMoodRepo{aggregates: []*models.MoodSummary{
		{UserID: userID, SubjectID: uuid.New(), AvgScore: 0.3, AvgMagnitude: 0.4, EntryCount: 5},
		{UserID: userID, SubjectID: uuid.New(), AvgScore: -0.1, AvgMagnitude: 0.2, EntryCount: 2},
	}}
	summaries := &fakeSummaryRepo{}

	worker := NewMoodRollupWorker(moods, summaries, &fakeQueue{}, zap.NewNop())
	job := queue.NewJob(queue.JobTypeMoodRollup, userID, uuid.New())

	if err := worker.ProcessMoodRollupJob(context.Background(), job); err != nil {
		t.Fatalf("ProcessMoodRollupJob failed: %v", err)
	}

	if len(summaries.upserts) != 2 {
		t.Fatalf("Expected 2 upserts, got %d", len(summaries.upserts))
	}
	for _, s := range summaries.upserts {
		if s.WindowDays != RollupWindowDays {
			t.Errorf("Expected window days %d, got %d", RollupWindowDays, s.WindowDays)
		}
		if s.UpdatedAt.IsZero() {
			t.Error("Expected updated at to be set")
		}
	}
}

func TestProcessJob_AcksOnSuccess(t *testing.T) {
	t.Parallel()

	worker := NewMoodRollupWorker(&fakeMoodRepo{}, &fakeSummaryRepo{}, &fakeQueue{}, zap.NewNop())
	msg := &fakeMessage{job: queue.NewJob(queue.JobTypeMoodRollup, uuid.New(), uuid.New())}

	if err := worker.ProcessJob(context.Background(), msg); err != nil {
		t.Fatalf("ProcessJob failed: %v", err)
	}
	if !msg.acked {
		t.Error("Expected message to be acked")
	}
}

func TestProcessJob_RetriesOnFailure(t *testing.T) {
	t.Parallel()

	q := &fakeQueue{}
	moods := &fakeMoodRepo{aggErr: errors.New("db down")}
	worker := NewMoodRollupWorker(moods, &fakeSummaryRepo{}, q, zap.NewNop())
	msg := &fakeMessage{job: queue.NewJob(queue.JobTypeMoodRollup, uuid.New(), uuid.New())}

	if err := worker.ProcessJob(context.Background(), msg); err != nil {
		t.Fatalf("Expected retry path to succeed, got %v", err)
	}

	if len(q.enqueued) != 1 {
		t.Fatalf("Expected 1 re-enqueued job, got %d", len(q.enqueued))
	}
	if q.enqueued[0].RetryCount != 1 {
		t.Errorf("Expected retry count 1, got %d", q.enqueued[0].RetryCount)
	}
	if !msg.acked {
		t.Error("Expected original message to be acked after re-enqueue")
	}
}

func TestProcessJob_ExhaustedRetriesGoToDLQ(t *testing.T) {
	t.Parallel()

	moods := &fakeMoodRepo{aggErr: errors.New("db down")}
	worker := NewMoodRollupWorker(moods, &fakeSummaryRepo{}, &fakeQueue{}, zap.NewNop())

	job := queue.NewJob(queue.JobTypeMoodRollup, uuid.New(), uuid.New())
	job.RetryCount = job.MaxRetries
	msg := &fakeMessage{job: job}

	if err := worker.ProcessJob(context.Background(), msg); err == nil {
		t.Fatal("Expected permanent failure error")
	}
	if !msg.nacked || msg.requeue {
		t.Error("Expected message to be nacked without requeue")
	}
}

func TestProcessJob_UnknownType(t *testing.T) {
	t.Parallel()

	worker := NewMoodRollupWorker(&fakeMoodRepo{}, &fakeSummaryRepo{}, &fakeQueue{}, zap.NewNop())
	job := queue.NewJob("bogus", uuid.New(), uuid.New())
	msg := &fakeMessage{job: job}

	if err := worker.ProcessJob(context.Background(), msg); err == nil {
		t.Fatal("Expected error for unknown job type")
	}
	if !msg.nacked || msg.requeue {
		t.Error("Expected message to be nacked without requeue")
	}
}
