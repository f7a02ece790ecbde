package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"jobverse/internal/domain"
	"jobverse/internal/filter"
)

const notificationSubject = "Job Summary"

// WorkflowService runs the job ingestion pipeline: fetch, filter, write, log
// and notify. At most one run is active per service.
type WorkflowService struct {
	source    Source
	jobs      JobStore
	runLogs   RunLogStore
	txManager TransactionManager
	notifier  Notifier
	logger    *slog.Logger
	now       func() time.Time

	mu     sync.Mutex
	status domain.RunStatus
}

func NewWorkflowService(
	source Source,
	jobs JobStore,
	runLogs RunLogStore,
	txManager TransactionManager,
	notifier Notifier,
	logger *slog.Logger,
) *WorkflowService {
	return &WorkflowService{
		source:    source,
		jobs:      jobs,
		runLogs:   runLogs,
		txManager: txManager,
		notifier:  notifier,
		logger:    logger.With("source", source.ID()),
		now:       time.Now,
	}
}

// Status returns a snapshot of the current run state.
func (s *WorkflowService) Status() domain.RunStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.status
	if st.LastRun != nil {
		t := *st.LastRun
		st.LastRun = &t
	}
	return st
}

// Execute runs the pipeline once. userID identifies whoever triggered the run
// and may be nil. A call made while another run is active returns
// domain.ErrAlreadyRunning without touching the in-flight counters.
func (s *WorkflowService) Execute(ctx context.Context, userID *string) (result *domain.RunResult, err error) {
	if !s.tryStart() {
		s.logger.Info("workflow already running, trigger ignored")
		return nil, domain.ErrAlreadyRunning
	}
	defer s.finish()

	startTime := s.now()
	s.logger.Info("starting workflow", "source_name", s.source.Name())

	jobsAdded := 0
	defer func() {
		s.logExecution(ctx, jobsAdded, userID, err)
	}()

	entries, err := s.source.FetchEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}
	s.setProcessed(len(entries))

	filtered := filter.Filter(entries)
	s.setFiltered(len(filtered))
	s.logger.Info("filtered entries", "total", len(entries), "relevant", len(filtered))

	jobsAdded, err = s.store(ctx, filtered)
	if err != nil {
		return nil, fmt.Errorf("store jobs: %w", err)
	}

	s.notify(ctx, jobsAdded, userID)

	finished := s.now()
	s.setLastRun(finished)

	status := s.Status()
	s.logger.Info("workflow completed",
		"processed", status.JobsProcessed,
		"filtered", status.JobsFiltered,
		"added", jobsAdded,
		"duration", finished.Sub(startTime),
	)

	return &domain.RunResult{
		Success:       true,
		JobsProcessed: status.JobsProcessed,
		JobsFiltered:  status.JobsFiltered,
		JobsAdded:     jobsAdded,
		Timestamp:     finished,
	}, nil
}

func (s *WorkflowService) store(ctx context.Context, entries []domain.FeedEntry) (int, error) {
	now := s.now()
	if len(entries) == 0 {
		s.logger.Info("no relevant jobs found, writing sample jobs")
		entries = SampleEntries(now, s.source.Name())
	}

	records := make([]domain.JobRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, toJobRecord(e, s.source.Name(), now))
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.jobs.UpsertBatch(txCtx, records)
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrWrite, err)
	}

	s.logger.Debug("stored jobs", "count", len(records))
	return len(records), nil
}

func (s *WorkflowService) notify(ctx context.Context, jobCount int, userID *string) {
	if s.notifier == nil {
		return
	}

	n := &domain.Notification{
		UserID:    userID,
		Subject:   notificationSubject,
		Message:   fmt.Sprintf("I just added %d new jobs to your job board.", jobCount),
		JobCount:  jobCount,
		Source:    s.source.Name(),
		Timestamp: s.now().UTC(),
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Error("send notification failed", "error", err)
	}
}

// logExecution appends the run log. Failures are reported and dropped.
func (s *WorkflowService) logExecution(ctx context.Context, jobsAdded int, userID *string, runErr error) {
	status := s.Status()

	entry := &domain.RunLog{
		ID:            uuid.NewString(),
		Timestamp:     s.now().UTC(),
		JobsProcessed: status.JobsProcessed,
		JobsFiltered:  status.JobsFiltered,
		JobsAdded:     jobsAdded,
		Success:       runErr == nil,
		UserID:        userID,
		Source:        s.source.Name(),
	}
	if runErr != nil {
		msg := runErr.Error()
		entry.Error = &msg
		s.logger.Error("workflow failed", "error", runErr)
	}

	if err := s.runLogs.Append(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Error("append run log failed", "error", err)
	}
}

func (s *WorkflowService) tryStart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.IsRunning {
		return false
	}
	s.status.IsRunning = true
	s.status.JobsProcessed = 0
	s.status.JobsFiltered = 0
	return true
}

func (s *WorkflowService) finish() {
	s.mu.Lock()
	s.status.IsRunning = false
	s.mu.Unlock()
}

func (s *WorkflowService) setProcessed(n int) {
	s.mu.Lock()
	s.status.JobsProcessed = n
	s.mu.Unlock()
}

func (s *WorkflowService) setFiltered(n int) {
	s.mu.Lock()
	s.status.JobsFiltered = n
	s.mu.Unlock()
}

func (s *WorkflowService) setLastRun(t time.Time) {
	s.mu.Lock()
	s.status.LastRun = &t
	s.mu.Unlock()
}
