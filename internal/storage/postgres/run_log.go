package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"jobverse/internal/domain"
)

var runLogColumns = []string{
	"id", "timestamp", "jobs_processed", "jobs_filtered", "jobs_added",
	"success", "error", "user_id", "source",
}

type RunLogStore struct {
	db *sqlx.DB
}

func NewRunLogStore(db *sqlx.DB) *RunLogStore {
	return &RunLogStore{db: db}
}

func (s *RunLogStore) Append(ctx context.Context, log *domain.RunLog) error {
	query, args, err := psql.Insert("workflow_logs").
		Columns(runLogColumns...).
		Values(
			log.ID, log.Timestamp, log.JobsProcessed, log.JobsFiltered, log.JobsAdded,
			log.Success, log.Error, log.UserID, log.Source,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert run log: %w", err)
	}

	return nil
}

// List returns run logs newest first.
func (s *RunLogStore) List(ctx context.Context, limit uint64) ([]domain.RunLog, error) {
	query, args, err := psql.Select(runLogColumns...).
		From("workflow_logs").
		OrderBy("timestamp DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	logs := []domain.RunLog{}
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &logs, query, args...); err != nil {
		return nil, fmt.Errorf("list run logs: %w", err)
	}

	return logs, nil
}
