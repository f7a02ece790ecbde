package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"jobverse/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var jobColumns = []string{
	"id", "title", "link", "description", "content", "pub_date",
	"source", "date_added", "processed", "added_at", "added_by",
}

// Non-empty incoming values win, empty ones keep what is stored. A processed
// row stays processed.
const upsertJobQuery = `
	INSERT INTO jobs (
		id, title, link, description, content, pub_date,
		source, date_added, processed, added_at, added_by
	) VALUES (
		:id, :title, :link, :description, :content, :pub_date,
		:source, :date_added, :processed, :added_at, :added_by
	)
	ON CONFLICT (id) DO UPDATE SET
		title = COALESCE(NULLIF(EXCLUDED.title, ''), jobs.title),
		link = COALESCE(NULLIF(EXCLUDED.link, ''), jobs.link),
		description = COALESCE(NULLIF(EXCLUDED.description, ''), jobs.description),
		content = COALESCE(NULLIF(EXCLUDED.content, ''), jobs.content),
		pub_date = COALESCE(NULLIF(EXCLUDED.pub_date, ''), jobs.pub_date),
		source = COALESCE(NULLIF(EXCLUDED.source, ''), jobs.source),
		date_added = COALESCE(NULLIF(EXCLUDED.date_added, ''), jobs.date_added),
		processed = jobs.processed OR EXCLUDED.processed,
		added_at = EXCLUDED.added_at,
		added_by = COALESCE(EXCLUDED.added_by, jobs.added_by)`

type JobStore struct {
	db *sqlx.DB
}

func NewJobStore(db *sqlx.DB) *JobStore {
	return &JobStore{db: db}
}

// UpsertBatch merges every record into the jobs table, keyed by id.
// Records sharing an id are applied in order.
func (s *JobStore) UpsertBatch(ctx context.Context, jobs []domain.JobRecord) error {
	exec := GetExecutor(ctx, s.db)

	for i := range jobs {
		if _, err := sqlx.NamedExecContext(ctx, exec, upsertJobQuery, &jobs[i]); err != nil {
			return fmt.Errorf("upsert job %s: %w", jobs[i].ID, err)
		}
	}

	return nil
}

func (s *JobStore) Save(ctx context.Context, job *domain.JobRecord) error {
	if _, err := sqlx.NamedExecContext(ctx, GetExecutor(ctx, s.db), upsertJobQuery, job); err != nil {
		return fmt.Errorf("save job %s: %w", job.ID, err)
	}
	return nil
}

// List returns the most recently added jobs first.
func (s *JobStore) List(ctx context.Context, limit uint64) ([]domain.JobRecord, error) {
	query, args, err := psql.Select(jobColumns...).
		From("jobs").
		OrderBy("added_at DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	jobs := []domain.JobRecord{}
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &jobs, query, args...); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	return jobs, nil
}

func (s *JobStore) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("jobs").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete job %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete job %s: %w", id, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	return nil
}
