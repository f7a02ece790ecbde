package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"jobverse/internal/domain"
)

type JobStore interface {
	UpsertBatch(ctx context.Context, jobs []domain.JobRecord) error
}

type RunLogStore interface {
	Append(ctx context.Context, log *domain.RunLog) error
}

type Source interface {
	ID() string
	Name() string
	FetchEntries(ctx context.Context) ([]domain.FeedEntry, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Notifier interface {
	Notify(ctx context.Context, n *domain.Notification) error
}
