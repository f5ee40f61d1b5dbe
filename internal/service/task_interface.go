package service

import (
	"context"

	"todoTracker/internal/cache"
	"todoTracker/internal/models/task"
)

type TaskRepository interface {
	HealthCheck(context.Context) error
	Create(context.Context, *task.Task) error
	Update(context.Context, *task.Task) error
	GetByID(context.Context, int64) (*task.Task, error)
	GetAll(context.Context) ([]*task.Task, error)
	Delete(context.Context, int64) error
	GetOverdueCandidates(ctx context.Context, today task.Date, limit int) ([]*task.Task, error)
	MarkOverdue(context.Context, *task.Task) error
}

type ListCache interface {
	GetOrLoad(ctx context.Context, load cache.Loader) ([]*task.Task, error)
	Invalidate()
	Stats() cache.Stats
}
