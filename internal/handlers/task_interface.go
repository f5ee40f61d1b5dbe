package handlers

import (
	"context"

	"todoTracker/internal/cache"
	"todoTracker/internal/models/task"
)

type Service interface {
	HealthCheck(context.Context) error
	CacheStats() cache.Stats
	List(context.Context) ([]*task.Task, error)
	GetByID(context.Context, int64) (*task.Task, error)
	Create(context.Context, *task.Task) (*task.Task, error)
	Update(context.Context, int64, *task.Task) (*task.Task, error)
	Delete(context.Context, int64) (*task.Task, error)
	Patch(context.Context, int64) (*task.Task, error)
}
