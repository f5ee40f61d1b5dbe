package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"todoTracker/internal/cache"
	"todoTracker/internal/logger"
	"todoTracker/internal/models/task"
	repo "todoTracker/internal/repository"

	"go.uber.org/zap"
)

// здесь происходит проверка ошибок бизнес-логики;
// все ошибки наружу уходят как *Error

type TaskService struct {
	repo  TaskRepository
	cache ListCache
	now   func() time.Time
}

func NewTaskService(repo TaskRepository, cache ListCache, opts ...Option) *TaskService {
	s := &TaskService{
		repo:  repo,
		cache: cache,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TaskService) today() task.Date {
	return task.Today(s.now())
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return fmt.Errorf("проверка здоровья сервиса: %w", err)
	}
	return nil
}

func (s *TaskService) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// List отдаёт все задачи через кэш; пустой срез означает "задач нет"
func (s *TaskService) List(ctx context.Context) ([]*task.Task, error) {
	tasks, err := s.cache.GetOrLoad(ctx, s.repo.GetAll)
	if err != nil {
		logger.Error("Service: Не удалось получить список задач", err)
		return nil, NewUnclassified(err, "Failed to load todo tasks.")
	}
	if tasks == nil {
		tasks = []*task.Task{}
	}
	return tasks, nil
}

func (s *TaskService) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	if err := CheckID(id); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Задача не найдена", logger.TaskID(id))
			return nil, NewNotFound("Todo task with id %d does not exist.", id)
		}
		logger.Error("Service: Ошибка получения задачи", err, logger.TaskID(id))
		return nil, NewUnclassified(err, "Failed to load todo task with id %d.", id)
	}
	if t == nil {
		logger.Warn("Service: Хранилище вернуло пустую задачу", logger.TaskID(id))
		return nil, NewNullReference("Todo task with id %d resolved to no value.", id)
	}
	return t, nil
}

func (s *TaskService) Create(ctx context.Context, in *task.Task) (*task.Task, error) {
	if in == nil {
		return nil, NewNullArgument("Todo task must not be null.")
	}

	today := s.today()
	t := task.New(task.UpdatableFrom(in)...)
	t.Apply(task.WithStatus(false))
	t.CreatedAt = today
	t.UpdatedAt = today

	if err := validateTask(t, today, true); err != nil {
		logger.Info("Service: Задача не прошла проверку", zap.String("reason", err.Error()))
		return nil, err
	}
	task.Recompute(t, today)

	if err := s.repo.Create(ctx, t); err != nil {
		logger.Error("Service: Не удалось сохранить задачу", err)
		return nil, writeError(err, "create", t.ID)
	}
	s.cache.Invalidate()

	logger.Info("Service: Задача создана", logger.TaskID(t.ID))
	return t, nil
}

func (s *TaskService) Update(ctx context.Context, id int64, in *task.Task) (*task.Task, error) {
	if err := CheckID(id); err != nil {
		return nil, err
	}
	if in == nil {
		return nil, NewNullArgument("Todo task must not be null.")
	}
	if in.ID != 0 && in.ID != id {
		return nil, NewInvalidArgument("Id %d in the path does not match id %d in the body.", id, in.ID)
	}
	if in.DueDate.IsZero() {
		return nil, NewBusinessRuleViolation("DueDate is required.")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	today := s.today()
	updated := existing.Clone()
	updated.Apply(task.UpdatableFrom(in)...)
	updated.UpdatedAt = today

	// правило срока проверяется только при его изменении
	dueChanged := !updated.DueDate.Equal(existing.DueDate)
	if err := validateTask(updated, today, dueChanged); err != nil {
		logger.Info("Service: Задача не прошла проверку",
			logger.TaskID(id),
			zap.String("reason", err.Error()))
		return nil, err
	}
	task.Recompute(updated, today)

	if err := s.repo.Update(ctx, updated); err != nil {
		logger.Error("Service: Не удалось обновить задачу", err, logger.TaskID(id))
		return nil, writeError(err, "update", id)
	}
	s.cache.Invalidate()

	logger.Info("Service: Задача обновлена",
		logger.TaskID(id),
		zap.Bool("is_overdue", updated.IsOverdue))
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) (*task.Task, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		logger.Error("Service: Не удалось удалить задачу", err, logger.TaskID(id))
		return nil, writeError(err, "delete", id)
	}
	s.cache.Invalidate()

	logger.Info("Service: Задача удалена", logger.TaskID(id))
	return existing, nil
}

// Patch частичное обновление не поддерживается
func (s *TaskService) Patch(ctx context.Context, id int64) (*task.Task, error) {
	return nil, NewUnimplemented("Partial update of todo task %d is not supported. Use PUT instead.", id)
}

// CheckID проверяет диапазон идентификатора 1..task.MaxID
func CheckID(id int64) error {
	if id <= 0 || id > task.MaxID {
		return NewInvalidArgument("Id %d is out of range. Valid ids are 1..%d.", id, task.MaxID)
	}
	return nil
}

func writeError(err error, op string, id int64) error {
	switch {
	case errors.Is(err, repo.ErrVersionConflict):
		return NewConcurrencyConflict(err, "Todo task with id %d was modified concurrently. Reload it and try again.", id)
	case errors.Is(err, repo.ErrNotFound):
		return NewNotFound("Todo task with id %d does not exist.", id)
	default:
		return NewWriteFailure(err, "Failed to %s todo task.", op)
	}
}
