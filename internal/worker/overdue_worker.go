package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"todoTracker/internal/logger"
	"todoTracker/internal/models/task"
	repo "todoTracker/internal/repository"

	"go.uber.org/zap"
)

const (
	DefaultInterval    = 2 * time.Minute
	DefaultBatchSize   = 100
	DefaultTickTimeout = 30 * time.Second
)

// Repository то, что нужно воркеру от хранилища
type Repository interface {
	GetOverdueCandidates(ctx context.Context, today task.Date, limit int) ([]*task.Task, error)
	MarkOverdue(ctx context.Context, t *task.Task) error
}

type Invalidator interface {
	Invalidate()
}

type OverdueWorker struct {
	repo        Repository
	cache       Invalidator
	interval    time.Duration
	batchSize   int
	tickTimeout time.Duration
	now         func() time.Time
}

type Option func(*OverdueWorker)

func WithInterval(interval time.Duration) Option {
	return func(w *OverdueWorker) {
		if interval > 0 {
			w.interval = interval
		}
	}
}

func WithBatchSize(batchSize int) Option {
	return func(w *OverdueWorker) {
		if batchSize > 0 {
			w.batchSize = batchSize
		}
	}
}

func WithTickTimeout(timeout time.Duration) Option {
	return func(w *OverdueWorker) {
		if timeout > 0 {
			w.tickTimeout = timeout
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(w *OverdueWorker) {
		if now != nil {
			w.now = now
		}
	}
}

// NewOverdueWorker cache может быть nil, тогда список не сбрасывается
func NewOverdueWorker(repo Repository, cache Invalidator, opts ...Option) *OverdueWorker {
	w := &OverdueWorker{
		repo:        repo,
		cache:       cache,
		interval:    DefaultInterval,
		batchSize:   DefaultBatchSize,
		tickTimeout: DefaultTickTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start делает проход сразу и затем раз в interval, пока ctx не отменён
func (w *OverdueWorker) Start(ctx context.Context) {
	logger.Info("Worker: Фоновая проверка запущена",
		zap.Duration("interval", w.interval),
		zap.Int("batch_size", w.batchSize))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		// отмена имеет приоритет над очередным тиком
		if ctx.Err() != nil {
			logger.Info("Worker: Фоновая проверка останавливается")
			return
		}

		logger.Info("Worker: Фоновая проверка задач на просроченность", zap.Time("started_at", w.now()))
		if _, err := w.Check(ctx); err != nil {
			logger.Warn("Worker: Проход завершился с ошибкой", zap.Error(err))
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			logger.Info("Worker: Фоновая проверка останавливается")
			return
		}
	}
}

// Check один проход: помечает просроченными невыполненные задачи с прошедшим сроком.
// Кандидаты читаются страницами по batchSize, пока страница не окажется неполной.
// Конфликты версий и ошибки по отдельным задачам пропускаются до следующего прохода.
func (w *OverdueWorker) Check(ctx context.Context) (int, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, w.tickTimeout)
	defer cancel()

	today := task.Today(w.now())
	overdueCount, skipped, checked, pages := 0, 0, 0, 0

	for ctx.Err() == nil {
		tasks, err := w.repo.GetOverdueCandidates(ctx, today, w.batchSize)
		if err != nil {
			if overdueCount > 0 && w.cache != nil {
				w.cache.Invalidate()
			}
			return overdueCount, fmt.Errorf("получение кандидатов на просрочку: %w", err)
		}
		pages++
		checked += len(tasks)

		flipped, failed := w.markPage(ctx, tasks, today)
		overdueCount += flipped
		skipped += failed

		// неполная страница последняя; страница без изменений означает,
		// что остались только пропущенные задачи
		if len(tasks) < w.batchSize || flipped == 0 {
			break
		}
	}

	if overdueCount > 0 && w.cache != nil {
		w.cache.Invalidate()
	}

	logger.Info(
		"Worker: Завершение проверки задач",
		zap.Duration("ms", time.Since(start)),
		zap.Int("pages", pages),
		zap.Int("checked", checked),
		zap.Int("overdue", overdueCount),
		zap.Int("skipped", skipped),
	)
	return overdueCount, nil
}

func (w *OverdueWorker) markPage(ctx context.Context, tasks []*task.Task, today task.Date) (flipped, skipped int) {
	for _, t := range tasks {
		if ctx.Err() != nil {
			return flipped, skipped
		}

		if !task.IsOverdue(t, today) {
			continue
		}
		if err := w.markAsOverdue(ctx, t); err != nil {
			skipped++
			if errors.Is(err, repo.ErrVersionConflict) {
				logger.Info("Worker: Задача изменилась во время проверки, повтор на следующем проходе",
					logger.TaskID(t.ID))
				continue
			}
			logger.Warn("Worker: Ошибка обновления задачи", logger.TaskID(t.ID), zap.Error(err))
			continue
		}
		flipped++
	}
	return flipped, skipped
}

func (w *OverdueWorker) markAsOverdue(ctx context.Context, t *task.Task) error {
	if err := w.repo.MarkOverdue(ctx, t); err != nil {
		return fmt.Errorf("пометка просрочки: %w", err)
	}
	return nil
}
