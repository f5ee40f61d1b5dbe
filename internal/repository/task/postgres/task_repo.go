package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"todoTracker/internal/logger"
	"todoTracker/internal/models/task"
	repo "todoTracker/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const slowQuery = 100 * time.Millisecond

const taskColumns = `id, name, description, status, created_at, updated_at,
				priority, category, due_date, is_overdue, version`

type Storage struct {
	pool       *pgxpool.Pool
	connString string
}

type PoolOption func(*pgxpool.Config)

func WithMaxConns(n int32) PoolOption {
	return func(c *pgxpool.Config) {
		if n > 0 {
			c.MaxConns = n
		}
	}
}

func WithMinConns(n int32) PoolOption {
	return func(c *pgxpool.Config) {
		if n > 0 {
			c.MinConns = n
		}
	}
}

func WithIdleTimeout(d time.Duration) PoolOption {
	return func(c *pgxpool.Config) {
		if d > 0 {
			c.MaxConnIdleTime = d
		}
	}
}

func New(ctx context.Context, connString string, opts ...PoolOption) (*Storage, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		logger.Error("Repository: Ошибка загрузки конфига", err)
		return nil, fmt.Errorf("загрузка конфига: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnIdleTime = time.Minute * 5
	for _, opt := range opts {
		opt(config)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		logger.Error("Repository: Ошибка создания пула", err)
		return nil, fmt.Errorf("создание пула: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Repository: Успешное создание подключения к PostgreSQL")
	return &Storage{pool: pool, connString: connString}, nil
}

func (s *Storage) Close() {
	if s.pool == nil {
		return
	}
	s.pool.Close()
	logger.Info("Repository: Закрытие всех соединений PostgreSQL")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

func (s *Storage) Create(ctx context.Context, taskToCreate *task.Task) error {
	start := time.Now()

	query := `INSERT INTO tasks
				(name, description, status, created_at, updated_at, priority, category, due_date, is_overdue, version)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1)
				RETURNING id, version`

	err := s.pool.QueryRow(ctx, query,
		taskToCreate.Name,
		taskToCreate.Description,
		taskToCreate.Status,
		taskToCreate.CreatedAt.Time(),
		taskToCreate.UpdatedAt.Time(),
		string(taskToCreate.Priority),
		string(taskToCreate.Category),
		taskToCreate.DueDate.Time(),
		taskToCreate.IsOverdue,
	).Scan(&taskToCreate.ID, &taskToCreate.Version)

	if err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление задачи: %w", err)
	}

	logSlow(start)
	return nil
}

func (s *Storage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	start := time.Now()

	query := `UPDATE tasks
			SET name = $1,
				description = $2,
				status = $3,
				updated_at = $4,
				priority = $5,
				category = $6,
				due_date = $7,
				is_overdue = $8,
				version = version + 1
			WHERE id = $9 AND version = $10
			RETURNING version`

	err := s.pool.QueryRow(ctx, query,
		taskToUpdate.Name,
		taskToUpdate.Description,
		taskToUpdate.Status,
		taskToUpdate.UpdatedAt.Time(),
		string(taskToUpdate.Priority),
		string(taskToUpdate.Category),
		taskToUpdate.DueDate.Time(),
		taskToUpdate.IsOverdue,
		taskToUpdate.ID,
		taskToUpdate.Version,
	).Scan(&taskToUpdate.Version)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s.missOrConflict(ctx, taskToUpdate)
		}
		logger.Error("Repository: Не удалось обновить задачу", err)
		return fmt.Errorf("обновление задачи: %w", err)
	}

	logSlow(start)
	return nil
}

// MarkOverdue ставит флаг просрочки, не трогая остальные поля и updated_at
func (s *Storage) MarkOverdue(ctx context.Context, t *task.Task) error {
	start := time.Now()

	query := `UPDATE tasks
			SET is_overdue = TRUE,
				version = version + 1
			WHERE id = $1 AND version = $2 AND is_overdue = FALSE
			RETURNING version`

	err := s.pool.QueryRow(ctx, query, t.ID, t.Version).Scan(&t.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s.missOrConflict(ctx, t)
		}
		logger.Error("Repository: Не удалось пометить задачу просроченной", err)
		return fmt.Errorf("пометка просрочки: %w", err)
	}

	t.IsOverdue = true
	logSlow(start)
	return nil
}

// версионный UPDATE не нашёл строку: либо её нет, либо версия устарела
func (s *Storage) missOrConflict(ctx context.Context, t *task.Task) error {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tasks WHERE id = $1)`, t.ID).Scan(&exists)
	if err != nil {
		logger.Error("Repository: Не удалось проверить наличие задачи", err)
		return fmt.Errorf("проверка наличия задачи: %w", err)
	}
	if !exists {
		return repo.ErrNotFound
	}

	logger.Warn("Repository: Конфликт версий при обновлении задачи",
		logger.TaskID(t.ID),
		zap.Int("expected_version", t.Version))
	return repo.ErrVersionConflict
}

func (s *Storage) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	start := time.Now()

	query := `SELECT ` + taskColumns + `
				FROM tasks
				WHERE id = $1`

	t, err := scanTask(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	logSlow(start)
	return t, nil
}

func (s *Storage) Delete(ctx context.Context, id int64) error {
	start := time.Now()

	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		logger.Error("Repository: Удаление задачи", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("удаление задачи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	logSlow(start)
	return nil
}

func (s *Storage) GetAll(ctx context.Context) ([]*task.Task, error) {
	query := `SELECT ` + taskColumns + `
				FROM tasks
				ORDER BY id`

	return s.queryTasks(ctx, query)
}

func (s *Storage) GetOverdueCandidates(ctx context.Context, today task.Date, limit int) ([]*task.Task, error) {
	query := `SELECT ` + taskColumns + `
				FROM tasks
				WHERE status = FALSE
				  AND is_overdue = FALSE
				  AND due_date < $1
				ORDER BY id
				LIMIT $2`

	return s.queryTasks(ctx, query, today.Time(), limit)
}

func (s *Storage) queryTasks(ctx context.Context, query string, args ...any) ([]*task.Task, error) {
	start := time.Now()

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			logger.Error("Repository: Ошибка сканирования задачи", err)
			return nil, fmt.Errorf("сканирование задачи: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	logSlow(start)
	return tasks, nil
}

func scanTask(row pgx.Row) (*task.Task, error) {
	var (
		t                           task.Task
		priority, category          string
		createdAt, updatedAt, dueAt time.Time
	)

	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.Status,
		&createdAt,
		&updatedAt,
		&priority,
		&category,
		&dueAt,
		&t.IsOverdue,
		&t.Version,
	)
	if err != nil {
		return nil, err
	}

	t.Priority = task.Priority(priority)
	t.Category = task.Category(category)
	t.CreatedAt = task.DateOf(createdAt)
	t.UpdatedAt = task.DateOf(updatedAt)
	t.DueDate = task.DateOf(dueAt)
	return &t, nil
}

func logSlow(start time.Time) {
	if time.Since(start) > slowQuery {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
}
