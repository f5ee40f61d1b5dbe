package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"todoTracker/internal/logger"
	"todoTracker/internal/models/task"

	"go.uber.org/zap"
)

const DefaultTTL = 60 * time.Second

// Loader загружает полный список задач при промахе
type Loader func(ctx context.Context) ([]*task.Task, error)

// ListCache держит одну запись со списком всех задач.
// Каждое попадание сдвигает срок жизни записи на ttl вперёд.
type ListCache struct {
	mtx   sync.Mutex
	entry *entry
	ttl   time.Duration
	now   func() time.Time
	stats stats
}

type entry struct {
	tasks     []*task.Task
	expiresAt time.Time
}

type stats struct {
	hits          atomic.Uint64
	misses        atomic.Uint64
	loadErrors    atomic.Uint64
	invalidations atomic.Uint64
}

// Stats снимок счётчиков кэша
type Stats struct {
	Hits          uint64  `json:"hits"`
	Misses        uint64  `json:"misses"`
	LoadErrors    uint64  `json:"loadErrors"`
	Invalidations uint64  `json:"invalidations"`
	HitRate       float64 `json:"hitRate"`
}

type Option func(*ListCache)

func WithClock(now func() time.Time) Option {
	return func(c *ListCache) {
		if now != nil {
			c.now = now
		}
	}
}

func New(ttl time.Duration, opts ...Option) *ListCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &ListCache{
		ttl: ttl,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrLoad отдаёт копию закэшированного списка или вызывает loader.
// Ошибка loader не кэшируется. Загрузка идёт под мьютексом:
// Invalidate не может вклиниться между чтением хранилища и записью в кэш.
func (c *ListCache) GetOrLoad(ctx context.Context, load Loader) ([]*task.Task, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	now := c.now()
	if c.entry != nil && now.Before(c.entry.expiresAt) {
		c.entry.expiresAt = now.Add(c.ttl)
		c.stats.hits.Add(1)
		logger.Debug("Cache: Попадание в кэш списка задач", zap.Int("count", len(c.entry.tasks)))
		return task.CloneAll(c.entry.tasks), nil
	}

	c.stats.misses.Add(1)
	c.entry = nil

	tasks, err := load(ctx)
	if err != nil {
		c.stats.loadErrors.Add(1)
		return nil, err
	}

	c.entry = &entry{
		tasks:     task.CloneAll(tasks),
		expiresAt: now.Add(c.ttl),
	}
	logger.Debug("Cache: Список задач загружен в кэш", zap.Int("count", len(tasks)))
	return task.CloneAll(tasks), nil
}

// Invalidate удаляет запись независимо от её срока жизни
func (c *ListCache) Invalidate() {
	c.mtx.Lock()
	c.entry = nil
	c.mtx.Unlock()

	c.stats.invalidations.Add(1)
	logger.Debug("Cache: Кэш списка задач сброшен")
}

func (c *ListCache) Stats() Stats {
	hits := c.stats.hits.Load()
	misses := c.stats.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	return Stats{
		Hits:          hits,
		Misses:        misses,
		LoadErrors:    c.stats.loadErrors.Load(),
		Invalidations: c.stats.invalidations.Load(),
		HitRate:       hitRate,
	}
}
