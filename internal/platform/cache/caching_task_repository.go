// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"todo_backend/internal/feature/tasks/domain/entity"
	"todo_backend/internal/feature/tasks/usecase"
)

// CachingTaskRepository decorates a TaskRepository with Redis caching of
// list queries. It implements the decorator pattern, transparently adding
// caching without modifying the underlying repository. Single-row reads are
// not cached; every write invalidates the owning user's cached listings.
type CachingTaskRepository struct {
	inner     usecase.TaskRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// cachedList is the value stored per list query.
type cachedList struct {
	Tasks []entity.Task `json:"tasks"`
	Total int64         `json:"total"`
}

// NewCachingTaskRepository decorates a TaskRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "task_lists".
func NewCachingTaskRepository(rdb *redis.Client, ttl time.Duration, inner usecase.TaskRepository, namespace string) *CachingTaskRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "task_lists"
	}
	return &CachingTaskRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create inserts a task and invalidates the owner's cached listings.
func (c *CachingTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	if err := c.inner.Create(ctx, task); err != nil {
		return err
	}
	c.invalidateUser(ctx, task.UserID)
	return nil
}

// Find retrieves a page of tasks, checking cache first then falling back to
// the database.
func (c *CachingTaskRepository) Find(ctx context.Context, userID uint, filter usecase.Filter, page usecase.Page) ([]entity.Task, int64, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Find(ctx, userID, filter, page)
	}

	key := c.cacheKey(userID, filter, page)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out cachedList
		if err := json.Unmarshal(b, &out); err == nil {
			return out.Tasks, out.Total, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	tasks, total, err := c.inner.Find(ctx, userID, filter, page)
	if err != nil {
		return nil, 0, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(cachedList{Tasks: tasks, Total: total}); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return tasks, total, nil
}

// FindByIDAndUser is a single-row read and always goes to the database.
func (c *CachingTaskRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*entity.Task, error) {
	return c.inner.FindByIDAndUser(ctx, id, userID)
}

// UpdateByIDAndUser updates a task and invalidates the owner's cached listings.
func (c *CachingTaskRepository) UpdateByIDAndUser(ctx context.Context, id, userID uint, fields map[string]interface{}) (int64, error) {
	rows, err := c.inner.UpdateByIDAndUser(ctx, id, userID, fields)
	if err != nil {
		return rows, err
	}
	if rows > 0 {
		c.invalidateUser(ctx, userID)
	}
	return rows, nil
}

// DeleteByIDAndUser deletes a task and invalidates the owner's cached listings.
func (c *CachingTaskRepository) DeleteByIDAndUser(ctx context.Context, id, userID uint) (int64, error) {
	rows, err := c.inner.DeleteByIDAndUser(ctx, id, userID)
	if err != nil {
		return rows, err
	}
	if rows > 0 {
		c.invalidateUser(ctx, userID)
	}
	return rows, nil
}

// cacheKey generates a cache key for a specific list query.
// 所有者のユーザーIDが必ずキーに含まれるため、キャッシュ経由でも
// 他ユーザーのタスクが見えることはありません。
func (c *CachingTaskRepository) cacheKey(userID uint, filter usecase.Filter, page usecase.Page) string {
	return fmt.Sprintf("%s:%d:%s:%s:%d:%d",
		c.namespace,
		userID,
		safe(string(filter.Status)),
		safe(filter.Search),
		page.Page,
		page.Limit,
	)
}

// userKeyPrefix generates the invalidation prefix for a user's listings.
func (c *CachingTaskRepository) userKeyPrefix(userID uint) string {
	return fmt.Sprintf("%s:%d:", c.namespace, userID)
}

// invalidateUser removes all cached listings for a user. Best effort: a
// failed invalidation only means a stale read until the TTL expires.
func (c *CachingTaskRepository) invalidateUser(ctx context.Context, userID uint) {
	if c.rdb == nil {
		return
	}
	_ = c.deleteByPattern(ctx, c.userKeyPrefix(userID)+"*")
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingTaskRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
