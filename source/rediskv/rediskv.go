package rediskv

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/lazykit/errors"
	"github.com/kbukum/lazykit/lazy"
	"github.com/kbukum/lazykit/logger"
	"github.com/kbukum/lazykit/maybe"
	"github.com/kbukum/lazykit/task"
)

const sourceName = "redis"

// Getter is the part of the go-redis API used for lookups. It is satisfied
// by *redis.Client, *redis.ClusterClient and redis.UniversalClient.
type Getter interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
}

// Lookup starts a GET for key. A missing key completes the task with None.
// Any other failure completes it with None and a SOURCE_FAILED error.
func Lookup(ctx context.Context, client Getter, key string) *task.Task[string] {
	if maybe.IsNil(client) {
		return failed[string](errors.NullArgument("client"))
	}
	return task.Go(ctx, func(ctx context.Context) (maybe.Maybe[string], error) {
		return get(ctx, client, key)
	})
}

// Get returns a pipeline over the value stored at key.
func Get(ctx context.Context, client Getter, key string) *lazy.Maybe[string] {
	return Lookup(ctx, client, key).Lazy()
}

// GetJSON returns a pipeline over the JSON document stored at key.
func GetJSON[T any](ctx context.Context, client Getter, key string) *lazy.Maybe[T] {
	return lookupJSON[T](ctx, client, key).Lazy()
}

func lookupJSON[T any](ctx context.Context, client Getter, key string) *task.Task[T] {
	if maybe.IsNil(client) {
		return failed[T](errors.NullArgument("client"))
	}
	return task.Go(ctx, func(ctx context.Context) (maybe.Maybe[T], error) {
		raw, err := get(ctx, client, key)
		if err != nil {
			return maybe.None[T](), err
		}
		s, ok := raw.Get()
		if !ok {
			return maybe.None[T](), nil
		}
		var v T
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			return maybe.None[T](), errors.SourceFailed(sourceName, fmt.Errorf("unmarshal %q: %w", key, err)).
				WithDetail(logger.FieldKey, key)
		}
		return maybe.Of(v), nil
	})
}

func get(ctx context.Context, client Getter, key string) (maybe.Maybe[string], error) {
	v, err := client.Get(ctx, key).Result()
	if stderrors.Is(err, goredis.Nil) {
		return maybe.None[string](), nil
	}
	if err != nil {
		logger.Get("rediskv").WithContext(ctx).Warn("lookup failed", logger.Fields(
			logger.FieldSource, sourceName,
			logger.FieldKey, key,
			logger.FieldError, err.Error(),
		))
		return maybe.None[string](), errors.SourceFailed(sourceName, err).WithDetail(logger.FieldKey, key)
	}
	return maybe.Of(v), nil
}

func failed[T any](err error) *task.Task[T] {
	t := task.New[T]()
	_ = t.Fail(err)
	return t
}

// Store reads and writes JSON documents of type T under a key prefix.
type Store[T any] struct {
	client    goredis.Cmdable
	keyPrefix string
}

// NewStore creates a Store. Keys are written as "<keyPrefix>:<key>" unless
// keyPrefix is empty.
func NewStore[T any](client goredis.Cmdable, keyPrefix string) *Store[T] {
	return &Store[T]{client: client, keyPrefix: keyPrefix}
}

func (s *Store[T]) fullKey(key string) string {
	if s.keyPrefix == "" {
		return key
	}
	return s.keyPrefix + ":" + key
}

// Load returns a pipeline over the document stored at key.
func (s *Store[T]) Load(ctx context.Context, key string) *lazy.Maybe[T] {
	return s.LoadTask(ctx, key).Lazy()
}

// LoadTask is Load exposing the underlying task, so callers can inspect Err.
func (s *Store[T]) LoadTask(ctx context.Context, key string) *task.Task[T] {
	return lookupJSON[T](ctx, s.client, s.fullKey(key))
}

// Save serializes val to JSON and stores it with ttl. A ttl of 0 means no expiration.
func (s *Store[T]) Save(ctx context.Context, key string, val T, ttl time.Duration) error {
	data, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("store marshal %q: %w", key, err)
	}
	if err := s.client.Set(ctx, s.fullKey(key), data, ttl).Err(); err != nil {
		return errors.SourceFailed(sourceName, fmt.Errorf("store save %q: %w", key, err))
	}
	return nil
}

// Delete removes key.
func (s *Store[T]) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.fullKey(key)).Err(); err != nil {
		return errors.SourceFailed(sourceName, fmt.Errorf("store delete %q: %w", key, err))
	}
	return nil
}
