package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/lazykit/errors"
	"github.com/kbukum/lazykit/lazy"
	"github.com/kbukum/lazykit/logger"
	"github.com/kbukum/lazykit/maybe"
	"github.com/kbukum/lazykit/resilience"
)

// Task is a single-assignment producer of one maybe.Maybe[T]. It satisfies
// lazy.Future[T], so it can back a lazy pipeline.
type Task[T any] struct {
	id string

	mu     sync.Mutex
	done   bool
	result maybe.Maybe[T]
	err    error
	conts  []func()
	doneCh chan struct{}
}

// New creates an incomplete task.
func New[T any]() *Task[T] {
	return &Task[T]{
		id:     uuid.New().String(),
		doneCh: make(chan struct{}),
	}
}

// ID returns the task's correlation id.
func (t *Task[T]) ID() string { return t.id }

// Complete resolves the task with m and fires registered continuations in
// registration order on the calling goroutine. A second completion returns
// an INVALID_STATE error.
func (t *Task[T]) Complete(m maybe.Maybe[T]) error {
	return t.finish(m, nil)
}

// Fail resolves the task with None and records err.
func (t *Task[T]) Fail(err error) error {
	if err == nil {
		return errors.NullArgument("err")
	}
	return t.finish(maybe.None[T](), err)
}

func (t *Task[T]) finish(m maybe.Maybe[T], err error) error {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return errors.InvalidState("task already completed").WithDetail(logger.FieldTaskID, t.id)
	}
	t.done = true
	t.result = m
	t.err = err
	conts := t.conts
	t.conts = nil
	close(t.doneCh)
	t.mu.Unlock()

	if err != nil && !current().SilenceFailures {
		logger.Get("task").Warn("producer failed", logger.Fields(
			logger.FieldTaskID, t.id,
			logger.FieldError, err.Error(),
		))
	}
	for _, k := range conts {
		t.fire(k)
	}
	return nil
}

// fire runs one continuation. A panic is logged and does not stop the
// continuations registered after it.
func (t *Task[T]) fire(k func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Get("task").Error("continuation panicked", logger.Fields(
				logger.FieldTaskID, t.id,
				"panic", fmt.Sprint(r),
			))
		}
	}()
	k()
}

// IsReady reports whether the task has completed.
func (t *Task[T]) IsReady() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

// OnReady runs k after completion, or immediately if already complete.
func (t *Task[T]) OnReady(k func()) {
	if k == nil {
		return
	}
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		k()
		return
	}
	t.conts = append(t.conts, k)
	t.mu.Unlock()
}

// Result blocks until the task completes and returns its value.
func (t *Task[T]) Result() maybe.Maybe[T] {
	<-t.doneCh
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result
}

// Err returns the failure recorded by Fail, if any.
func (t *Task[T]) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Done is closed when the task completes.
func (t *Task[T]) Done() <-chan struct{} { return t.doneCh }

// Lazy returns a pipeline backed by the task.
func (t *Task[T]) Lazy() *lazy.Maybe[T] {
	p, _ := lazy.FromFuture[T](t)
	return p
}

// Go runs fn on a new goroutine and completes the returned task with its
// result. An error from fn, a panic, or a context cancelled before fn
// starts completes the task with None and records the error. Failed
// attempts are retried according to Config.Retry.
func Go[T any](ctx context.Context, fn func(context.Context) (maybe.Maybe[T], error)) *Task[T] {
	t := New[T]()
	if fn == nil {
		_ = t.Fail(errors.NullArgument("fn"))
		return t
	}
	cfg := current()
	go func() {
		if cfg.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()
		}
		defer func() {
			if r := recover(); r != nil {
				_ = t.Fail(fmt.Errorf("producer panicked: %v", r))
			}
		}()
		if err := ctx.Err(); err != nil {
			_ = t.Fail(err)
			return
		}
		m, err := attempt(logger.ContextWithTaskID(ctx, t.id), t.id, cfg.Retry, fn)
		if err != nil {
			_ = t.Fail(err)
			return
		}
		_ = t.Complete(m)
	}()
	return t
}

func attempt[T any](ctx context.Context, id string, p resilience.RetryPolicy, fn func(context.Context) (maybe.Maybe[T], error)) (maybe.Maybe[T], error) {
	if !p.Enabled() {
		return fn(ctx)
	}
	if p.OnRetry == nil {
		log := logger.Get("task")
		p.OnRetry = func(n int, err error, backoff time.Duration) {
			log.Debug("retrying producer", logger.Fields(
				logger.FieldTaskID, id,
				"attempt", n,
				"backoff", backoff.String(),
				logger.FieldError, err.Error(),
			))
		}
	}
	return resilience.Retry(ctx, p, fn)
}

// Run is Go followed by Lazy.
func Run[T any](ctx context.Context, fn func(context.Context) (maybe.Maybe[T], error)) *lazy.Maybe[T] {
	return Go(ctx, fn).Lazy()
}
