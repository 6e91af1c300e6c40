package serviceworker

import (
	"context"
	"fmt"
	"portrait-backend/internal/pkg/logger"
)

// Task is the pending result of a handler. It settles exactly once.
type Task struct {
	name string
	done chan struct{}
	err  error
}

// NewTask runs fn in its own goroutine. A panic in fn settles the task with
// an error, and a failure is logged with the task name.
func NewTask(ctx context.Context, name string, fn func(ctx context.Context) error) *Task {
	t := &Task{
		name: name,
		done: make(chan struct{}),
	}

	go func() {
		defer close(t.done)
		defer func() {
			if r := recover(); r != nil {
				t.err = fmt.Errorf("%s handler panic: %v", name, r)
			}
			if t.err != nil {
				logger.With("event", name).Error("service worker task failed", "error", t.err)
			}
		}()
		t.err = fn(ctx)
	}()

	return t
}

// Resolved returns an already settled task.
func Resolved(name string, err error) *Task {
	t := &Task{
		name: name,
		done: make(chan struct{}),
		err:  err,
	}
	close(t.done)
	return t
}

func (t *Task) Name() string {
	return t.name
}

func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Err is nil until the task settles.
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Wait blocks until the task settles or ctx ends.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
