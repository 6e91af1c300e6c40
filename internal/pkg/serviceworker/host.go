package serviceworker

import (
	"context"
	"errors"
	"fmt"
	"portrait-backend/internal/pkg/logger"
	"sync"
)

var (
	ErrHostClosed   = errors.New("service worker host is draining")
	ErrNotActivated = errors.New("service worker is not activated")
	ErrNoHandler    = errors.New("no handler registered for event")
)

// Host owns the lifecycle state and every outstanding task.
type Host struct {
	platform Platform
	handlers map[EventType]Handler

	mu      sync.Mutex
	state   State
	closed  bool
	pending map[*Task]struct{}
	wg      sync.WaitGroup
}

func NewHost(p Platform) *Host {
	return &Host{
		platform: p,
		handlers: DefaultHandlers(),
		state:    Installing,
		pending:  make(map[*Task]struct{}),
	}
}

// Handle replaces the handler for t.
func (h *Host) Handle(t EventType, fn Handler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers[t] = fn
}

func (h *Host) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (h *Host) setState(s State) {
	h.mu.Lock()
	h.state = s
	h.mu.Unlock()
	logger.Info.Printf("service worker state: %s", s)
}

// Start runs install then activate, waiting for each to settle. A failed
// step leaves the worker redundant.
func (h *Host) Start(ctx context.Context) error {
	h.setState(Installing)
	if err := h.run(ctx, &Event{Type: EventInstall}); err != nil {
		h.setState(Redundant)
		return fmt.Errorf("install: %w", err)
	}
	h.setState(Installed)

	h.setState(Activating)
	if err := h.run(ctx, &Event{Type: EventActivate}); err != nil {
		h.setState(Redundant)
		return fmt.Errorf("activate: %w", err)
	}
	h.setState(Activated)

	return nil
}

func (h *Host) run(ctx context.Context, ev *Event) error {
	task, err := h.dispatch(ctx, ev)
	if err != nil {
		return err
	}
	return task.Wait(ctx)
}

// Dispatch hands a push or notificationclick event to its handler and
// tracks the returned task. It does not wait for the task.
func (h *Host) Dispatch(ctx context.Context, ev *Event) (*Task, error) {
	if ev.Type.functional() && h.State() != Activated {
		return nil, ErrNotActivated
	}
	return h.dispatch(ctx, ev)
}

func (h *Host) dispatch(ctx context.Context, ev *Event) (*Task, error) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, ErrHostClosed
	}
	fn, ok := h.handlers[ev.Type]
	if !ok {
		h.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrNoHandler, ev.Type)
	}
	h.wg.Add(1)
	h.mu.Unlock()

	task := h.invoke(ctx, fn, ev)
	h.track(task)

	return task, nil
}

func (h *Host) invoke(ctx context.Context, fn Handler, ev *Event) (task *Task) {
	defer func() {
		if r := recover(); r != nil {
			task = Resolved(string(ev.Type), fmt.Errorf("%s handler panic: %v", ev.Type, r))
		}
	}()

	task = fn(ctx, ev, h.platform)
	if task == nil {
		task = Resolved(string(ev.Type), nil)
	}
	return task
}

func (h *Host) track(task *Task) {
	h.mu.Lock()
	h.pending[task] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-task.Done()
		h.mu.Lock()
		delete(h.pending, task)
		h.mu.Unlock()
		h.wg.Done()
	}()
}

// Pending reports the number of unsettled tasks.
func (h *Host) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pending)
}

// Drain stops accepting events and waits for every outstanding task, or
// until ctx ends.
func (h *Host) Drain(ctx context.Context) error {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain aborted with %d pending tasks: %w", h.Pending(), ctx.Err())
	}
}
