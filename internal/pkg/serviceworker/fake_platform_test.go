package serviceworker

import (
	"context"
	"sync"
)

type shownNotification struct {
	Title   string
	Options NotificationOptions
}

// fakePlatform records every call. Errors are injected per method.
type fakePlatform struct {
	mu sync.Mutex

	clients []Client

	skipErr  error
	claimErr error
	showErr  error
	closeErr error
	listErr  error
	focusErr error
	openErr  error

	skipped  int
	claimed  int
	shown    []shownNotification
	closed   []string
	queries  []ClientQuery
	focused  []string
	opened   []string
	block    chan struct{}
	blocking bool
}

func (f *fakePlatform) wait(ctx context.Context) error {
	if !f.blocking {
		return nil
	}
	select {
	case <-f.block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakePlatform) SkipWaiting(ctx context.Context) error {
	f.mu.Lock()
	f.skipped++
	f.mu.Unlock()
	return f.skipErr
}

func (f *fakePlatform) ClaimClients(ctx context.Context) error {
	f.mu.Lock()
	f.claimed++
	f.mu.Unlock()
	return f.claimErr
}

func (f *fakePlatform) ShowNotification(ctx context.Context, title string, opts NotificationOptions) error {
	if err := f.wait(ctx); err != nil {
		return err
	}
	f.mu.Lock()
	f.shown = append(f.shown, shownNotification{Title: title, Options: opts})
	f.mu.Unlock()
	return f.showErr
}

func (f *fakePlatform) CloseNotification(ctx context.Context, id string) error {
	f.mu.Lock()
	f.closed = append(f.closed, id)
	f.mu.Unlock()
	return f.closeErr
}

func (f *fakePlatform) ListClients(ctx context.Context, q ClientQuery) ([]Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]Client(nil), f.clients...), nil
}

func (f *fakePlatform) FocusClient(ctx context.Context, id string) error {
	f.mu.Lock()
	f.focused = append(f.focused, id)
	f.mu.Unlock()
	return f.focusErr
}

func (f *fakePlatform) OpenWindow(ctx context.Context, url string) error {
	f.mu.Lock()
	f.opened = append(f.opened, url)
	f.mu.Unlock()
	return f.openErr
}
