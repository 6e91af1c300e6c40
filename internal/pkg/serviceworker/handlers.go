package serviceworker

import (
	"context"
	"fmt"
	"portrait-backend/internal/pkg/logger"

	"github.com/samber/lo"
)

// Handler reacts to one event. The returned task extends the worker's
// lifetime until it settles.
type Handler func(ctx context.Context, ev *Event, p Platform) *Task

// OnInstall activates the new worker without waiting for old pages to close.
func OnInstall(ctx context.Context, _ *Event, p Platform) *Task {
	return NewTask(ctx, string(EventInstall), func(ctx context.Context) error {
		return p.SkipWaiting(ctx)
	})
}

// OnActivate takes control of pages loaded under a previous worker.
func OnActivate(ctx context.Context, _ *Event, p Platform) *Task {
	return NewTask(ctx, string(EventActivate), func(ctx context.Context) error {
		return p.ClaimClients(ctx)
	})
}

func OnPush(ctx context.Context, ev *Event, p Platform) *Task {
	payload := ParsePayload(ev.Data)

	return NewTask(ctx, string(EventPush), func(ctx context.Context) error {
		return p.ShowNotification(ctx, payload.Title, payload.Options())
	})
}

// OnNotificationClick closes the notification, then focuses the focused
// window, else the first window, else opens one at the notification url.
func OnNotificationClick(ctx context.Context, ev *Event, p Platform) *Task {
	n := ev.Notification
	url := DefaultURL
	if n != nil && n.Options.Data.URL != "" {
		url = n.Options.Data.URL
	}

	return NewTask(ctx, string(EventNotificationClick), func(ctx context.Context) error {
		if n != nil {
			if err := p.CloseNotification(ctx, n.ID); err != nil {
				logger.Warning.Printf("failed to close notification %s: %v", n.ID, err)
			}
		}

		clients, err := p.ListClients(ctx, ClientQuery{Type: WindowClient, IncludeUncontrolled: true})
		if err != nil {
			return fmt.Errorf("list clients: %w", err)
		}

		if focused, ok := lo.Find(clients, func(c Client) bool { return c.Focused }); ok {
			return wrap("focus client", p.FocusClient(ctx, focused.ID))
		}
		if len(clients) > 0 {
			return wrap("focus client", p.FocusClient(ctx, clients[0].ID))
		}
		return wrap("open window", p.OpenWindow(ctx, url))
	})
}

func wrap(action string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", action, err)
}

// DefaultHandlers is the handler table used by NewHost.
func DefaultHandlers() map[EventType]Handler {
	return map[EventType]Handler{
		EventInstall:           OnInstall,
		EventActivate:          OnActivate,
		EventPush:              OnPush,
		EventNotificationClick: OnNotificationClick,
	}
}
