package serviceworker

import "context"

// Platform is the host environment the handlers drive.
type Platform interface {
	SkipWaiting(ctx context.Context) error
	ClaimClients(ctx context.Context) error
	ShowNotification(ctx context.Context, title string, opts NotificationOptions) error
	CloseNotification(ctx context.Context, id string) error
	ListClients(ctx context.Context, q ClientQuery) ([]Client, error)
	FocusClient(ctx context.Context, id string) error
	OpenWindow(ctx context.Context, url string) error
}
