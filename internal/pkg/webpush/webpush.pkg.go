package webpush

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"portrait-backend/internal/common/enum"
	"portrait-backend/internal/pkg/logger"
	"portrait-backend/internal/pkg/rabbitmq"
	"portrait-backend/internal/pkg/redis"
	"portrait-backend/internal/pkg/serviceworker"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	EffectsQueue = "push.effects"
	clientsKey   = "push:clients"
)

var ErrUnknownClient = errors.New("client is not registered")

// Effect is what the delivery gateway receives for every platform call.
type Effect struct {
	Type           enum.PushEffectEnum                `json:"type"`
	NotificationID string                             `json:"notification_id,omitempty"`
	Title          string                             `json:"title,omitempty"`
	Options        *serviceworker.NotificationOptions `json:"options,omitempty"`
	ClientID       string                             `json:"client_id,omitempty"`
	URL            string                             `json:"url,omitempty"`
	At             time.Time                          `json:"at"`
}

// ClientRecord is a registered window, refreshed by heartbeats.
type ClientRecord struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Focused    bool      `json:"focused"`
	Controlled bool      `json:"controlled"`
	SeenAt     time.Time `json:"seen_at"`
}

type Config struct {
	ClientTTL time.Duration
}

// Platform implements serviceworker.Platform with a Redis client registry
// and effects published to RabbitMQ.
type Platform struct {
	rds       redis.IRedis
	publisher rabbitmq.IPublisher
	clientTTL time.Duration
	now       func() time.Time
}

var _ serviceworker.Platform = (*Platform)(nil)

func NewPlatform(rds redis.IRedis, publisher rabbitmq.IPublisher, cfg *Config) *Platform {
	ttl := cfg.ClientTTL
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &Platform{
		rds:       rds,
		publisher: publisher,
		clientTTL: ttl,
		now:       time.Now,
	}
}

// RegisterClient stores or refreshes a window. A focused client unfocuses
// every other one.
func (p *Platform) RegisterClient(_ context.Context, rec ClientRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("client id is required")
	}

	existing, err := p.load()
	if err != nil {
		return err
	}
	if prev, ok := existing[rec.ID]; ok {
		rec.Controlled = rec.Controlled || prev.Controlled
	}
	rec.SeenAt = p.now()

	if rec.Focused {
		if err = p.unfocusOthers(existing, rec.ID); err != nil {
			return err
		}
	}

	if err = p.rds.HSet(clientsKey, rec.ID, rec); err != nil {
		return err
	}
	return p.rds.Expire(clientsKey, p.clientTTL)
}

func (p *Platform) SkipWaiting(ctx context.Context) error {
	return p.emit(ctx, Effect{Type: enum.SKIP_WAITING})
}

// ClaimClients marks every live registered client as controlled.
func (p *Platform) ClaimClients(ctx context.Context) error {
	records, err := p.load()
	if err != nil {
		return err
	}

	for id, rec := range records {
		if rec.Controlled {
			continue
		}
		rec.Controlled = true
		if err = p.rds.HSet(clientsKey, id, rec); err != nil {
			return err
		}
	}

	return p.emit(ctx, Effect{Type: enum.CLAIM_CLIENTS})
}

func (p *Platform) ShowNotification(ctx context.Context, title string, opts serviceworker.NotificationOptions) error {
	return p.emit(ctx, Effect{
		Type:           enum.SHOW_NOTIFICATION,
		NotificationID: uuid.NewString(),
		Title:          title,
		Options:        &opts,
	})
}

func (p *Platform) CloseNotification(ctx context.Context, id string) error {
	return p.emit(ctx, Effect{
		Type:           enum.CLOSE_NOTIFICATION,
		NotificationID: id,
	})
}

// ListClients returns live clients, most recently seen first.
func (p *Platform) ListClients(_ context.Context, q serviceworker.ClientQuery) ([]serviceworker.Client, error) {
	records, err := p.load()
	if err != nil {
		return nil, err
	}

	live := lo.Filter(lo.Values(records), func(rec ClientRecord, _ int) bool {
		return q.IncludeUncontrolled || rec.Controlled
	})
	sort.SliceStable(live, func(i, j int) bool {
		if live[i].SeenAt.Equal(live[j].SeenAt) {
			return live[i].ID < live[j].ID
		}
		return live[i].SeenAt.After(live[j].SeenAt)
	})

	return lo.Map(live, func(rec ClientRecord, _ int) serviceworker.Client {
		return serviceworker.Client{
			ID:         rec.ID,
			URL:        rec.URL,
			Type:       serviceworker.WindowClient,
			Focused:    rec.Focused,
			Controlled: rec.Controlled,
		}
	}), nil
}

func (p *Platform) FocusClient(ctx context.Context, id string) error {
	records, err := p.load()
	if err != nil {
		return err
	}

	rec, ok := records[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownClient, id)
	}

	rec.Focused = true
	if err = p.unfocusOthers(records, id); err != nil {
		return err
	}
	if err = p.rds.HSet(clientsKey, id, rec); err != nil {
		return err
	}

	return p.emit(ctx, Effect{Type: enum.FOCUS_CLIENT, ClientID: id})
}

func (p *Platform) OpenWindow(ctx context.Context, url string) error {
	return p.emit(ctx, Effect{Type: enum.OPEN_WINDOW, URL: url})
}

func (p *Platform) emit(ctx context.Context, effect Effect) error {
	effect.At = p.now()
	msg, err := p.publisher.Publish(ctx, EffectsQueue, effect)
	if err != nil {
		return fmt.Errorf("publish %s: %w", effect.Type, err)
	}
	if msg != nil {
		logger.Debug.Printf("push effect %s published as %s", effect.Type, msg.ID)
	}
	return nil
}

// load reads the registry and prunes clients that missed their heartbeat.
func (p *Platform) load() (map[string]ClientRecord, error) {
	raw, err := p.rds.HGetAll(clientsKey)
	if err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}

	cutoff := p.now().Add(-p.clientTTL)
	records := make(map[string]ClientRecord, len(raw))
	var stale []string

	for id, value := range raw {
		var rec ClientRecord
		if err = json.Unmarshal([]byte(value), &rec); err != nil || rec.SeenAt.Before(cutoff) {
			stale = append(stale, id)
			continue
		}
		records[id] = rec
	}

	if len(stale) > 0 {
		if err = p.rds.HDel(clientsKey, stale...); err != nil {
			logger.Warning.Printf("failed to prune push clients: %v", err)
		}
	}

	return records, nil
}

func (p *Platform) unfocusOthers(records map[string]ClientRecord, keep string) error {
	for id, rec := range records {
		if id == keep || !rec.Focused {
			continue
		}
		rec.Focused = false
		if err := p.rds.HSet(clientsKey, id, rec); err != nil {
			return err
		}
	}
	return nil
}
