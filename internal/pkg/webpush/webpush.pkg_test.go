package webpush

import (
	"context"
	"encoding/json"
	"errors"
	"portrait-backend/internal/common/enum"
	"portrait-backend/internal/pkg/rabbitmq"
	"portrait-backend/internal/pkg/serviceworker"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	mu      sync.Mutex
	hashes  map[string]map[string]string
	expires map[string]time.Duration
	hgetErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		hashes:  make(map[string]map[string]string),
		expires: make(map[string]time.Duration),
	}
}

func (f *fakeRedis) Set(string, any, time.Duration) error { return nil }
func (f *fakeRedis) Get(string) (string, error)           { return "", nil }
func (f *fakeRedis) Del(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.hashes, key)
	return nil
}
func (f *fakeRedis) Incr(string) (int64, error) { return 0, nil }
func (f *fakeRedis) Close() error               { return nil }
func (f *fakeRedis) Ping(context.Context) error { return nil }

func (f *fakeRedis) Expire(key string, d time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expires[key] = d
	return nil
}

func (f *fakeRedis) HSet(key, field string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hashes[key] == nil {
		f.hashes[key] = make(map[string]string)
	}
	f.hashes[key][field] = string(raw)
	return nil
}

func (f *fakeRedis) HGetAll(key string) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hgetErr != nil {
		return nil, f.hgetErr
	}
	out := make(map[string]string, len(f.hashes[key]))
	for k, v := range f.hashes[key] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeRedis) HDel(key string, fields ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, field := range fields {
		delete(f.hashes[key], field)
	}
	return nil
}

type fakePublisher struct {
	mu      sync.Mutex
	queues  []string
	effects []Effect
	err     error
}

func (f *fakePublisher) Publish(_ context.Context, queue string, payload any, _ ...amqp.Table) (*rabbitmq.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queues = append(f.queues, queue)
	f.effects = append(f.effects, payload.(Effect))
	return rabbitmq.NewMessage(payload, nil)
}

func newTestPlatform(now time.Time) (*Platform, *fakeRedis, *fakePublisher) {
	rds := newFakeRedis()
	pub := &fakePublisher{}
	p := NewPlatform(rds, pub, &Config{ClientTTL: time.Minute})
	p.now = func() time.Time { return now }
	return p, rds, pub
}

func TestRegisterClient_FocusMovesBetweenClients(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p, rds, _ := newTestPlatform(now)
	ctx := context.Background()

	require.NoError(t, p.RegisterClient(ctx, ClientRecord{ID: "a", URL: "/", Focused: true}))
	require.NoError(t, p.RegisterClient(ctx, ClientRecord{ID: "b", URL: "/gallery", Focused: true}))

	clients, err := p.ListClients(ctx, serviceworker.ClientQuery{Type: serviceworker.WindowClient, IncludeUncontrolled: true})
	require.NoError(t, err)
	require.Len(t, clients, 2)

	byID := map[string]serviceworker.Client{}
	for _, c := range clients {
		byID[c.ID] = c
	}
	assert.False(t, byID["a"].Focused)
	assert.True(t, byID["b"].Focused)
	assert.Equal(t, time.Minute, rds.expires[clientsKey])
}

func TestRegisterClient_RequiresID(t *testing.T) {
	p, _, _ := newTestPlatform(time.Now())

	assert.Error(t, p.RegisterClient(context.Background(), ClientRecord{}))
}

func TestListClients_ControlledFilterAndOrder(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p, _, _ := newTestPlatform(now)
	ctx := context.Background()

	require.NoError(t, p.RegisterClient(ctx, ClientRecord{ID: "old", Controlled: true}))
	p.now = func() time.Time { return now.Add(10 * time.Second) }
	require.NoError(t, p.RegisterClient(ctx, ClientRecord{ID: "new", Controlled: true}))
	require.NoError(t, p.RegisterClient(ctx, ClientRecord{ID: "free"}))

	controlled, err := p.ListClients(ctx, serviceworker.ClientQuery{Type: serviceworker.WindowClient})
	require.NoError(t, err)
	require.Len(t, controlled, 2)
	assert.Equal(t, "new", controlled[0].ID)
	assert.Equal(t, "old", controlled[1].ID)

	all, err := p.ListClients(ctx, serviceworker.ClientQuery{Type: serviceworker.WindowClient, IncludeUncontrolled: true})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListClients_PrunesStaleClients(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p, rds, _ := newTestPlatform(now)
	ctx := context.Background()

	require.NoError(t, p.RegisterClient(ctx, ClientRecord{ID: "stale"}))
	p.now = func() time.Time { return now.Add(2 * time.Minute) }
	require.NoError(t, p.RegisterClient(ctx, ClientRecord{ID: "live"}))

	clients, err := p.ListClients(ctx, serviceworker.ClientQuery{IncludeUncontrolled: true})
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "live", clients[0].ID)
	assert.NotContains(t, rds.hashes[clientsKey], "stale")
}

func TestListClients_RegistryFailure(t *testing.T) {
	p, rds, _ := newTestPlatform(time.Now())
	rds.hgetErr = errors.New("connection refused")

	_, err := p.ListClients(context.Background(), serviceworker.ClientQuery{})
	assert.ErrorContains(t, err, "connection refused")
}

func TestClaimClients_MarksControlled(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p, _, pub := newTestPlatform(now)
	ctx := context.Background()
	require.NoError(t, p.RegisterClient(ctx, ClientRecord{ID: "a"}))

	require.NoError(t, p.ClaimClients(ctx))

	clients, err := p.ListClients(ctx, serviceworker.ClientQuery{})
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.True(t, clients[0].Controlled)
	require.Len(t, pub.effects, 1)
	assert.Equal(t, enum.CLAIM_CLIENTS, pub.effects[0].Type)
}

func TestShowNotification_PublishesEffect(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p, _, pub := newTestPlatform(now)

	opts := serviceworker.NotificationOptions{Body: "b", Icon: serviceworker.IconPath, Data: serviceworker.NotificationData{URL: "/x"}}
	require.NoError(t, p.ShowNotification(context.Background(), "Title", opts))

	require.Len(t, pub.effects, 1)
	assert.Equal(t, []string{EffectsQueue}, pub.queues)
	effect := pub.effects[0]
	assert.Equal(t, enum.SHOW_NOTIFICATION, effect.Type)
	assert.Equal(t, "Title", effect.Title)
	assert.NotEmpty(t, effect.NotificationID)
	require.NotNil(t, effect.Options)
	assert.Equal(t, "/x", effect.Options.Data.URL)
	assert.Equal(t, now, effect.At)
}

func TestFocusClient(t *testing.T) {
	p, _, pub := newTestPlatform(time.Now())
	ctx := context.Background()
	require.NoError(t, p.RegisterClient(ctx, ClientRecord{ID: "a", Focused: true}))
	require.NoError(t, p.RegisterClient(ctx, ClientRecord{ID: "b"}))

	require.NoError(t, p.FocusClient(ctx, "b"))

	clients, err := p.ListClients(ctx, serviceworker.ClientQuery{IncludeUncontrolled: true})
	require.NoError(t, err)
	for _, c := range clients {
		assert.Equal(t, c.ID == "b", c.Focused, c.ID)
	}
	require.Len(t, pub.effects, 1)
	assert.Equal(t, enum.FOCUS_CLIENT, pub.effects[0].Type)
	assert.Equal(t, "b", pub.effects[0].ClientID)

	assert.ErrorIs(t, p.FocusClient(ctx, "missing"), ErrUnknownClient)
}

func TestEmit_PublishFailure(t *testing.T) {
	p, _, pub := newTestPlatform(time.Now())
	pub.err = errors.New("channel closed")

	err := p.OpenWindow(context.Background(), "/")
	assert.ErrorContains(t, err, "open_window")
	assert.ErrorContains(t, err, "channel closed")
}
