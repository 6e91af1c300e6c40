package rabbitmq

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"portrait-backend/internal/pkg/logger"
	"strconv"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	minRedialInterval = 2 * time.Second
	maxRedialInterval = 30 * time.Second
)

// ConnectionManager owns the broker connection and redials it after the
// broker closes it. Channel managers fetch the current connection on demand.
type ConnectionManager struct {
	mu        sync.Mutex
	conn      *amqp.Connection
	url       string
	connected bool
	ctx       context.Context
	cancel    context.CancelFunc
}

// QueueConfig mirrors the arguments of QueueDeclare.
type QueueConfig struct {
	Durable    bool
	AutoDelete bool
	Exclusive  bool
	NoWait     bool
	Args       amqp.Table
}

// DefaultQueueConfig declares durable, shared queues. The push and booking
// queues must survive a broker restart.
func DefaultQueueConfig() *QueueConfig {
	return &QueueConfig{Durable: true}
}

type Config struct {
	Username string
	Password string
	Host     string
	Port     int
	VHost    string
	URI      string
}

func (c *Config) dialURL() string {
	if c.URI != "" {
		return c.URI
	}
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(c.Username, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.VHost,
	}
	return u.String()
}

func NewConnectionManager(ctx context.Context, config *Config) (*ConnectionManager, error) {
	ctx, cancel := context.WithCancel(ctx)

	cm := &ConnectionManager{
		url:    config.dialURL(),
		ctx:    ctx,
		cancel: cancel,
	}

	if err := cm.dial(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create connection: %w", err)
	}

	return cm, nil
}

func (cm *ConnectionManager) dial() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.connected {
		return nil
	}
	if err := cm.ctx.Err(); err != nil {
		return err
	}

	conn, err := amqp.Dial(cm.url)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	cm.conn = conn
	cm.connected = true

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	go cm.watch(closed)

	return nil
}

// watch waits for the connection to drop and redials with a doubling
// interval until it succeeds or the manager is closed.
func (cm *ConnectionManager) watch(closed <-chan *amqp.Error) {
	select {
	case <-cm.ctx.Done():
		return
	case reason := <-closed:
		if cm.ctx.Err() != nil {
			return
		}
		cm.mu.Lock()
		cm.connected = false
		cm.mu.Unlock()
		logger.With("reason", reason).Warn("rabbitmq connection lost")
	}

	interval := minRedialInterval
	for attempt := 1; ; attempt++ {
		timer := time.NewTimer(interval)
		select {
		case <-cm.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if err := cm.dial(); err != nil {
			logger.With("attempt", attempt, "retry_in", interval.String()).
				Warn("rabbitmq redial failed", "error", err)
			interval = min(interval*2, maxRedialInterval)
			continue
		}

		logger.With("attempt", attempt).Info("rabbitmq reconnected")
		return
	}
}

func (cm *ConnectionManager) GetConnection() *amqp.Connection {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.ctx.Err() != nil {
		return nil
	}
	return cm.conn
}

func (cm *ConnectionManager) Close() error {
	cm.cancel()

	cm.mu.Lock()
	defer cm.mu.Unlock()

	cm.connected = false
	if cm.conn == nil {
		return nil
	}

	err := cm.conn.Close()
	cm.conn = nil
	if err != nil && err != amqp.ErrClosed {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	return nil
}

func (cm *ConnectionManager) IsClosed() bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.ctx.Err() != nil || !cm.connected
}
