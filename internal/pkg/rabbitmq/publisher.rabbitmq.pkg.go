package rabbitmq

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// IPublisher is what services depend on to enqueue work.
type IPublisher interface {
	Publish(ctx context.Context, queueName string, payload any, headers ...amqp.Table) (*Message, error)
}

type Publisher struct {
	channel  *ChannelManager
	mu       sync.Mutex
	declared map[string]bool
	opts     *QueueConfig
}

func NewPublisher(ctx context.Context, connManager *ConnectionManager) (*Publisher, error) {
	if connManager == nil {
		return nil, fmt.Errorf("connection manager is required")
	}

	return &Publisher{
		channel:  NewChannelManager(ctx, connManager),
		declared: make(map[string]bool),
		opts:     DefaultQueueConfig(),
	}, nil
}

// Publish declares queueName on first use and sends payload to it through
// the default exchange. It is a single attempt.
func (p *Publisher) Publish(ctx context.Context, queueName string, payload any, headers ...amqp.Table) (*Message, error) {
	var h *amqp.Table
	if len(headers) > 0 {
		h = &headers[0]
	}

	msg, err := NewMessage(payload, h)
	if err != nil {
		return nil, fmt.Errorf("failed to build message: %w", err)
	}

	ch, err := p.channel.GetChannel()
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}

	if err = p.declare(ch, queueName); err != nil {
		return nil, err
	}

	if err = ch.PublishWithContext(ctx, "", queueName, false, false, *msg.GeneratePayload()); err != nil {
		p.forget(queueName)
		return nil, fmt.Errorf("failed to publish to %s: %w", queueName, err)
	}

	return msg, nil
}

func (p *Publisher) declare(ch *amqp.Channel, queueName string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.declared[queueName] {
		return nil
	}

	_, err := ch.QueueDeclare(queueName, p.opts.Durable, p.opts.AutoDelete, p.opts.Exclusive, p.opts.NoWait, p.opts.Args)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	p.declared[queueName] = true
	return nil
}

// forget makes the next publish redeclare the queue.
func (p *Publisher) forget(queueName string) {
	p.mu.Lock()
	delete(p.declared, queueName)
	p.mu.Unlock()
}

func (p *Publisher) Close() error {
	return p.channel.Close()
}
