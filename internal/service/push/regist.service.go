package push

import (
	"context"
	types "portrait-backend/internal/common/type"
	"portrait-backend/internal/pkg/rabbitmq"
	"portrait-backend/internal/pkg/serviceworker"
	"portrait-backend/internal/pkg/webpush"
)

const (
	QueuePushMessages = "push.messages"
	QueuePushClicks   = "push.clicks"
)

// ClientRegistry records open windows for the push platform.
type ClientRegistry interface {
	RegisterClient(ctx context.Context, rec webpush.ClientRecord) error
}

type Service struct {
	ctx       context.Context
	publisher rabbitmq.IPublisher
	host      *serviceworker.Host
	registry  ClientRegistry
}

type IService interface {
	SendPush(ctx context.Context, req *SendPushRequest) *types.Response
	SendClick(ctx context.Context, req *ClickRequest) *types.Response
	RegisterClient(ctx context.Context, req *RegisterClientRequest) *types.Response
	ConsumePush(ctx context.Context, body []byte) error
	ConsumeClick(ctx context.Context, body []byte) error
}

// NewService wires the push ingress. ctx bounds the lifetime of tasks the
// host runs for consumed messages.
func NewService(ctx context.Context, publisher rabbitmq.IPublisher, host *serviceworker.Host, registry ClientRegistry) IService {
	return &Service{
		ctx:       ctx,
		publisher: publisher,
		host:      host,
		registry:  registry,
	}
}

// SendPushRequest is published as-is and becomes the push payload.
type SendPushRequest struct {
	Title string `json:"title,omitempty" binding:"max=120"`
	Body  string `json:"body,omitempty" binding:"max=500"`
	URL   string `json:"url,omitempty" binding:"omitempty,pushURL"`
}

type ClickRequest struct {
	NotificationID string    `json:"notification_id" binding:"required,max=64"`
	Data           ClickData `json:"data"`
}

type ClickData struct {
	URL string `json:"url,omitempty" binding:"omitempty,pushURL"`
}

type RegisterClientRequest struct {
	ClientID string `json:"client_id" binding:"required,max=128"`
	URL      string `json:"url" binding:"max=2048"`
	Focused  bool   `json:"focused"`
}
