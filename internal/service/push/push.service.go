package push

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	types "portrait-backend/internal/common/type"
	"portrait-backend/internal/pkg/helper"
	"portrait-backend/internal/pkg/serviceworker"
	"portrait-backend/internal/pkg/webpush"
)

func (s *Service) SendPush(ctx context.Context, req *SendPushRequest) *types.Response {
	msg, err := s.publisher.Publish(ctx, QueuePushMessages, req)
	if err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "failed to enqueue push notification",
			Error:   err,
		})
	}

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusAccepted,
		Message: "push notification queued",
		Data:    map[string]string{"message_id": msg.ID},
	})
}

func (s *Service) SendClick(ctx context.Context, req *ClickRequest) *types.Response {
	msg, err := s.publisher.Publish(ctx, QueuePushClicks, req)
	if err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "failed to enqueue notification click",
			Error:   err,
		})
	}

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusAccepted,
		Message: "notification click queued",
		Data:    map[string]string{"message_id": msg.ID},
	})
}

func (s *Service) RegisterClient(ctx context.Context, req *RegisterClientRequest) *types.Response {
	err := s.registry.RegisterClient(ctx, webpush.ClientRecord{
		ID:      req.ClientID,
		URL:     req.URL,
		Focused: req.Focused,
	})
	if err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "failed to register client",
			Error:   err,
		})
	}

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusOK,
		Message: "client registered",
	})
}

// ConsumePush dispatches a push event for the raw message body. The host
// owns the task; the consumer waits for it so failures reach the dead
// letter queue.
func (s *Service) ConsumePush(ctx context.Context, body []byte) error {
	task, err := s.host.Dispatch(s.ctx, &serviceworker.Event{
		Type: serviceworker.EventPush,
		Data: body,
	})
	if err != nil {
		return err
	}
	return task.Wait(ctx)
}

func (s *Service) ConsumeClick(ctx context.Context, body []byte) error {
	var req ClickRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return fmt.Errorf("decode click: %w", err)
	}

	task, err := s.host.Dispatch(s.ctx, &serviceworker.Event{
		Type: serviceworker.EventNotificationClick,
		Notification: &serviceworker.Notification{
			ID: req.NotificationID,
			Options: serviceworker.NotificationOptions{
				Data: serviceworker.NotificationData{URL: req.Data.URL},
			},
		},
	})
	if err != nil {
		return err
	}
	return task.Wait(ctx)
}
