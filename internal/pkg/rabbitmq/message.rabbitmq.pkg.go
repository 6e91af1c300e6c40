package rabbitmq

import (
	"encoding/json"
	"fmt"
	"maps"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Message is an outgoing delivery before it is handed to the broker.
type Message struct {
	ID          string     `json:"id"`
	Body        []byte     `json:"content"`
	Payload     any        `json:"payload"`
	Headers     amqp.Table `json:"headers,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
	ContentType string     `json:"content_type"`
}

// NewMessage encodes payload and copies headers so the caller's table is
// left untouched. Strings go out as text, byte slices as-is, anything else
// as JSON.
func NewMessage(payload any, headers *amqp.Table) (*Message, error) {
	gid, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("generate message id: %w", err)
	}

	body, contentType, err := encodeBody(payload)
	if err != nil {
		return nil, fmt.Errorf("encode message body: %w", err)
	}

	table := amqp.Table{}
	if headers != nil {
		maps.Copy(table, *headers)
	}

	return &Message{
		ID:          "msg_" + gid,
		Body:        body,
		Payload:     payload,
		Headers:     table,
		Timestamp:   time.Now().UTC(),
		ContentType: contentType,
	}, nil
}

func encodeBody(payload any) ([]byte, string, error) {
	switch v := payload.(type) {
	case string:
		return []byte(v), "text/plain", nil
	case []byte:
		return v, "application/octet-stream", nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, "", err
	}
	return body, "application/json", nil
}

func (m *Message) GeneratePayload() *amqp.Publishing {
	m.Headers["id"] = m.ID

	return &amqp.Publishing{
		ContentType:  m.ContentType,
		Body:         m.Body,
		MessageId:    m.ID,
		Timestamp:    m.Timestamp,
		DeliveryMode: amqp.Persistent,
		Headers:      m.Headers,
	}
}

// Decode unmarshals a JSON delivery body into T.
func Decode[T any](d *amqp.Delivery) (*T, error) {
	var v T
	if err := json.Unmarshal(d.Body, &v); err != nil {
		return nil, fmt.Errorf("failed to decode message %s: %w", d.MessageId, err)
	}
	return &v, nil
}
