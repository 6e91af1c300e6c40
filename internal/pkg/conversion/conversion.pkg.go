package conversion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"portrait-backend/internal/pkg/helper"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultGraphURL = "https://graph.facebook.com"

var ErrNotConfigured = errors.New("conversion tracking is not configured")

// Match is the advanced-matching bundle sent alongside a conversion.
// ExternalID must already be hashed by the caller.
type Match struct {
	FBC        string
	FBP        string
	ExternalID string
}

// PurchaseEvent carries raw customer contact data; the client hashes email
// and phone before they leave the process.
type PurchaseEvent struct {
	Email          string
	Phone          string
	ContentID      string
	Value          float64
	Currency       string
	TransactionID  string
	EventID        string
	EventSourceURL string
	Match          Match
}

type IClient interface {
	TrackPurchase(ctx context.Context, ev *PurchaseEvent) error
}

type Config struct {
	PixelID       string
	AccessToken   string
	APIVersion    string
	TestEventCode string
	BaseURL       string
	Timeout       int
	ProxyURL      string
}

// Client sends server-side events to the Meta Conversions API.
type Client struct {
	cfg  *Config
	http *helper.OutboundHTTPClient
	now  func() time.Time
}

func New(cfg *Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultGraphURL
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "v19.0"
	}
	return &Client{
		cfg: cfg,
		http: helper.NewOutboundHTTPClient(&helper.OutboundConfig{
			ProxyURL:       cfg.ProxyURL,
			RequestTimeout: cfg.Timeout,
		}),
		now: time.Now,
	}
}

type userData struct {
	Email      []string `json:"em,omitempty"`
	Phone      []string `json:"ph,omitempty"`
	ExternalID []string `json:"external_id,omitempty"`
	FBC        string   `json:"fbc,omitempty"`
	FBP        string   `json:"fbp,omitempty"`
}

type customData struct {
	Currency    string   `json:"currency"`
	Value       float64  `json:"value"`
	ContentIDs  []string `json:"content_ids,omitempty"`
	ContentType string   `json:"content_type,omitempty"`
	OrderID     string   `json:"order_id,omitempty"`
}

type serverEvent struct {
	EventName      string     `json:"event_name"`
	EventTime      int64      `json:"event_time"`
	EventID        string     `json:"event_id"`
	ActionSource   string     `json:"action_source"`
	EventSourceURL string     `json:"event_source_url,omitempty"`
	UserData       userData   `json:"user_data"`
	CustomData     customData `json:"custom_data"`
}

type eventsRequest struct {
	Data          []serverEvent `json:"data"`
	TestEventCode string        `json:"test_event_code,omitempty"`
	AccessToken   string        `json:"access_token"`
}

type eventsResponse struct {
	EventsReceived int `json:"events_received"`
}

// TrackPurchase posts one Purchase event. A missing EventID is replaced by a
// random one.
func (c *Client) TrackPurchase(ctx context.Context, ev *PurchaseEvent) error {
	if c.cfg.PixelID == "" || c.cfg.AccessToken == "" {
		return ErrNotConfigured
	}

	body := eventsRequest{
		Data:          []serverEvent{c.buildEvent(ev)},
		TestEventCode: c.cfg.TestEventCode,
		AccessToken:   c.cfg.AccessToken,
	}

	resp, err := c.http.Request(&helper.HTTPRequestPayload{
		Method: helper.POST,
		URL:    fmt.Sprintf("%s/%s/%s/events", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.APIVersion, c.cfg.PixelID),
		Body:   body,
	}, &helper.HTTPRequestConfig{
		Ctx: ctx,
	})
	if err != nil {
		return fmt.Errorf("conversion api: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("conversion api: %w", &helper.HTTPStatusError{
			StatusCode: resp.StatusCode,
			Body:       string(resp.Data),
		})
	}

	var received eventsResponse
	if err := json.Unmarshal(resp.Data, &received); err == nil && received.EventsReceived == 0 {
		return fmt.Errorf("conversion api: event was not received")
	}

	return nil
}

func (c *Client) buildEvent(ev *PurchaseEvent) serverEvent {
	eventID := ev.EventID
	if eventID == "" {
		eventID = uuid.NewString()
	}

	ud := userData{
		FBC: ev.Match.FBC,
		FBP: ev.Match.FBP,
	}
	if hashed := helper.HashEmail(ev.Email); hashed != "" {
		ud.Email = []string{hashed}
	}
	if phone := helper.NormalizePhone(ev.Phone); phone != "" {
		ud.Phone = []string{helper.SHA256Hex(phone)}
	}
	if ev.Match.ExternalID != "" {
		ud.ExternalID = []string{ev.Match.ExternalID}
	}

	cd := customData{
		Currency:    strings.ToUpper(ev.Currency),
		Value:       ev.Value,
		ContentType: "product",
		OrderID:     ev.TransactionID,
	}
	if ev.ContentID != "" {
		cd.ContentIDs = []string{ev.ContentID}
	}

	return serverEvent{
		EventName:      "Purchase",
		EventTime:      c.now().Unix(),
		EventID:        eventID,
		ActionSource:   "website",
		EventSourceURL: ev.EventSourceURL,
		UserData:       ud,
		CustomData:     cd,
	}
}
