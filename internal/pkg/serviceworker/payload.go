package serviceworker

import "encoding/json"

const (
	DefaultTitle = "Istanbul Portrait"
	DefaultURL   = "/"
	IconPath     = "/icon1.webp"
)

// Payload is the JSON body of a push message. Every field is optional.
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// ParsePayload never fails: missing, empty or malformed data yields the
// defaults, and empty fields are replaced individually.
func ParsePayload(data []byte) Payload {
	var p Payload
	if len(data) > 0 {
		if err := json.Unmarshal(data, &p); err != nil {
			p = Payload{}
		}
	}

	if p.Title == "" {
		p.Title = DefaultTitle
	}
	if p.URL == "" {
		p.URL = DefaultURL
	}
	return p
}

// Options builds the display options for the notification.
func (p Payload) Options() NotificationOptions {
	return NotificationOptions{
		Body:  p.Body,
		Icon:  IconPath,
		Badge: IconPath,
		Data:  NotificationData{URL: p.URL},
	}
}
