// Package serviceworker runs push notification lifecycle handlers against an
// injected Platform. Every handler returns a Task that the Host keeps alive
// until it settles, so work started by an event is never cut short.
package serviceworker

type State string

const (
	Installing State = "installing"
	Installed  State = "installed"
	Activating State = "activating"
	Activated  State = "activated"
	Redundant  State = "redundant"
)

type EventType string

const (
	EventInstall           EventType = "install"
	EventActivate          EventType = "activate"
	EventPush              EventType = "push"
	EventNotificationClick EventType = "notificationclick"
)

// Functional events are only delivered to an activated worker.
func (t EventType) functional() bool {
	return t == EventPush || t == EventNotificationClick
}

type ClientType string

const (
	WindowClient ClientType = "window"
	AllClients   ClientType = "all"
)

// Event is one lifecycle or functional event. Data is the raw push payload;
// Notification is set for notificationclick.
type Event struct {
	Type         EventType
	Data         []byte
	Notification *Notification
}

type Notification struct {
	ID      string              `json:"id"`
	Title   string              `json:"title"`
	Options NotificationOptions `json:"options"`
}

type NotificationOptions struct {
	Body  string           `json:"body"`
	Icon  string           `json:"icon"`
	Badge string           `json:"badge"`
	Data  NotificationData `json:"data"`
}

type NotificationData struct {
	URL string `json:"url"`
}

// Client is an open page the worker can focus.
type Client struct {
	ID         string     `json:"id"`
	URL        string     `json:"url"`
	Type       ClientType `json:"type"`
	Focused    bool       `json:"focused"`
	Controlled bool       `json:"controlled"`
}

type ClientQuery struct {
	Type                ClientType
	IncludeUncontrolled bool
}
