// Package notify describes the transient toast messages shown after visitor actions.
package notify

import (
	"encoding/json"
	"time"
)

// Type is the visual severity of a notification.
type Type string

const (
	Success Type = "success"
	Error   Type = "error"
	Warning Type = "warning"
	Info    Type = "info"
)

// DefaultTimeout is how long the client keeps a toast on screen.
const DefaultTimeout = 4 * time.Second

// Event is the client-side event name notifications are dispatched under.
const Event = "notify"

// Notification is a single toast.
type Notification struct {
	Type    Type          `json:"type"`
	Message string        `json:"message"`
	Timeout time.Duration `json:"-"`
}

// New creates a notification with the default timeout.
func New(t Type, message string) Notification {
	return Notification{Type: t, Message: message, Timeout: DefaultTimeout}
}

// Icon returns the Font Awesome icon class for the notification type.
func (n Notification) Icon() string {
	switch n.Type {
	case Success:
		return "fa-check-circle"
	case Error:
		return "fa-exclamation-circle"
	case Warning:
		return "fa-exclamation-triangle"
	default:
		return "fa-info-circle"
	}
}

// MarshalJSON adds the timeout in milliseconds for the client script.
func (n Notification) MarshalJSON() ([]byte, error) {
	timeout := n.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return json.Marshal(struct {
		Type    Type   `json:"type"`
		Message string `json:"message"`
		Icon    string `json:"icon"`
		Timeout int64  `json:"timeout"`
	}{n.Type, n.Message, n.Icon(), timeout.Milliseconds()})
}

// Queue collects notifications raised while handling one request.
// The zero value is ready to use. Not safe for concurrent use.
type Queue struct {
	items []Notification
}

// Push appends a notification.
func (q *Queue) Push(n Notification) {
	q.items = append(q.items, n)
}

// Add appends a notification of type t with the default timeout.
func (q *Queue) Add(t Type, message string) {
	q.Push(New(t, message))
}

// Items returns the queued notifications in order.
func (q *Queue) Items() []Notification {
	return q.items
}

// Len returns the number of queued notifications.
func (q *Queue) Len() int {
	return len(q.items)
}
