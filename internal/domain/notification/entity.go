package notification

import "time"

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notification is the single transient message shown to the operator.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      Severity  `json:"type"`
	Title     string    `json:"title,omitempty"`
	Duration  int64     `json:"duration"` // milliseconds
	AutoHide  bool      `json:"autoHide"`
	CreatedAt time.Time `json:"createdAt"`
}

// Options tune a single Show call. Zero values take the notifier defaults.
type Options struct {
	Title    string
	Duration time.Duration
	// KeepOpen disables auto-dismiss.
	KeepOpen bool
}

// Headline is the dashboard banner derived from task urgency.
type Headline struct {
	Type    Severity `json:"type"`
	Message string   `json:"message"`
}
