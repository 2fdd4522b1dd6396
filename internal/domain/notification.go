package domain

// Severity classifies a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is an ephemeral message describing the outcome of an intent.
type Notification struct {
	ID       string   `json:"id"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Event is a notification before it has been assigned an identifier.
type Event struct {
	Message  string
	Severity Severity
}

// NewEvent creates an Event.
func NewEvent(severity Severity, message string) *Event {
	return &Event{Message: message, Severity: severity}
}
