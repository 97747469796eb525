// internal/models/notification.go
package models

// Notification records one match-summary delivery attempt.
type Notification struct {
	ID        string                 `json:"id"`
	Recipient string                 `json:"recipient"`
	Type      string                 `json:"type"`    // "match_summary"
	Channel   string                 `json:"channel"` // "email", "sms"
	Status    string                 `json:"status"`  // "sent", "failed", "disabled"
	Payload   map[string]interface{} `json:"payload"`
	SentAt    string                 `json:"sentAt"`
}

const (
	NotificationTypeMatchSummary = "match_summary"

	ChannelEmail = "email"
	ChannelSMS   = "sms"

	NotificationStatusSent     = "sent"
	NotificationStatusPartial  = "partial"
	NotificationStatusFailed   = "failed"
	NotificationStatusDisabled = "disabled"
)

type NotificationTemplate struct {
	Type     string `json:"type"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	HTMLBody string `json:"htmlBody,omitempty"`
}
