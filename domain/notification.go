package domain

import "time"

// Notification is the envelope published to the topic and queued for the
// background worker. Data keys are rendered into the message body.
type Notification struct {
	Type      string            `json:"notification_type"`
	Subject   string            `json:"subject"`
	Message   string            `json:"message"`
	Data      map[string]string `json:"data,omitempty"`
	Timestamp string            `json:"timestamp"`
}

// Recipient is a single notification target, either an email address or a
// phone number for SMS delivery.
type Recipient struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// NewNotification stamps a notification envelope.
func NewNotification(kind, subject, message string, data map[string]string) Notification {
	return Notification{
		Type:      kind,
		Subject:   subject,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
