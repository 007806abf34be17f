package email

import "context"

// FromAddress is the fixed sender for all clinic notifications. Recipients
// are always exactly one patient address.
const FromAddress = "MediFlow <noreply@mediflow.com>"

// Sender is the interface the mail transport must implement. This
// abstraction allows swapping providers without changing business logic,
// and lets tests substitute a spy.
type Sender interface {
	// Send delivers an email and returns the provider's result.
	Send(ctx context.Context, msg Message) (*SendResult, error)
}

// Message represents an email message to be sent.
type Message struct {
	To       string // recipient email address
	Subject  string // email subject
	HTMLBody string // HTML email body
	TextBody string // plain-text fallback body
}

// SendResult carries the provider's acknowledgement of a sent message.
type SendResult struct {
	// ID is the provider-assigned message identifier. An empty ID means
	// the provider accepted the call without acknowledging the message.
	ID string
}
