// internal/pkg/email/email.go
package email

import (
	"context"
)

// Message represents an outgoing email
type Message struct {
	To          []string `json:"to"`
	Subject     string   `json:"subject"`
	HTMLContent string   `json:"html_content"`
}

// Sender delivers messages over some transport. Implementations make a
// single attempt; retry policy belongs to the caller.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}
