// Package mail sends transactional and newsletter email through a pluggable provider.
package mail

import "context"

// Message is one outgoing email.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	HTML    string
}

// Provider defines the interface for email sending implementations.
type Provider interface {
	Send(ctx context.Context, msg Message) error
}
