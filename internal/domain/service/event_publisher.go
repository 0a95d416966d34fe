package service

import (
	"context"

	"github.com/google/uuid"
)

// AccountCreatedEvent is the payload published when a new account is created.
// The downstream email service consumes it to send a welcome message.
type AccountCreatedEvent struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
}

// EventPublisher defines the interface for publishing account lifecycle
// events to a message broker. Publishing is fire-and-forget: no delivery
// guarantee surfaces to the caller.
type EventPublisher interface {
	// Publish sends a typed event to the given exchange and queue.
	Publish(ctx context.Context, exchange, queue, eventType string, payload any) error

	// Close releases any resources held by the publisher
	Close() error
}
