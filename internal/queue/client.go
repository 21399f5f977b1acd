package queue

import (
	"context"
	"time"
)

// Client sends messages to a queue backend.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

// Consumer receives messages from a queue backend. Receive blocks up to
// the timeout and returns nil when nothing arrived.
type Consumer interface {
	Receive(ctx context.Context, timeout time.Duration) (*Message, error)
}
