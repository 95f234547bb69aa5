// Package bus wraps the NATS connection used as the service transport.
package bus

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

const clientName = "ms-products"

// Conn is a thin wrapper over the NATS connection that registers
// request/reply handlers on a shared queue group.
type Conn struct {
	nc    *nats.Conn
	queue string
	subs  []*nats.Subscription
}

// Handler processes a request payload and returns the reply payload.
// The returned bytes are always sent back, including error envelopes.
type Handler func(data []byte) []byte

// Connect dials the NATS server with infinite reconnects.
func Connect(url string) (*Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name(clientName),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &Conn{nc: nc, queue: clientName}, nil
}

// Subscribe registers a queue-group handler for the given subject. Replies are
// only sent when the request carries a reply inbox.
func (c *Conn) Subscribe(subject string, handler Handler) error {
	sub, err := c.nc.QueueSubscribe(subject, c.queue, func(msg *nats.Msg) {
		reply := handler(msg.Data)
		if msg.Reply != "" {
			_ = msg.Respond(reply)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}
	c.subs = append(c.subs, sub)
	return nil
}

// IsConnected reports whether the underlying connection is up.
func (c *Conn) IsConnected() bool {
	return c.nc != nil && c.nc.IsConnected()
}

// Drain flushes in-flight messages and closes the connection.
func (c *Conn) Drain() error {
	if c.nc == nil {
		return nil
	}
	return c.nc.Drain()
}
