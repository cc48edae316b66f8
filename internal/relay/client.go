// Package relay forwards inbound TCP byte streams verbatim to one
// destination. It shares no state with the scheduler.
package relay

import (
	"context"
	"net"
	"sync"

	"garage-scheduler/internal/pkg/errs"
)

// Client writes to a single stream connection. Send calls are serialized, so
// each chunk reaches the destination contiguously.
type Client struct {
	destination string
	dialer      net.Dialer

	mu   sync.Mutex
	conn net.Conn
}

func NewClient(destination string) *Client {
	return &Client{destination: destination}
}

func (c *Client) Destination() string { return c.destination }

func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return errs.Wrapf(errs.ErrInvalidState, "already connected to %s", c.destination)
	}

	conn, err := c.dialer.DialContext(ctx, "tcp", c.destination)
	if err != nil {
		return errs.Wrapf(err, "dial %s", c.destination)
	}
	c.conn = conn
	return nil
}

func (c *Client) Send(p []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return errs.Wrapf(errs.ErrInvalidState, "not connected to %s", c.destination)
	}
	if _, err := c.conn.Write(p); err != nil {
		return errs.Wrapf(err, "write to %s", c.destination)
	}
	return nil
}

// Close is idempotent.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	if err != nil {
		return errs.Wrapf(err, "close connection to %s", c.destination)
	}
	return nil
}
