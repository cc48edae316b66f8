package relay

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"

	"garage-scheduler/internal/pkg/errs"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

const readBufferSize = 32 * 1024

// Proxy accepts TCP connections on a local address and forwards every byte
// read from them to its Client. Chunks from different connections may
// interleave at the destination.
type Proxy struct {
	client *Client
	logger *slog.Logger

	mu     sync.Mutex
	ln     net.Listener
	conns  map[net.Conn]struct{}
	group  *errgroup.Group
	halted bool

	accepted  atomic.Int64
	forwarded atomic.Int64
}

func NewProxy(destination string, logger *slog.Logger) *Proxy {
	return &Proxy{
		client: NewClient(destination),
		logger: logger.With(slog.String("component", "relay"), slog.String("destination", destination)),
	}
}

// Listen binds addr, then connects the client. A proxy listens once; after
// Halt it cannot be restarted.
func (p *Proxy) Listen(ctx context.Context, addr string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ln != nil || p.halted {
		return errs.Wrap(errs.ErrInvalidState, "proxy already started")
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return errs.Wrapf(err, "listen on %s", addr)
	}
	if err := p.client.Connect(ctx); err != nil {
		_ = ln.Close()
		return err
	}

	p.ln = ln
	p.conns = make(map[net.Conn]struct{})
	p.group = new(errgroup.Group)
	p.group.Go(p.acceptLoop)

	p.logger.Info("relay listening", slog.String("addr", ln.Addr().String()))
	return nil
}

// Addr is nil until Listen succeeds.
func (p *Proxy) Addr() net.Addr {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ln == nil {
		return nil
	}
	return p.ln.Addr()
}

func (p *Proxy) Accepted() int64  { return p.accepted.Load() }
func (p *Proxy) Forwarded() int64 { return p.forwarded.Load() }

// Halt stops accepting, closes open connections, waits for their forwarders
// and disconnects the client. It returns the first forwarding error, if any.
func (p *Proxy) Halt() error {
	p.mu.Lock()
	if p.halted {
		p.mu.Unlock()
		return nil
	}
	p.halted = true
	ln, group := p.ln, p.group
	if ln != nil {
		_ = ln.Close()
	}
	for c := range p.conns {
		_ = c.Close()
	}
	p.mu.Unlock()

	var err error
	if group != nil {
		err = group.Wait()
	}
	if cerr := p.client.Close(); cerr != nil && err == nil {
		err = cerr
	}

	p.logger.Info("relay halted",
		slog.Int64("accepted", p.accepted.Load()),
		slog.Int64("forwarded_bytes", p.forwarded.Load()),
	)
	return err
}

func (p *Proxy) isHalted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.halted
}

func (p *Proxy) acceptLoop() error {
	for {
		conn, err := p.ln.Accept()
		if err != nil {
			if p.isHalted() {
				return nil
			}
			return errs.Wrap(err, "accept")
		}

		if !p.track(conn) {
			_ = conn.Close()
			return nil
		}
		p.accepted.Inc()
		p.logger.Debug("connection made", slog.String("remote", conn.RemoteAddr().String()))

		p.group.Go(func() error {
			defer p.untrack(conn)
			return p.forward(conn)
		})
	}
}

// track registers conn unless the proxy is halting.
func (p *Proxy) track(conn net.Conn) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.halted {
		return false
	}
	p.conns[conn] = struct{}{}
	return true
}

func (p *Proxy) untrack(conn net.Conn) {
	p.mu.Lock()
	delete(p.conns, conn)
	p.mu.Unlock()
	_ = conn.Close()
}

func (p *Proxy) forward(conn net.Conn) error {
	buf := make([]byte, readBufferSize)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			if sendErr := p.client.Send(buf[:n]); sendErr != nil {
				p.logger.Error("forward failed",
					slog.String("remote", conn.RemoteAddr().String()),
					slog.String("error", sendErr.Error()),
				)
				return sendErr
			}
			p.forwarded.Add(int64(n))
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				return nil
			}
			if p.isHalted() {
				return nil
			}
			return errs.Wrapf(err, "read from %s", conn.RemoteAddr())
		}
	}
}
