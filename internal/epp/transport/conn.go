// Package transport carries EPP documents over TCP or TLS using the RFC 5734
// length-prefixed framing.
package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var ErrClosed = errors.New("transport: connection closed")

// Error reports which step of an exchange failed.
type Error struct {
	Op  string
	Err error
}

func (e Error) Error() string {
	return "transport: " + e.Op + ": " + e.Err.Error()
}

func (e Error) Unwrap() error {
	return e.Err
}

// Conn is one registry session. Exchanges are serialized; a failed exchange
// closes the connection since the stream position is then unknown.
type Conn struct {
	cfg Config

	mu       sync.Mutex
	conn     net.Conn
	greeting []byte
	closed   bool
}

// Dial connects to cfg.Address, completes the TLS handshake when enabled and
// reads the server greeting.
func Dial(ctx context.Context, cfg Config) (*Conn, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dialer := net.Dialer{Timeout: cfg.ConnectTimeout}
	raw, err := dialer.DialContext(ctx, "tcp", cfg.Address())
	if err != nil {
		return nil, Error{Op: "dial", Err: err}
	}
	conn := raw
	if cfg.TLS.Enabled {
		tlsCfg, err := cfg.tlsConfig()
		if err != nil {
			_ = raw.Close()
			return nil, Error{Op: "tls config", Err: err}
		}
		tc := tls.Client(raw, tlsCfg)
		handshakeCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
		if err := tc.HandshakeContext(handshakeCtx); err != nil {
			_ = raw.Close()
			return nil, Error{Op: "handshake", Err: err}
		}
		conn = tc
	}

	c := NewConn(conn, cfg)
	if _, err := c.ReadGreeting(ctx); err != nil {
		return nil, err
	}
	log.Info().
		Str("addr", cfg.Address()).
		Bool("tls", cfg.TLS.Enabled).
		Int("greeting_bytes", len(c.greeting)).
		Msg("transport: connected")
	return c, nil
}

// NewConn wraps an established connection. The caller reads the greeting.
func NewConn(conn net.Conn, cfg Config) *Conn {
	return &Conn{cfg: cfg.WithDefaults(), conn: conn}
}

// ReadGreeting reads the frame the server sends on connect.
func (c *Conn) ReadGreeting(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, Error{Op: "greeting", Err: ErrClosed}
	}
	defer c.watch(ctx)()
	if err := c.arm(ctx, c.conn.SetReadDeadline, c.cfg.ReadTimeout); err != nil {
		return nil, c.fail(ctx, "greeting", err)
	}
	g, err := ReadFrame(c.conn, c.cfg.Limits)
	if err != nil {
		return nil, c.fail(ctx, "greeting", err)
	}
	c.greeting = g
	return g, nil
}

// Greeting returns the last greeting read, or nil.
func (c *Conn) Greeting() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.greeting
}

// Exchange writes doc as one frame and reads one frame back.
func (c *Conn) Exchange(ctx context.Context, doc []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, Error{Op: "exchange", Err: ErrClosed}
	}
	defer c.watch(ctx)()

	if err := c.arm(ctx, c.conn.SetWriteDeadline, c.cfg.WriteTimeout); err != nil {
		return nil, c.fail(ctx, "write", err)
	}
	if err := WriteFrame(c.conn, doc, c.cfg.Limits); err != nil {
		if errors.Is(err, ErrPayloadTooLarge) || errors.Is(err, ErrEmptyPayload) {
			return nil, Error{Op: "write", Err: err}
		}
		return nil, c.fail(ctx, "write", err)
	}
	if err := c.arm(ctx, c.conn.SetReadDeadline, c.cfg.ReadTimeout); err != nil {
		return nil, c.fail(ctx, "read", err)
	}
	resp, err := ReadFrame(c.conn, c.cfg.Limits)
	if err != nil {
		return nil, c.fail(ctx, "read", err)
	}
	log.Debug().Int("sent", len(doc)).Int("received", len(resp)).Msg("transport: exchange")
	return resp, nil
}

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}

// watch expires the connection deadline when ctx ends.
func (c *Conn) watch(ctx context.Context) func() {
	stop := context.AfterFunc(ctx, func() {
		_ = c.conn.SetDeadline(time.Now())
	})
	return func() { stop() }
}

// arm sets a deadline, then rechecks ctx in case cancellation raced the set.
func (c *Conn) arm(ctx context.Context, set func(time.Time) error, timeout time.Duration) error {
	if err := set(time.Now().Add(timeout)); err != nil {
		return err
	}
	return ctx.Err()
}

func (c *Conn) fail(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = ctxErr
	}
	if !c.closed {
		c.closed = true
		_ = c.conn.Close()
	}
	log.Warn().Err(err).Str("op", op).Msg("transport: exchange failed, connection closed")
	return Error{Op: op, Err: err}
}
