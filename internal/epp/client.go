package epp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Transport exchanges one request document for one response document.
type Transport interface {
	Exchange(ctx context.Context, document []byte) ([]byte, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, document []byte) ([]byte, error)

func (f TransportFunc) Exchange(ctx context.Context, document []byte) ([]byte, error) {
	return f(ctx, document)
}

// Trace describes one finished Transact call. Code is zero when no response
// was decoded.
type Trace struct {
	Command  string
	ClientID string
	Code     ResultCode
	Duration time.Duration
	Err      error
}

// Observer is called once per Transact.
type Observer func(Trace)

// Client submits requests over a Transport. It holds no per-request state and
// is safe for concurrent use when the transport is.
type Client struct {
	transport Transport
	nextTrID  func() string
	logger    zerolog.Logger
	observers []Observer
}

type Option func(*Client)

// WithTrIDSource replaces the default UUID client transaction ids.
func WithTrIDSource(next func() string) Option {
	return func(c *Client) {
		if next != nil {
			c.nextTrID = next
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithObserver adds a hook run after every transaction.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

func NewClient(t Transport, opts ...Option) *Client {
	c := &Client{
		transport: t,
		nextTrID:  uuid.NewString,
		logger:    log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Transact encodes req, exchanges it once and decodes the reply. Transport
// errors are returned unchanged. A failing result code yields both the
// response and a CommandError.
func Transact[T, R any](ctx context.Context, c *Client, req Request[T, R]) (*Response[T, R], error) {
	start := time.Now()
	clTRID := c.nextTrID()
	resp, err := transact(ctx, c, req, clTRID)
	if len(c.observers) > 0 {
		t := Trace{Command: commandName(req.command), ClientID: clTRID, Duration: time.Since(start), Err: err}
		if resp != nil {
			t.Code = resp.Result.Code
		}
		for _, o := range c.observers {
			o(t)
		}
	}
	return resp, err
}

func transact[T, R any](ctx context.Context, c *Client, req Request[T, R], clTRID string) (*Response[T, R], error) {
	doc, err := req.Encode(clTRID)
	if err != nil {
		return nil, err
	}
	name := req.command.Name()
	c.logger.Debug().Str("command", name).Str("cl_trid", clTRID).Msg("epp: submit")

	raw, err := c.transport.Exchange(ctx, doc)
	if err != nil {
		c.logger.Error().Err(err).Str("command", name).Str("cl_trid", clTRID).Msg("epp: exchange failed")
		return nil, err
	}
	resp, err := req.Decode(raw)
	if err != nil {
		c.logger.Error().Err(err).Str("command", name).Str("cl_trid", clTRID).Msg("epp: decode failed")
		return nil, err
	}
	if resp.TrIDs.Client != "" && resp.TrIDs.Client != clTRID {
		c.logger.Warn().
			Str("command", name).
			Str("cl_trid", clTRID).
			Str("echoed", resp.TrIDs.Client).
			Msg("epp: server echoed a different clTRID")
	}
	c.logger.Info().
		Str("command", name).
		Uint16("code", uint16(resp.Result.Code)).
		Str("sv_trid", resp.TrIDs.Server).
		Msg("epp: transaction complete")
	if !resp.Result.Code.IsSuccess() {
		return resp, CommandError{Command: name, Result: resp.Result}
	}
	return resp, nil
}

func commandName(cmd interface{ Name() string }) string {
	if cmd == nil {
		return "<nil>"
	}
	return cmd.Name()
}
