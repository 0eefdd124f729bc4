package epp

import (
	"fmt"

	"github.com/danmuck/eppctl/internal/epp/xmlcodec"
)

// XMLNS is the base protocol namespace.
const XMLNS = "urn:ietf:params:xml:ns:epp-1.0"

// Command is a base command whose <resData> decodes as T.
type Command[T any] interface {
	xmlcodec.Encoder
	// Name identifies the command, e.g. "domain:update".
	Name() string
	// Accepts reports whether ext is declared to accompany this command.
	Accepts(ext any) bool
	DecodeResult(resData *xmlcodec.Node) (T, error)
}

// Extension is a command extension whose response section decodes as R.
// DecodeResponse must not depend on the receiver's fields.
type Extension[R any] interface {
	xmlcodec.Encoder
	DecodeResponse(ext *xmlcodec.Node) (R, error)
}

// NoExtension is the empty extension. It produces no <extension> section.
type NoExtension struct{}

func (NoExtension) EncodeXML(*xmlcodec.Writer) error { return nil }

func (NoExtension) DecodeResponse(*xmlcodec.Node) (NoExtension, error) {
	return NoExtension{}, nil
}

// NoResult is the result type of commands that carry no <resData>.
type NoResult struct{}

// Request is a command bound to its extension.
type Request[T, R any] struct {
	command   Command[T]
	extension Extension[R]
}

// New wraps cmd without an extension.
func New[T any](cmd Command[T]) Request[T, NoExtension] {
	return Request[T, NoExtension]{command: cmd, extension: NoExtension{}}
}

// Attach binds ext to cmd. Pairs cmd does not accept fail with
// ConfigurationError before anything is encoded.
func Attach[T, R any](cmd Command[T], ext Extension[R]) (Request[T, R], error) {
	if cmd == nil {
		return Request[T, R]{}, ConfigurationError{Command: "<nil>", Extension: extensionName(ext)}
	}
	if ext == nil || !cmd.Accepts(ext) {
		return Request[T, R]{}, ConfigurationError{Command: cmd.Name(), Extension: extensionName(ext)}
	}
	return Request[T, R]{command: cmd, extension: ext}, nil
}

// MustAttach is Attach for pairs already checked by the type system. It
// panics on ConfigurationError.
func MustAttach[T, R any](cmd Command[T], ext Extension[R]) Request[T, R] {
	req, err := Attach(cmd, ext)
	if err != nil {
		panic(err)
	}
	return req
}

// Rebind replaces the extension of req. The new request expects ext's
// response type; nothing of the old extension survives.
func Rebind[T, R, S any](req Request[T, R], ext Extension[S]) (Request[T, S], error) {
	return Attach(req.command, ext)
}

func (r Request[T, R]) Command() Command[T] {
	return r.command
}

func (r Request[T, R]) Extension() Extension[R] {
	return r.extension
}

// HasExtension reports whether the request will emit an <extension> section.
func (r Request[T, R]) HasExtension() bool {
	return hasPayload(r.extension)
}

func hasPayload(ext any) bool {
	if ext == nil {
		return false
	}
	switch ext.(type) {
	case NoExtension, *NoExtension:
		return false
	}
	return true
}

func extensionName(ext any) string {
	if ext == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", ext)
}
