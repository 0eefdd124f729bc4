package transport

import (
	"encoding/binary"
	"errors"
	"io"
)

// HeaderLen is the RFC 5734 length prefix. The prefix value counts itself.
const HeaderLen = 4

var (
	ErrShortHeader     = errors.New("transport: short frame header")
	ErrLengthTooSmall  = errors.New("transport: frame length smaller than header")
	ErrPayloadTooLarge = errors.New("transport: payload too large")
	ErrEmptyPayload    = errors.New("transport: empty payload")
)

// Limits constrains frame memory use.
type Limits struct {
	MaxPayloadBytes uint32
}

func DefaultLimits() Limits {
	return Limits{MaxPayloadBytes: 4 * 1024 * 1024}
}

// ReadFrame reads one length-prefixed XML document.
func ReadFrame(r io.Reader, limits Limits) ([]byte, error) {
	var hdr [HeaderLen]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrShortHeader
		}
		return nil, err
	}
	total := binary.BigEndian.Uint32(hdr[:])
	if total < HeaderLen {
		return nil, ErrLengthTooSmall
	}
	n := total - HeaderLen
	if n > limits.MaxPayloadBytes {
		return nil, ErrPayloadTooLarge
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// WriteFrame writes payload behind its length prefix in a single Write.
func WriteFrame(w io.Writer, payload []byte, limits Limits) error {
	if len(payload) == 0 {
		return ErrEmptyPayload
	}
	if uint64(len(payload)) > uint64(limits.MaxPayloadBytes) {
		return ErrPayloadTooLarge
	}
	buf := make([]byte, HeaderLen+len(payload))
	binary.BigEndian.PutUint32(buf[:HeaderLen], uint32(len(buf)))
	copy(buf[HeaderLen:], payload)
	_, err := w.Write(buf)
	return err
}
