// Package message implements poll queue acknowledgement.
package message

import (
	"strconv"

	"github.com/danmuck/eppctl/internal/epp"
	"github.com/danmuck/eppctl/internal/epp/xmlcodec"
)

const opAck = "ack"

// Ack removes message MessageID from the server's poll queue. The remaining
// queue depth comes back in the response's MsgQueue.
type Ack struct {
	MessageID uint32
}

func NewAck(id uint32) Ack {
	return Ack{MessageID: id}
}

func (Ack) Name() string { return "poll:ack" }

// Accepts admits no extension payload.
func (Ack) Accepts(ext any) bool {
	_, ok := ext.(epp.NoExtension)
	return ok
}

// EncodeXML writes <poll op="ack" msgID="..."/>.
func (a Ack) EncodeXML(w *xmlcodec.Writer) error {
	w.Empty("poll",
		xmlcodec.Attr("op", opAck),
		xmlcodec.Attr("msgID", strconv.FormatUint(uint64(a.MessageID), 10)),
	)
	return w.Err()
}

func (Ack) DecodeResult(*xmlcodec.Node) (epp.NoResult, error) {
	return epp.NoResult{}, nil
}
