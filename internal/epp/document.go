package epp

import (
	"bytes"
	"strconv"
	"time"

	"github.com/danmuck/eppctl/internal/epp/xmlcodec"
	"github.com/rs/zerolog/log"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>` + "\n"

// Encode renders the full <epp><command> document. The <extension> wrapper
// is written only when the request carries a real extension.
func (r Request[T, R]) Encode(clTRID string) ([]byte, error) {
	if r.command == nil {
		return nil, ConfigurationError{Command: "<nil>", Extension: extensionName(r.extension)}
	}
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	w := xmlcodec.NewWriter(&buf)
	w.Start("epp", xmlcodec.DefaultNamespace(XMLNS))
	w.Start("command")
	w.Encode(r.command)
	if r.HasExtension() {
		w.Start("extension")
		w.Encode(r.extension)
		w.End()
	}
	if clTRID != "" {
		w.Element("clTRID", clTRID)
	}
	w.End()
	w.End()
	if err := w.Flush(); err != nil {
		log.Error().Err(err).Str("command", r.command.Name()).Msg("epp: encode failed")
		return nil, err
	}
	log.Debug().
		Str("command", r.command.Name()).
		Bool("extension", r.HasExtension()).
		Int("bytes", buf.Len()).
		Msg("epp: encoded request")
	return buf.Bytes(), nil
}

// Decode parses a <response> document. The envelope is always decoded; the
// extension section is decoded with R only when the document contains one.
func (r Request[T, R]) Decode(data []byte) (*Response[T, R], error) {
	if r.command == nil {
		return nil, ConfigurationError{Command: "<nil>", Extension: extensionName(r.extension)}
	}
	root, err := xmlcodec.Parse(data)
	if err != nil {
		return nil, err
	}
	env, err := root.Require(XMLNS, "epp")
	if err != nil {
		return nil, err
	}
	res, err := env.Require(XMLNS, "response")
	if err != nil {
		return nil, err
	}

	out := &Response[T, R]{}
	if out.Result, err = decodeResult(res); err != nil {
		return nil, err
	}
	if q := res.Child(XMLNS, "msgQ"); q != nil {
		mq, err := decodeMsgQueue(q)
		if err != nil {
			return nil, err
		}
		out.MsgQueue = &mq
	}
	if rd := res.Child(XMLNS, "resData"); rd != nil {
		v, err := r.command.DecodeResult(rd)
		if err != nil {
			return nil, err
		}
		out.ResData = &v
	}
	if ext := res.Child(XMLNS, "extension"); ext != nil && r.extension != nil {
		v, err := r.extension.DecodeResponse(ext)
		if err != nil {
			return nil, err
		}
		out.Extension = &v
	}
	tr, err := res.Require(XMLNS, "trID")
	if err != nil {
		return nil, err
	}
	out.TrIDs.Client = tr.ChildText(XMLNS, "clTRID")
	if out.TrIDs.Server, err = tr.RequireText(XMLNS, "svTRID"); err != nil {
		return nil, err
	}

	log.Debug().
		Str("command", r.command.Name()).
		Uint16("code", uint16(out.Result.Code)).
		Bool("res_data", out.ResData != nil).
		Bool("extension", out.Extension != nil).
		Msg("epp: decoded response")
	return out, nil
}

func decodeResult(res *xmlcodec.Node) (Result, error) {
	el, err := res.Require(XMLNS, "result")
	if err != nil {
		return Result{}, err
	}
	raw, err := el.RequireAttr("code")
	if err != nil {
		return Result{}, err
	}
	code, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return Result{}, xmlcodec.Invalid("result", "code "+strconv.Quote(raw))
	}
	return Result{Code: ResultCode(code), Message: el.ChildText(XMLNS, "msg")}, nil
}

func decodeMsgQueue(q *xmlcodec.Node) (MessageQueue, error) {
	var mq MessageQueue
	if raw, ok := q.Attr("count"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return MessageQueue{}, xmlcodec.Invalid("msgQ", "count "+strconv.Quote(raw))
		}
		mq.Count = n
	}
	mq.ID, _ = q.Attr("id")
	if raw := q.ChildText(XMLNS, "qDate"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return MessageQueue{}, xmlcodec.Invalid("qDate", err.Error())
		}
		mq.Date = t
	}
	mq.Message = q.ChildText(XMLNS, "msg")
	return mq, nil
}
