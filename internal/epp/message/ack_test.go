package message

import (
	"errors"
	"testing"

	"github.com/danmuck/eppctl/internal/epp"
	"github.com/danmuck/eppctl/internal/epp/extension/namestore"
	"github.com/danmuck/eppctl/internal/epp/xmlcodec"
	"github.com/danmuck/eppctl/internal/testutil/testlog"
)

func TestAckEncodesOpAndDecimalID(t *testing.T) {
	testlog.Start(t)
	doc, err := epp.New(NewAck(12345)).Encode("ABC-12345")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	root, err := xmlcodec.Parse(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cmd := root.Child(epp.XMLNS, "epp").Child(epp.XMLNS, "command")
	poll := cmd.Child(epp.XMLNS, "poll")
	if poll == nil {
		t.Fatalf("missing poll element: %s", doc)
	}
	if op, _ := poll.Attr("op"); op != "ack" {
		t.Fatalf("op=%q", op)
	}
	if id, _ := poll.Attr("msgID"); id != "12345" {
		t.Fatalf("msgID=%q", id)
	}
	if cmd.Child(epp.XMLNS, "extension") != nil {
		t.Fatalf("ack must not carry an extension section")
	}
}

func TestAckRejectsExtensions(t *testing.T) {
	testlog.Start(t)
	_, err := epp.Attach(NewAck(1), namestore.New("com"))
	var ce epp.ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if ce.Command != "poll:ack" {
		t.Fatalf("unexpected error: %+v", ce)
	}
}

func TestAckResponseCarriesQueue(t *testing.T) {
	testlog.Start(t)
	resp, err := epp.New(NewAck(12345)).Decode([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<epp xmlns="urn:ietf:params:xml:ns:epp-1.0">
  <response>
    <result code="1000"><msg>Command completed successfully</msg></result>
    <msgQ count="4" id="12346"/>
    <trID><clTRID>ABC-12345</clTRID><svTRID>54322-XYZ</svTRID></trID>
  </response>
</epp>`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.MsgQueue == nil || resp.MsgQueue.Count != 4 || resp.MsgQueue.ID != "12346" {
		t.Fatalf("unexpected queue: %+v", resp.MsgQueue)
	}
	if resp.ResData != nil || resp.Extension != nil {
		t.Fatalf("no resData or extension expected: %+v", resp)
	}
}
