package epp

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/danmuck/eppctl/internal/testutil/testlog"
)

func reply(code, clTRID string) []byte {
	return []byte(`<epp xmlns="urn:ietf:params:xml:ns:epp-1.0"><response><result code="` + code +
		`"><msg>m</msg></result><trID><clTRID>` + clTRID + `</clTRID><svTRID>SRV</svTRID></trID></response></epp>`)
}

func TestTransactSendsOnceAndDecodes(t *testing.T) {
	testlog.Start(t)
	var sent [][]byte
	transport := TransportFunc(func(_ context.Context, doc []byte) ([]byte, error) {
		sent = append(sent, doc)
		return reply("1000", "fixed-1"), nil
	})
	c := NewClient(transport, WithTrIDSource(func() string { return "fixed-1" }))
	resp, err := Transact(context.Background(), c, New[pingResult](pingCommand{}))
	if err != nil {
		t.Fatalf("transact: %v", err)
	}
	if len(sent) != 1 {
		t.Fatalf("expected one exchange, got %d", len(sent))
	}
	if !strings.Contains(string(sent[0]), "<clTRID>fixed-1</clTRID>") {
		t.Fatalf("clTRID not sent:\n%s", sent[0])
	}
	if resp.Result.Code != CommandCompletedSuccessfully || resp.TrIDs.Server != "SRV" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestTransactPassesTransportErrorsThrough(t *testing.T) {
	testlog.Start(t)
	boom := errors.New("connection reset")
	c := NewClient(TransportFunc(func(context.Context, []byte) ([]byte, error) { return nil, boom }))
	resp, err := Transact(context.Background(), c, New[pingResult](pingCommand{}))
	if err != boom {
		t.Fatalf("expected transport error unchanged, got %v", err)
	}
	if resp != nil {
		t.Fatalf("expected nil response, got %+v", resp)
	}
}

func TestTransactReturnsCommandErrorWithResponse(t *testing.T) {
	testlog.Start(t)
	c := NewClient(TransportFunc(func(context.Context, []byte) ([]byte, error) {
		return reply("2303", "x"), nil
	}), WithTrIDSource(func() string { return "x" }))
	resp, err := Transact(context.Background(), c, New[pingResult](pingCommand{}))
	var cmdErr CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected CommandError, got %v", err)
	}
	if cmdErr.Command != "test:ping" || cmdErr.Result.Code != ObjectDoesNotExist {
		t.Fatalf("unexpected error %+v", cmdErr)
	}
	if resp == nil || resp.Result.Code != ObjectDoesNotExist {
		t.Fatalf("response should accompany the error, got %+v", resp)
	}
}

func TestTransactDefaultTrIDAndMismatchWarning(t *testing.T) {
	testlog.Start(t)
	var sent []byte
	var logs bytes.Buffer
	c := NewClient(TransportFunc(func(_ context.Context, doc []byte) ([]byte, error) {
		sent = doc
		return reply("1000", "someone-else"), nil
	}), WithLogger(zerolog.New(&logs)))
	if _, err := Transact(context.Background(), c, New[pingResult](pingCommand{})); err != nil {
		t.Fatalf("transact: %v", err)
	}
	s := string(sent)
	start := strings.Index(s, "<clTRID>") + len("<clTRID>")
	end := strings.Index(s, "</clTRID>")
	if start < len("<clTRID>") || end < start {
		t.Fatalf("clTRID missing:\n%s", s)
	}
	if _, err := uuid.Parse(s[start:end]); err != nil {
		t.Fatalf("default clTRID %q is not a uuid: %v", s[start:end], err)
	}
	if !strings.Contains(logs.String(), "server echoed a different clTRID") {
		t.Fatalf("expected mismatch warning, logs=%s", logs.String())
	}
}

func TestObserverSeesEveryTransaction(t *testing.T) {
	testlog.Start(t)
	var traces []Trace
	fail := false
	c := NewClient(TransportFunc(func(context.Context, []byte) ([]byte, error) {
		if fail {
			return nil, errors.New("broken pipe")
		}
		return reply("2201", "id-1"), nil
	}), WithTrIDSource(func() string { return "id-1" }), WithObserver(func(tr Trace) {
		traces = append(traces, tr)
	}))

	_, _ = Transact(context.Background(), c, New[pingResult](pingCommand{}))
	fail = true
	_, _ = Transact(context.Background(), c, New[pingResult](pingCommand{}))

	if len(traces) != 2 {
		t.Fatalf("expected 2 traces, got %d", len(traces))
	}
	if traces[0].Command != "test:ping" || traces[0].Code != AuthorizationError || traces[0].ClientID != "id-1" {
		t.Fatalf("unexpected first trace %+v", traces[0])
	}
	if !errors.As(traces[0].Err, new(CommandError)) {
		t.Fatalf("first trace should carry the CommandError, got %v", traces[0].Err)
	}
	if traces[1].Code != 0 || traces[1].Err == nil {
		t.Fatalf("transport failure trace should have no code and an error: %+v", traces[1])
	}
}
