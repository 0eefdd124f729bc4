package main

import (
	"bytes"
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/danmuck/eppctl/internal/epp/transport"
	"github.com/danmuck/eppctl/internal/testutil/testlog"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestRenderCheckWithSubProduct(t *testing.T) {
	testlog.Start(t)
	out, err := runCLI(t, "--cltrid", "T-1", "check", "--subproduct", "com", "a.com", "b.com")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{
		"<domain:name>a.com</domain:name><domain:name>b.com</domain:name>",
		"<namestoreExt:subProduct>com</namestoreExt:subProduct>",
		"<clTRID>T-1</clTRID>",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderSyncAndRestore(t *testing.T) {
	testlog.Start(t)
	for _, date := range [][]string{{"05-31"}, {"--", "--05-31"}} {
		args := append([]string{"sync", "eppdev.com"}, date...)
		out, err := runCLI(t, args...)
		if err != nil {
			t.Fatalf("sync %v: %v", date, err)
		}
		if !strings.Contains(out, `<update xmlns="http://www.verisign.com/epp/sync-1.0"><expMonthDay>--05-31</expMonthDay></update>`) {
			t.Fatalf("unexpected sync document:\n%s", out)
		}
	}
	out, err := runCLI(t, "update-restore", "eppdev.com")
	if err != nil {
		t.Fatalf("update-restore: %v", err)
	}
	if !strings.Contains(out, `<restore op="request"></restore>`) {
		t.Fatalf("unexpected restore document:\n%s", out)
	}
}

func TestRenderAck(t *testing.T) {
	testlog.Start(t)
	out, err := runCLI(t, "ack", "12345")
	if err != nil {
		t.Fatalf("ack: %v", err)
	}
	if !strings.Contains(out, `<poll op="ack" msgID="12345"></poll>`) || strings.Contains(out, "<extension>") {
		t.Fatalf("unexpected ack document:\n%s", out)
	}
}

func TestUsageErrors(t *testing.T) {
	testlog.Start(t)
	cases := [][]string{
		{"frobnicate"},
		{"check"},
		{"info", "a.com", "b.com"},
		{"ack", "x12"},
		{"sync", "a.com"},
		{"sync", "a.com", "02-30"},
	}
	for _, args := range cases {
		if _, err := runCLI(t, args...); err == nil {
			t.Fatalf("%v: expected an error", args)
		}
	}
	for _, args := range [][]string{
		{"info", "--rgp", "--subproduct", "com", "a.com"},
		{"--send", "check", "a.com"},
		{"ack", "4294967296"},
	} {
		if _, err := runCLI(t, args...); !errors.Is(err, errUsage) {
			t.Fatalf("%v: expected usage error, got %v", args, err)
		}
	}
}

func TestInitAndValidate(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "eppctl.toml")
	if _, err := runCLI(t, "--config", path, "init"); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := runCLI(t, "--config", path, "init"); err == nil {
		t.Fatal("init without --force should refuse to overwrite")
	}
	out, err := runCLI(t, "--config", path, "validate")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "local\t127.0.0.1:7000\ttls=false") || !strings.Contains(out, "verisign\tepp.example.net:700\ttls=true") {
		t.Fatalf("unexpected validate output:\n%s", out)
	}
}

func TestSendCheckAgainstFakeRegistry(t *testing.T) {
	testlog.Start(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		limits := transport.DefaultLimits()
		_ = transport.WriteFrame(conn, []byte(`<epp xmlns="urn:ietf:params:xml:ns:epp-1.0"><greeting/></epp>`), limits)
		if _, err := transport.ReadFrame(conn, limits); err != nil {
			return
		}
		_ = transport.WriteFrame(conn, []byte(`<epp xmlns="urn:ietf:params:xml:ns:epp-1.0"><response>
<result code="1000"><msg>Command completed successfully</msg></result>
<resData><domain:chkData xmlns:domain="urn:ietf:params:xml:ns:domain-1.0">
<domain:cd><domain:name avail="1">a.com</domain:name></domain:cd></domain:chkData></resData>
<trID><clTRID>T-9</clTRID><svTRID>SRV-9</svTRID></trID></response></epp>`), limits)
	}()

	dir := t.TempDir()
	port := ln.Addr().(*net.TCPAddr).Port
	path := filepath.Join(dir, "eppctl.toml")
	body := "[registry.fake]\nhost = \"127.0.0.1\"\nport = " + strconv.Itoa(port) + "\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	metrics := filepath.Join(dir, "eppctl.prom")
	out, err := runCLI(t, "--config", path, "--registry", "fake", "--send", "--cltrid", "T-9", "--metrics-file", metrics, "check", "a.com")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	for _, want := range []string{"result:\t1000 Command completed successfully", "a.com\tavailable", "trid:\tT-9 / SRV-9"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	data, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(data), `eppctl_epp_transactions_total{code="1000",command="domain:check"}`) {
		t.Fatalf("metrics missing transaction:\n%s", data)
	}
}
