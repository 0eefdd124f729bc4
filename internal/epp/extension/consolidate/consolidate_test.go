package consolidate

import (
	"errors"
	"strings"
	"testing"

	"github.com/danmuck/eppctl/internal/epp"
	"github.com/danmuck/eppctl/internal/epp/domain"
	"github.com/danmuck/eppctl/internal/epp/monthday"
	"github.com/danmuck/eppctl/internal/epp/xmlcodec"
	"github.com/danmuck/eppctl/internal/testutil/testlog"
)

func mustMonthDay(t *testing.T, month, day int) monthday.MonthDay {
	t.Helper()
	md, err := monthday.New(month, day)
	if err != nil {
		t.Fatalf("monthday %d-%d: %v", month, day, err)
	}
	return md
}

func TestUpdateEncode(t *testing.T) {
	testlog.Start(t)
	out, err := xmlcodec.Marshal(New(mustMonthDay(t, 5, 31)))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `<update xmlns="http://www.verisign.com/epp/sync-1.0"><expMonthDay>--05-31</expMonthDay></update>`
	if string(out) != want {
		t.Fatalf("unexpected fragment:\n got=%s\nwant=%s", out, want)
	}
}

func TestUpdateRejectsUnsetExpiration(t *testing.T) {
	testlog.Start(t)
	_, err := xmlcodec.Marshal(Update{})
	var vErr monthday.ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "expMonthDay" {
		t.Fatalf("expected monthday.ValidationError, got %v", err)
	}
}

func TestDecodeNamespaceForms(t *testing.T) {
	testlog.Start(t)
	want := NewWithNameStore(mustMonthDay(t, 5, 31), "com")
	forms := []string{
		`<sync:update xmlns:sync="http://www.verisign.com/epp/sync-1.0"><sync:expMonthDay>--05-31</sync:expMonthDay>` +
			`<namestoreExt:namestoreExt xmlns:namestoreExt="http://www.verisign-grs.com/epp/namestoreExt-1.1">` +
			`<namestoreExt:subProduct>com</namestoreExt:subProduct></namestoreExt:namestoreExt></sync:update>`,
		`<update xmlns="http://www.verisign.com/epp/sync-1.0"><expMonthDay>--05-31</expMonthDay>` +
			`<namestoreExt xmlns="http://www.verisign-grs.com/epp/namestoreExt-1.1"><subProduct>com</subProduct></namestoreExt></update>`,
		`<update><expMonthDay>--05-31</expMonthDay><namestoreExt><subProduct>com</subProduct></namestoreExt></update>`,
	}
	for _, form := range forms {
		var got UpdateWithNameStore
		if err := xmlcodec.Unmarshal([]byte(form), &got); err != nil {
			t.Fatalf("decode %s: %v", form, err)
		}
		if got != want {
			t.Fatalf("decode %s: got=%+v want=%+v", form, got, want)
		}

		var plain Update
		if err := xmlcodec.Unmarshal([]byte(form), &plain); err != nil {
			t.Fatalf("decode %s as Update: %v", form, err)
		}
		if plain != want.Sync {
			t.Fatalf("decode %s as Update: got=%+v want=%+v", form, plain, want.Sync)
		}
	}
}

func TestUpdateWithNameStoreHasTwoDirectChildren(t *testing.T) {
	testlog.Start(t)
	out, err := xmlcodec.Marshal(NewWithNameStore(mustMonthDay(t, 5, 31), "com"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	root, err := xmlcodec.Parse(out)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected a single <update>, got %d roots", len(root.Children))
	}
	update := root.Children[0]
	if update.Name.Local != "update" || update.Name.Space != XMLNS {
		t.Fatalf("unexpected root %+v", update.Name)
	}
	if len(update.Children) != 2 {
		t.Fatalf("expected 2 children, got %d: %s", len(update.Children), out)
	}
	if update.Children[0].Name.Local != "expMonthDay" || update.Children[0].Text != "--05-31" {
		t.Fatalf("unexpected first child %+v", update.Children[0])
	}
	ns := update.Children[1]
	if ns.Name.Local != "namestoreExt" || ns.ChildText("", "subProduct") != "com" {
		t.Fatalf("unexpected second child %+v", ns)
	}
}

func TestUpdateWithNameStoreRoundTrip(t *testing.T) {
	testlog.Start(t)
	md, err := monthday.NewWithOffset(12, 1, monthday.UTC)
	if err != nil {
		t.Fatalf("monthday: %v", err)
	}
	in := NewWithNameStore(md, "net")
	data, err := xmlcodec.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out UpdateWithNameStore
	if err := xmlcodec.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: got=%+v want=%+v", out, in)
	}
}

func TestDomainUpdateDocument(t *testing.T) {
	testlog.Start(t)
	req := domain.UpdateWith(domain.NewUpdate("eppdev.com"), New(mustMonthDay(t, 5, 31)))
	doc, err := req.Encode("cltrid:1626454866")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `<extension><update xmlns="http://www.verisign.com/epp/sync-1.0"><expMonthDay>--05-31</expMonthDay></update></extension>`
	if !strings.Contains(string(doc), want) {
		t.Fatalf("missing sync extension:\n%s", doc)
	}

	resp, err := req.Decode([]byte(`<epp xmlns="urn:ietf:params:xml:ns:epp-1.0"><response>
<result code="1000"><msg>Command completed successfully</msg></result>
<trID><clTRID>cltrid:1626454866</clTRID><svTRID>RO-6879-1627224678242975</svTRID></trID>
</response></epp>`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Extension != nil {
		t.Fatalf("expected no extension, got %+v", resp.Extension)
	}
	var _ *epp.Response[epp.NoResult, epp.NoExtension] = resp
}

func TestDomainUpdateWithNameStoreResponse(t *testing.T) {
	testlog.Start(t)
	req := domain.UpdateWith(domain.NewUpdate("eppdev.com"), NewWithNameStore(mustMonthDay(t, 5, 31), "com"))
	resp, err := req.Decode([]byte(`<epp xmlns="urn:ietf:params:xml:ns:epp-1.0"><response>
<result code="1000"><msg>Command completed successfully</msg></result>
<extension><namestoreExt:namestoreExt xmlns:namestoreExt="http://www.verisign-grs.com/epp/namestoreExt-1.1">
<namestoreExt:subProduct>com</namestoreExt:subProduct></namestoreExt:namestoreExt></extension>
<trID><clTRID>cltrid:1626454866</clTRID><svTRID>RO-6879-1627224678242975</svTRID></trID>
</response></epp>`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Extension == nil || resp.Extension.SubProduct != "com" {
		t.Fatalf("unexpected extension %+v", resp.Extension)
	}
}
