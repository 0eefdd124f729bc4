package xmlcodec

import (
	"errors"
	"testing"

	"github.com/danmuck/eppctl/internal/testutil/testlog"
)

const testNS = "urn:test:contact"

func TestParseResolvesDeclaredPrefix(t *testing.T) {
	testlog.Start(t)
	root, err := Parse([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<c:contact xmlns:c="urn:test:contact"><c:id> sh8013 </c:id></c:contact>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	el := root.Child(testNS, "contact")
	if el == nil || el.Name.Space != testNS {
		t.Fatalf("expected namespaced contact, got %+v", el)
	}
	if got := el.ChildText(testNS, "id"); got != "sh8013" {
		t.Fatalf("text not trimmed: %q", got)
	}
}

func TestLookupFallsBackToBareName(t *testing.T) {
	testlog.Start(t)
	forms := []string{
		`<c:contact xmlns:c="urn:test:contact"><c:id>x1</c:id></c:contact>`,
		`<contact xmlns="urn:test:contact"><id>x1</id></contact>`,
		`<contact><id>x1</id></contact>`,
		`<c:contact><c:id>x1</c:id></c:contact>`,
	}
	for _, form := range forms {
		var c contact
		if err := Unmarshal([]byte(form), &c); err != nil {
			t.Fatalf("decode %s: %v", form, err)
		}
		if c.ID != "x1" {
			t.Fatalf("decode %s: got %q", form, c.ID)
		}
	}
}

func TestChildPrefersNamespacedForm(t *testing.T) {
	testlog.Start(t)
	root, err := Parse([]byte(`<r xmlns:a="urn:a"><id>bare</id><a:id>ns</a:id></r>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	r := root.Child("", "r")
	if got := r.ChildText("urn:a", "id"); got != "ns" {
		t.Fatalf("expected namespaced child first, got %q", got)
	}
	if got := r.All("urn:a", "id"); len(got) != 2 || got[0].Text != "bare" || got[1].Text != "ns" {
		t.Fatalf("All should keep bare and namespaced children in order, got %d", len(got))
	}
	if got := r.All("urn:b", "id"); len(got) != 1 || got[0].Text != "bare" {
		t.Fatalf("All should keep only the bare child for another namespace, got %d", len(got))
	}

	root, err = Parse([]byte(`<r xmlns:a="urn:a"><a:id>1</a:id><a:id>2</a:id></r>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := len(root.Child("", "r").All("urn:b", "id")); got != 2 {
		t.Fatalf("All should fall back to the alias set, got %d", got)
	}
}

func TestAttrAliasing(t *testing.T) {
	testlog.Start(t)
	root, err := Parse([]byte(`<r xmlns:x="urn:x"><a op="request"/><b x:op="ack"/><c xmlns:op="urn:ignored"/></r>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	r := root.Child("", "r")
	if v, ok := r.Child("", "a").Attr("op"); !ok || v != "request" {
		t.Fatalf("plain attr: %q %v", v, ok)
	}
	if v, ok := r.Child("", "b").Attr("op"); !ok || v != "ack" {
		t.Fatalf("prefixed attr: %q %v", v, ok)
	}
	if _, err := r.Child("", "c").RequireAttr("op"); !errors.Is(err, ErrMissingAttribute) {
		t.Fatalf("namespace declaration must not match, got %v", err)
	}
}

func TestRequireReportsElement(t *testing.T) {
	testlog.Start(t)
	root, err := Parse([]byte(`<r/>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = root.Child("", "r").Require(testNS, "id")
	var pe ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %T", err)
	}
	if pe.Element != "id" || !errors.Is(err, ErrMissingElement) {
		t.Fatalf("unexpected parse error: %+v", pe)
	}
}

func TestParseMalformed(t *testing.T) {
	testlog.Start(t)
	for _, doc := range []string{``, `<a><b></a>`, `not xml`} {
		if _, err := Parse([]byte(doc)); !errors.Is(err, ErrMalformed) {
			t.Fatalf("Parse(%q): expected ErrMalformed, got %v", doc, err)
		}
	}
}
