// Package domain implements the domain object commands of RFC 5731 and the
// compile-time list of extensions each command accepts.
package domain

import (
	"errors"
	"strconv"
	"time"

	"github.com/danmuck/eppctl/internal/epp"
	"github.com/danmuck/eppctl/internal/epp/xmlcodec"
)

const (
	XMLNS  = "urn:ietf:params:xml:ns:domain-1.0"
	Prefix = "domain"
)

var (
	ErrNoNames     = errors.New("domain: check needs at least one name")
	ErrNoDomain    = errors.New("domain: missing domain name")
	ErrEmptyUpdate = errors.New("domain: update needs add, rem or chg")
)

// Marker interfaces. An extension declares the commands it may accompany by
// implementing the matching method.
type (
	CheckExtension  interface{ AccompaniesDomainCheck() }
	InfoExtension   interface{ AccompaniesDomainInfo() }
	UpdateExtension interface{ AccompaniesDomainUpdate() }
)

type CheckCompanion[R any] interface {
	epp.Extension[R]
	CheckExtension
}

type InfoCompanion[R any] interface {
	epp.Extension[R]
	InfoExtension
}

type UpdateCompanion[R any] interface {
	epp.Extension[R]
	UpdateExtension
}

// CheckWith binds ext to cmd. Only declared companions compile.
func CheckWith[R any](cmd Check, ext CheckCompanion[R]) epp.Request[CheckResult, R] {
	return epp.MustAttach[CheckResult, R](cmd, ext)
}

// InfoWith binds ext to cmd. Only declared companions compile.
func InfoWith[R any](cmd Info, ext InfoCompanion[R]) epp.Request[InfoResult, R] {
	return epp.MustAttach[InfoResult, R](cmd, ext)
}

// UpdateWith binds ext to cmd. Only declared companions compile.
func UpdateWith[R any](cmd Update, ext UpdateCompanion[R]) epp.Request[epp.NoResult, R] {
	return epp.MustAttach[epp.NoResult, R](cmd, ext)
}

func accepts[M any](ext any) bool {
	switch ext.(type) {
	case epp.NoExtension, *epp.NoExtension:
		return true
	}
	_, ok := ext.(M)
	return ok
}

func tag(local string) string {
	return xmlcodec.Prefixed(Prefix, local)
}

func writeAuthInfo(w *xmlcodec.Writer, pw string) {
	if pw == "" {
		return
	}
	w.Start(tag("authInfo"))
	w.Element(tag("pw"), pw)
	w.End()
}

func parseAvail(raw string) (bool, error) {
	switch raw {
	case "1", "true":
		return true, nil
	case "0", "false":
		return false, nil
	}
	return false, xmlcodec.Invalid("name", "avail "+strconv.Quote(raw))
}

func parseDate(el *xmlcodec.Node, local string) (time.Time, error) {
	raw := el.ChildText(XMLNS, local)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, xmlcodec.Invalid(local, err.Error())
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
