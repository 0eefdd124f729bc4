// Package consolidate implements the Verisign ConsoliDate extension, which
// moves a domain's expiration to a chosen month and day on domain:update.
package consolidate

import (
	"github.com/danmuck/eppctl/internal/epp"
	"github.com/danmuck/eppctl/internal/epp/extension/namestore"
	"github.com/danmuck/eppctl/internal/epp/monthday"
	"github.com/danmuck/eppctl/internal/epp/xmlcodec"
)

const XMLNS = "http://www.verisign.com/epp/sync-1.0"

// Update is <update><expMonthDay>. The registry answers with no extension.
type Update struct {
	Expiration monthday.MonthDay
}

func New(expiration monthday.MonthDay) Update {
	return Update{Expiration: expiration}
}

func (Update) AccompaniesDomainUpdate() {}

func (u Update) EncodeXML(w *xmlcodec.Writer) error {
	w.Start("update", xmlcodec.DefaultNamespace(XMLNS))
	if err := u.encodeMembers(w); err != nil {
		return err
	}
	w.End()
	return w.Err()
}

func (u Update) encodeMembers(w *xmlcodec.Writer) error {
	if u.Expiration.IsZero() {
		return monthday.ValidationError{Field: "expMonthDay", Reason: "unset"}
	}
	w.Element("expMonthDay", u.Expiration.String())
	return w.Err()
}

func (u *Update) DecodeXML(parent *xmlcodec.Node) error {
	el, err := parent.Require(XMLNS, "update")
	if err != nil {
		return err
	}
	return u.decodeMembers(el)
}

func (u *Update) decodeMembers(el *xmlcodec.Node) error {
	raw, err := el.RequireText(XMLNS, "expMonthDay")
	if err != nil {
		return err
	}
	md, err := monthday.Parse(raw)
	if err != nil {
		return xmlcodec.Invalid("expMonthDay", err.Error())
	}
	u.Expiration = md
	return nil
}

func (Update) DecodeResponse(*xmlcodec.Node) (epp.NoExtension, error) {
	return epp.NoExtension{}, nil
}

// UpdateWithNameStore is Update plus a subproduct selector. Both members are
// written as children of the same <update> element.
type UpdateWithNameStore struct {
	Sync      Update
	NameStore namestore.NameStore
}

func NewWithNameStore(expiration monthday.MonthDay, subProduct string) UpdateWithNameStore {
	return UpdateWithNameStore{Sync: New(expiration), NameStore: namestore.New(subProduct)}
}

func (UpdateWithNameStore) AccompaniesDomainUpdate() {}

func (u UpdateWithNameStore) EncodeXML(w *xmlcodec.Writer) error {
	w.Start("update", xmlcodec.DefaultNamespace(XMLNS))
	if err := u.Sync.encodeMembers(w); err != nil {
		return err
	}
	w.Encode(u.NameStore)
	w.End()
	return w.Err()
}

func (u *UpdateWithNameStore) DecodeXML(parent *xmlcodec.Node) error {
	el, err := parent.Require(XMLNS, "update")
	if err != nil {
		return err
	}
	if err := u.Sync.decodeMembers(el); err != nil {
		return err
	}
	return u.NameStore.DecodeXML(el)
}

// DecodeResponse reads the subproduct the registry echoes back.
func (UpdateWithNameStore) DecodeResponse(ext *xmlcodec.Node) (namestore.NameStore, error) {
	return namestore.NameStore{}.DecodeResponse(ext)
}
