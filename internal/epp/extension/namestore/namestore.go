// Package namestore implements the Verisign NameStore subproduct selector.
package namestore

import (
	"github.com/danmuck/eppctl/internal/epp/xmlcodec"
)

const (
	XMLNS  = "http://www.verisign-grs.com/epp/namestoreExt-1.1"
	Prefix = "namestoreExt"
)

// NameStore selects the registry sub-catalog (e.g. "com", "net") a command
// targets. Registries echo it back in the response.
type NameStore struct {
	SubProduct string
}

func New(subProduct string) NameStore {
	return NameStore{SubProduct: subProduct}
}

func (NameStore) AccompaniesDomainCheck()  {}
func (NameStore) AccompaniesDomainInfo()   {}
func (NameStore) AccompaniesDomainUpdate() {}

func (n NameStore) EncodeXML(w *xmlcodec.Writer) error {
	w.Start(xmlcodec.Prefixed(Prefix, "namestoreExt"), xmlcodec.PrefixNamespace(Prefix, XMLNS))
	w.Element(xmlcodec.Prefixed(Prefix, "subProduct"), n.SubProduct)
	w.End()
	return w.Err()
}

func (n *NameStore) DecodeXML(parent *xmlcodec.Node) error {
	el, err := parent.Require(XMLNS, "namestoreExt")
	if err != nil {
		return err
	}
	sp, err := el.RequireText(XMLNS, "subProduct")
	if err != nil {
		return err
	}
	n.SubProduct = sp
	return nil
}

func (NameStore) DecodeResponse(ext *xmlcodec.Node) (NameStore, error) {
	var out NameStore
	err := out.DecodeXML(ext)
	return out, err
}
