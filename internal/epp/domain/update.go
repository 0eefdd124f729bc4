package domain

import (
	"github.com/danmuck/eppctl/internal/epp"
	"github.com/danmuck/eppctl/internal/epp/xmlcodec"
)

// Change is the <domain:chg> block. An empty Change is legal and renders as
// an empty element, which extension-only updates (restore, sync) rely on.
type Change struct {
	Registrant string
	AuthInfo   string
}

// Update modifies one domain. Add and Remove list status tokens such as
// "clientHold".
type Update struct {
	Domain string
	Add    []string
	Remove []string
	Change *Change
}

// NewUpdate returns an update with an empty <domain:chg/>.
func NewUpdate(domain string) Update {
	return Update{Domain: domain, Change: &Change{}}
}

func (Update) Name() string { return "domain:update" }

func (Update) Accepts(ext any) bool { return accepts[UpdateExtension](ext) }

func (u Update) EncodeXML(w *xmlcodec.Writer) error {
	if u.Domain == "" {
		return ErrNoDomain
	}
	if len(u.Add) == 0 && len(u.Remove) == 0 && u.Change == nil {
		return ErrEmptyUpdate
	}
	w.Start("update")
	w.Start(tag("update"), xmlcodec.PrefixNamespace(Prefix, XMLNS))
	w.Element(tag("name"), u.Domain)
	writeStatuses(w, "add", u.Add)
	writeStatuses(w, "rem", u.Remove)
	if u.Change != nil {
		w.Start(tag("chg"))
		if u.Change.Registrant != "" {
			w.Element(tag("registrant"), u.Change.Registrant)
		}
		writeAuthInfo(w, u.Change.AuthInfo)
		w.End()
	}
	w.End()
	w.End()
	return w.Err()
}

func (Update) DecodeResult(*xmlcodec.Node) (epp.NoResult, error) {
	return epp.NoResult{}, nil
}

func writeStatuses(w *xmlcodec.Writer, local string, statuses []string) {
	if len(statuses) == 0 {
		return
	}
	w.Start(tag(local))
	for _, s := range statuses {
		w.Empty(tag("status"), xmlcodec.Attr("s", s))
	}
	w.End()
}
