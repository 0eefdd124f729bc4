package domain

import (
	"time"

	"github.com/danmuck/eppctl/internal/epp/xmlcodec"
)

// Host filters accepted by <domain:name hosts="...">.
const (
	HostsAll  = "all"
	HostsDel  = "del"
	HostsSub  = "sub"
	HostsNone = "none"
)

// Info queries one domain. Hosts defaults to "all".
type Info struct {
	Domain   string
	Hosts    string
	AuthInfo string
}

func NewInfo(domain string) Info {
	return Info{Domain: domain, Hosts: HostsAll}
}

func (Info) Name() string { return "domain:info" }

func (Info) Accepts(ext any) bool { return accepts[InfoExtension](ext) }

func (i Info) EncodeXML(w *xmlcodec.Writer) error {
	if i.Domain == "" {
		return ErrNoDomain
	}
	hosts := i.Hosts
	if hosts == "" {
		hosts = HostsAll
	}
	w.Start("info")
	w.Start(tag("info"), xmlcodec.PrefixNamespace(Prefix, XMLNS))
	w.Element(tag("name"), i.Domain, xmlcodec.Attr("hosts", hosts))
	writeAuthInfo(w, i.AuthInfo)
	w.End()
	w.End()
	return w.Err()
}

func (Info) DecodeResult(resData *xmlcodec.Node) (InfoResult, error) {
	var r InfoResult
	err := r.DecodeXML(resData)
	return r, err
}

// Contact is a typed contact reference (admin, tech, billing).
type Contact struct {
	Type string
	ID   string
}

// InfoResult is <domain:infData>.
type InfoResult struct {
	Name        string
	ROID        string
	Statuses    []string
	Registrant  string
	Contacts    []Contact
	NameServers []string
	Hosts       []string
	ClientID    string
	CreatorID   string
	Created     time.Time
	Updated     time.Time
	Expires     time.Time
	AuthInfo    string
}

func (r InfoResult) EncodeXML(w *xmlcodec.Writer) error {
	w.Start(tag("infData"), xmlcodec.PrefixNamespace(Prefix, XMLNS))
	w.Element(tag("name"), r.Name)
	w.Element(tag("roid"), r.ROID)
	for _, s := range r.Statuses {
		w.Empty(tag("status"), xmlcodec.Attr("s", s))
	}
	if r.Registrant != "" {
		w.Element(tag("registrant"), r.Registrant)
	}
	for _, c := range r.Contacts {
		w.Element(tag("contact"), c.ID, xmlcodec.Attr("type", c.Type))
	}
	if len(r.NameServers) > 0 {
		w.Start(tag("ns"))
		for _, ns := range r.NameServers {
			w.Element(tag("hostObj"), ns)
		}
		w.End()
	}
	for _, h := range r.Hosts {
		w.Element(tag("host"), h)
	}
	if r.ClientID != "" {
		w.Element(tag("clID"), r.ClientID)
	}
	if r.CreatorID != "" {
		w.Element(tag("crID"), r.CreatorID)
	}
	for _, d := range []struct {
		local string
		t     time.Time
	}{{"crDate", r.Created}, {"upDate", r.Updated}, {"exDate", r.Expires}} {
		if v := formatDate(d.t); v != "" {
			w.Element(tag(d.local), v)
		}
	}
	writeAuthInfo(w, r.AuthInfo)
	w.End()
	return w.Err()
}

func (r *InfoResult) DecodeXML(parent *xmlcodec.Node) error {
	inf, err := parent.Require(XMLNS, "infData")
	if err != nil {
		return err
	}
	var out InfoResult
	if out.Name, err = inf.RequireText(XMLNS, "name"); err != nil {
		return err
	}
	if out.ROID, err = inf.RequireText(XMLNS, "roid"); err != nil {
		return err
	}
	for _, st := range inf.All(XMLNS, "status") {
		s, err := st.RequireAttr("s")
		if err != nil {
			return err
		}
		out.Statuses = append(out.Statuses, s)
	}
	out.Registrant = inf.ChildText(XMLNS, "registrant")
	for _, c := range inf.All(XMLNS, "contact") {
		typ, err := c.RequireAttr("type")
		if err != nil {
			return err
		}
		out.Contacts = append(out.Contacts, Contact{Type: typ, ID: c.Text})
	}
	if ns := inf.Child(XMLNS, "ns"); ns != nil {
		for _, h := range ns.All(XMLNS, "hostObj") {
			out.NameServers = append(out.NameServers, h.Text)
		}
	}
	for _, h := range inf.All(XMLNS, "host") {
		out.Hosts = append(out.Hosts, h.Text)
	}
	out.ClientID = inf.ChildText(XMLNS, "clID")
	out.CreatorID = inf.ChildText(XMLNS, "crID")
	if out.Created, err = parseDate(inf, "crDate"); err != nil {
		return err
	}
	if out.Updated, err = parseDate(inf, "upDate"); err != nil {
		return err
	}
	if out.Expires, err = parseDate(inf, "exDate"); err != nil {
		return err
	}
	if auth := inf.Child(XMLNS, "authInfo"); auth != nil {
		out.AuthInfo = auth.ChildText(XMLNS, "pw")
	}
	*r = out
	return nil
}
