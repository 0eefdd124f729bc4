package domain

import (
	"github.com/danmuck/eppctl/internal/epp/xmlcodec"
)

// Check asks for the availability of one or more names.
type Check struct {
	Names []string
}

func NewCheck(names ...string) Check {
	return Check{Names: names}
}

func (Check) Name() string { return "domain:check" }

func (Check) Accepts(ext any) bool { return accepts[CheckExtension](ext) }

func (c Check) EncodeXML(w *xmlcodec.Writer) error {
	if len(c.Names) == 0 {
		return ErrNoNames
	}
	w.Start("check")
	w.Start(tag("check"), xmlcodec.PrefixNamespace(Prefix, XMLNS))
	for _, name := range c.Names {
		w.Element(tag("name"), name)
	}
	w.End()
	w.End()
	return w.Err()
}

func (Check) DecodeResult(resData *xmlcodec.Node) (CheckResult, error) {
	var r CheckResult
	err := r.DecodeXML(resData)
	return r, err
}

// CheckItem is one <domain:cd> entry.
type CheckItem struct {
	Name      string
	Available bool
	Reason    string
}

// CheckResult is <domain:chkData>.
type CheckResult struct {
	Items []CheckItem
}

// Available reports the availability of name and whether it was listed.
func (r CheckResult) Available(name string) (bool, bool) {
	for _, it := range r.Items {
		if it.Name == name {
			return it.Available, true
		}
	}
	return false, false
}

func (r CheckResult) EncodeXML(w *xmlcodec.Writer) error {
	w.Start(tag("chkData"), xmlcodec.PrefixNamespace(Prefix, XMLNS))
	for _, it := range r.Items {
		avail := "0"
		if it.Available {
			avail = "1"
		}
		w.Start(tag("cd"))
		w.Element(tag("name"), it.Name, xmlcodec.Attr("avail", avail))
		if it.Reason != "" {
			w.Element(tag("reason"), it.Reason)
		}
		w.End()
	}
	w.End()
	return w.Err()
}

func (r *CheckResult) DecodeXML(parent *xmlcodec.Node) error {
	chk, err := parent.Require(XMLNS, "chkData")
	if err != nil {
		return err
	}
	items := make([]CheckItem, 0, len(chk.Children))
	for _, cd := range chk.All(XMLNS, "cd") {
		name, err := cd.Require(XMLNS, "name")
		if err != nil {
			return err
		}
		raw, err := name.RequireAttr("avail")
		if err != nil {
			return err
		}
		avail, err := parseAvail(raw)
		if err != nil {
			return err
		}
		items = append(items, CheckItem{
			Name:      name.Text,
			Available: avail,
			Reason:    cd.ChildText(XMLNS, "reason"),
		})
	}
	r.Items = items
	return nil
}
