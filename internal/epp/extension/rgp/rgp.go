// Package rgp implements the registry grace period restore request of
// RFC 3915.
package rgp

import (
	"strconv"

	"github.com/danmuck/eppctl/internal/epp/xmlcodec"
)

const XMLNS = "urn:ietf:params:xml:ns:rgp-1.0"

// Status is a grace period state.
type Status string

const (
	AddPeriod        Status = "addPeriod"
	AutoRenewPeriod  Status = "autoRenewPeriod"
	RenewPeriod      Status = "renewPeriod"
	TransferPeriod   Status = "transferPeriod"
	RedemptionPeriod Status = "redemptionPeriod"
	PendingRestore   Status = "pendingRestore"
	PendingDelete    Status = "pendingDelete"
)

var statuses = map[Status]struct{}{
	AddPeriod:        {},
	AutoRenewPeriod:  {},
	RenewPeriod:      {},
	TransferPeriod:   {},
	RedemptionPeriod: {},
	PendingRestore:   {},
	PendingDelete:    {},
}

// ParseStatus accepts only the RFC 3915 tokens.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if _, ok := statuses[s]; !ok {
		return "", xmlcodec.Invalid("rgpStatus", "status "+strconv.Quote(raw))
	}
	return s, nil
}

func (s Status) Valid() bool {
	_, ok := statuses[s]
	return ok
}

func writeStatuses(w *xmlcodec.Writer, list []Status) {
	for _, s := range list {
		w.Empty("rgpStatus", xmlcodec.Attr("s", string(s)))
	}
}

func readStatuses(el *xmlcodec.Node) ([]Status, error) {
	nodes := el.All(XMLNS, "rgpStatus")
	if len(nodes) == 0 {
		return nil, nil
	}
	out := make([]Status, 0, len(nodes))
	for _, n := range nodes {
		raw, err := n.RequireAttr("s")
		if err != nil {
			return nil, err
		}
		s, err := ParseStatus(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
