package rgp

import (
	"github.com/danmuck/eppctl/internal/epp/xmlcodec"
)

const restoreOp = "request"

// RestoreRequest is <update><restore op="request"/></update>. It rides on
// domain:update, and on domain:info to read the grace period state.
type RestoreRequest struct{}

func NewRestoreRequest() RestoreRequest {
	return RestoreRequest{}
}

func (RestoreRequest) AccompaniesDomainUpdate() {}
func (RestoreRequest) AccompaniesDomainInfo()   {}

func (RestoreRequest) EncodeXML(w *xmlcodec.Writer) error {
	w.Start("update", xmlcodec.DefaultNamespace(XMLNS))
	w.Empty("restore", xmlcodec.Attr("op", restoreOp))
	w.End()
	return w.Err()
}

func (r *RestoreRequest) DecodeXML(parent *xmlcodec.Node) error {
	el, err := parent.Require(XMLNS, "update")
	if err != nil {
		return err
	}
	restore, err := el.Require(XMLNS, "restore")
	if err != nil {
		return err
	}
	op, err := restore.RequireAttr("op")
	if err != nil {
		return err
	}
	if op != restoreOp {
		return xmlcodec.Invalid("restore", "op "+op)
	}
	*r = RestoreRequest{}
	return nil
}

// DecodeResponse reads whichever result shape the registry returned.
func (RestoreRequest) DecodeResponse(ext *xmlcodec.Node) (Response, error) {
	return responses.Resolve(ext)
}

// Response is one of UpdateData or InfoData.
type Response interface {
	Statuses() []Status
	rgpResponse()
}

// UpdateData is <upData>, returned for domain:update.
type UpdateData struct {
	Status []Status
}

// InfoData is <infData>, returned for domain:info.
type InfoData struct {
	Status []Status
}

func (d UpdateData) Statuses() []Status { return d.Status }
func (d InfoData) Statuses() []Status   { return d.Status }

func (UpdateData) rgpResponse() {}
func (InfoData) rgpResponse()   {}

func (d UpdateData) EncodeXML(w *xmlcodec.Writer) error {
	w.Start("upData", xmlcodec.DefaultNamespace(XMLNS))
	writeStatuses(w, d.Status)
	w.End()
	return w.Err()
}

func (d *UpdateData) DecodeXML(parent *xmlcodec.Node) error {
	el, err := parent.Require(XMLNS, "upData")
	if err != nil {
		return err
	}
	d.Status, err = readStatuses(el)
	return err
}

func (d InfoData) EncodeXML(w *xmlcodec.Writer) error {
	w.Start("infData", xmlcodec.DefaultNamespace(XMLNS))
	writeStatuses(w, d.Status)
	w.End()
	return w.Err()
}

func (d *InfoData) DecodeXML(parent *xmlcodec.Node) error {
	el, err := parent.Require(XMLNS, "infData")
	if err != nil {
		return err
	}
	d.Status, err = readStatuses(el)
	return err
}

var responses = xmlcodec.Resolver[Response]{
	Space: XMLNS,
	Candidates: []xmlcodec.Candidate[Response]{
		{Local: "upData", Decode: func(el *xmlcodec.Node) (Response, error) {
			s, err := readStatuses(el)
			if err != nil {
				return nil, err
			}
			return UpdateData{Status: s}, nil
		}},
		{Local: "infData", Decode: func(el *xmlcodec.Node) (Response, error) {
			s, err := readStatuses(el)
			if err != nil {
				return nil, err
			}
			return InfoData{Status: s}, nil
		}},
	},
}
