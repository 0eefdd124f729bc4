package xmlcodec

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
)

// Encoder writes a type's element tree, including the namespace declarations
// its root element needs, at the writer's current position.
type Encoder interface {
	EncodeXML(w *Writer) error
}

// Decoder reads a type from the container node that holds its root element.
type Decoder interface {
	DecodeXML(parent *Node) error
}

var ErrUnbalanced = errors.New("xmlcodec: unbalanced end element")

// Writer emits XML tokens. Names are written verbatim so callers control
// prefixes ("domain:name"). The first error is sticky.
type Writer struct {
	enc  *xml.Encoder
	open []xml.Name
	err  error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: xml.NewEncoder(w)}
}

// Start opens name with attrs.
func (w *Writer) Start(name string, attrs ...xml.Attr) {
	if w.err != nil {
		return
	}
	n := xml.Name{Local: name}
	w.err = w.enc.EncodeToken(xml.StartElement{Name: n, Attr: attrs})
	w.open = append(w.open, n)
}

// End closes the innermost open element.
func (w *Writer) End() {
	if w.err != nil {
		return
	}
	if len(w.open) == 0 {
		w.err = ErrUnbalanced
		return
	}
	n := w.open[len(w.open)-1]
	w.open = w.open[:len(w.open)-1]
	w.err = w.enc.EncodeToken(xml.EndElement{Name: n})
}

// Element writes <name attrs>text</name>.
func (w *Writer) Element(name string, text string, attrs ...xml.Attr) {
	w.Start(name, attrs...)
	if w.err == nil && text != "" {
		w.err = w.enc.EncodeToken(xml.CharData(text))
	}
	w.End()
}

// Empty writes an element with no content.
func (w *Writer) Empty(name string, attrs ...xml.Attr) {
	w.Start(name, attrs...)
	w.End()
}

// Encode runs v against the writer unless an earlier token failed.
func (w *Writer) Encode(v Encoder) {
	if w.err != nil {
		return
	}
	if err := v.EncodeXML(w); err != nil && w.err == nil {
		w.err = err
	}
}

func (w *Writer) Err() error {
	return w.err
}

// Flush checks balance and pushes buffered tokens to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if len(w.open) != 0 {
		return ErrUnbalanced
	}
	return w.enc.Flush()
}

// Attr builds an attribute with a verbatim name.
func Attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// DefaultNamespace declares uri as the default namespace of an element.
func DefaultNamespace(uri string) xml.Attr {
	return Attr("xmlns", uri)
}

// PrefixNamespace binds prefix to uri on an element.
func PrefixNamespace(prefix, uri string) xml.Attr {
	return Attr("xmlns:"+prefix, uri)
}

// Prefixed joins prefix and local into a qualified name.
func Prefixed(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

// Marshal encodes v as a standalone fragment.
func Marshal(v Encoder) ([]byte, error) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Encode(v)
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses a fragment and hands its container to v.
func Unmarshal(data []byte, v Decoder) error {
	root, err := Parse(data)
	if err != nil {
		return err
	}
	return v.DecodeXML(root)
}
