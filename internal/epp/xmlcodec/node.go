package xmlcodec

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// Node is one parsed element. Name.Space holds the resolved namespace URI, or
// the literal prefix when the document never declared it.
type Node struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Text     string
	Children []*Node
}

// Parse reads data into a tree. The returned node is an unnamed container
// whose children are the top-level elements, so fragments with several
// sibling roots parse too.
func Parse(data []byte) (*Node, error) {
	d := xml.NewDecoder(bytes.NewReader(data))
	root := &Node{}
	stack := []*Node{root}
	text := []*strings.Builder{{}}
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, ParseError{Kind: ErrMalformed, Reason: err.Error()}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name, Attrs: append([]xml.Attr(nil), t.Attr...)}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, n)
			stack = append(stack, n)
			text = append(text, &strings.Builder{})
		case xml.EndElement:
			n := stack[len(stack)-1]
			n.Text = strings.TrimSpace(text[len(text)-1].String())
			stack = stack[:len(stack)-1]
			text = text[:len(text)-1]
		case xml.CharData:
			text[len(text)-1].Write(t)
		}
	}
	if len(stack) != 1 {
		return nil, ParseError{Kind: ErrMalformed, Reason: "unclosed element"}
	}
	if len(root.Children) == 0 {
		return nil, ParseError{Kind: ErrMalformed, Reason: "no elements"}
	}
	return root, nil
}

// Local returns the element name without namespace, for error messages.
func (n *Node) Local() string {
	if n == nil {
		return ""
	}
	return n.Name.Local
}

// Child returns the first child named local in space, falling back to the
// first child with that local name in any namespace.
func (n *Node) Child(space, local string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name.Local == local && c.Name.Space == space {
			return c
		}
	}
	for _, c := range n.Children {
		if c.Name.Local == local {
			return c
		}
	}
	return nil
}

// All returns the children named local in space together with unqualified
// children of that name, in document order. When neither form is present it
// falls back to every child with that local name.
func (n *Node) All(space, local string) []*Node {
	if n == nil {
		return nil
	}
	var matched, alias []*Node
	for _, c := range n.Children {
		if c.Name.Local != local {
			continue
		}
		if c.Name.Space == space || c.Name.Space == "" {
			matched = append(matched, c)
		}
		alias = append(alias, c)
	}
	if len(matched) > 0 {
		return matched
	}
	return alias
}

// Require is Child that fails with ErrMissingElement.
func (n *Node) Require(space, local string) (*Node, error) {
	c := n.Child(space, local)
	if c == nil {
		return nil, missing(local)
	}
	return c, nil
}

// ChildText returns the text of Child, or "" when absent.
func (n *Node) ChildText(space, local string) string {
	if c := n.Child(space, local); c != nil {
		return c.Text
	}
	return ""
}

// RequireText is Require followed by reading the child's text.
func (n *Node) RequireText(space, local string) (string, error) {
	c, err := n.Require(space, local)
	if err != nil {
		return "", err
	}
	return c.Text, nil
}

// Attr looks up an unqualified attribute, then any qualified attribute with
// the same local name. Namespace declarations never match.
func (n *Node) Attr(local string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	for _, a := range n.Attrs {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// RequireAttr is Attr that fails with ErrMissingAttribute.
func (n *Node) RequireAttr(local string) (string, error) {
	v, ok := n.Attr(local)
	if !ok {
		return "", ParseError{Element: n.Local(), Kind: ErrMissingAttribute, Reason: local}
	}
	return v, nil
}
