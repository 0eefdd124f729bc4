package xmlcodec

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// Candidate pairs a root element name with the decoder for that shape.
type Candidate[T any] struct {
	Local  string
	Decode func(el *Node) (T, error)
}

// Resolver picks one of several shapes by which root element is present.
// Candidates are tried in order.
type Resolver[T any] struct {
	Space      string
	Candidates []Candidate[T]
}

// Resolve finds the candidate element among parent's children and decodes it.
// No match fails with ErrUnrecognizedShape. More than one match fails with
// ErrAmbiguousShape rather than picking one.
func (r Resolver[T]) Resolve(parent *Node) (T, error) {
	var zero T
	var hit *Candidate[T]
	var el *Node
	var seen []string
	for i := range r.Candidates {
		c := &r.Candidates[i]
		n := parent.Child(r.Space, c.Local)
		if n == nil {
			continue
		}
		seen = append(seen, c.Local)
		if hit == nil {
			hit, el = c, n
		}
	}
	switch len(seen) {
	case 0:
		return zero, ParseError{
			Element: parent.Local(),
			Kind:    ErrUnrecognizedShape,
			Reason:  "expected one of " + strings.Join(r.names(), ", "),
		}
	case 1:
		log.Debug().Str("shape", hit.Local).Str("space", r.Space).Msg("xmlcodec: resolved shape")
		return hit.Decode(el)
	default:
		log.Warn().Strs("shapes", seen).Str("space", r.Space).Msg("xmlcodec: several shapes present")
		return zero, ParseError{
			Element: parent.Local(),
			Kind:    ErrAmbiguousShape,
			Reason:  "found " + strings.Join(seen, ", "),
		}
	}
}

func (r Resolver[T]) names() []string {
	out := make([]string, 0, len(r.Candidates))
	for _, c := range r.Candidates {
		out = append(out, c.Local)
	}
	return out
}
