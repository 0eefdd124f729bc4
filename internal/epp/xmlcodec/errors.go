package xmlcodec

import (
	"errors"
	"fmt"
)

var (
	ErrMalformed         = errors.New("xmlcodec: malformed document")
	ErrMissingElement    = errors.New("xmlcodec: missing element")
	ErrMissingAttribute  = errors.New("xmlcodec: missing attribute")
	ErrInvalidValue      = errors.New("xmlcodec: invalid value")
	ErrUnrecognizedShape = errors.New("xmlcodec: unrecognized shape")
	ErrAmbiguousShape    = errors.New("xmlcodec: ambiguous shape")
)

// ParseError carries the offending element name and one of the kind sentinels.
type ParseError struct {
	Element string
	Kind    error
	Reason  string
}

func (e ParseError) Error() string {
	kind := "parse error"
	if e.Kind != nil {
		kind = e.Kind.Error()
	}
	switch {
	case e.Element == "":
		return fmt.Sprintf("%s: %s", kind, e.Reason)
	case e.Reason == "":
		return fmt.Sprintf("%s: element=%s", kind, e.Element)
	default:
		return fmt.Sprintf("%s: element=%s: %s", kind, e.Element, e.Reason)
	}
}

func (e ParseError) Unwrap() error {
	return e.Kind
}

func missing(element string) error {
	return ParseError{Element: element, Kind: ErrMissingElement}
}

// Invalid reports an element whose content could not be converted.
func Invalid(element string, reason string) error {
	return ParseError{Element: element, Kind: ErrInvalidValue, Reason: reason}
}
