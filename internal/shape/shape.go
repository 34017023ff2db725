// internal/shape/shape.go
// Package shape parses tensor shape specifications such as "1,3,224,224:1,3,300,300".
package shape

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	shapeSeparator = ":"
	dimSeparator   = ","
)

// Shape is an ordered list of non-negative tensor dimensions.
type Shape []int64

// Spec holds one Shape per model input, in input order.
type Spec []Shape

// ParseError reports a malformed shape specification.
type ParseError struct {
	Input   string
	Segment int
	Token   string
	Reason  string
}

func (e *ParseError) Error() string {
	if e.Token == "" && e.Segment < 0 {
		return fmt.Sprintf("parse shape %q: %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("parse shape %q: segment %d: token %q: %s", e.Input, e.Segment, e.Token, e.Reason)
}

// Parse converts a ":"-separated list of ","-separated dimensions into a Spec.
// Every token must be a non-negative base-10 integer; anything else is a ParseError.
func Parse(spec string) (Spec, error) {
	trimmed := strings.TrimSpace(spec)
	if trimmed == "" {
		return nil, &ParseError{Input: spec, Segment: -1, Reason: "empty shape specification"}
	}

	segments := strings.Split(trimmed, shapeSeparator)
	out := make(Spec, 0, len(segments))
	for i, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			return nil, &ParseError{Input: spec, Segment: i, Reason: "empty shape segment"}
		}
		tokens := strings.Split(segment, dimSeparator)
		dims := make(Shape, 0, len(tokens))
		for _, tok := range tokens {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				return nil, &ParseError{Input: spec, Segment: i, Token: tok, Reason: "empty dimension"}
			}
			v, err := strconv.ParseInt(tok, 10, 64)
			if err != nil {
				return nil, &ParseError{Input: spec, Segment: i, Token: tok, Reason: "dimension is not an integer"}
			}
			if v < 0 {
				return nil, &ParseError{Input: spec, Segment: i, Token: tok, Reason: "dimension must be non-negative"}
			}
			dims = append(dims, v)
		}
		if _, ok := dims.CheckedProduction(); !ok {
			return nil, &ParseError{Input: spec, Segment: i, Reason: "element count overflows int64"}
		}
		out = append(out, dims)
	}
	return out, nil
}

// SplitList splits a ":"-separated path list, dropping blank entries.
func SplitList(list string) []string {
	var out []string
	for _, part := range strings.Split(list, shapeSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Production returns the element count described by s. A rank-0 shape holds one element.
func (s Shape) Production() int64 {
	n := int64(1)
	for _, d := range s {
		n *= d
	}
	return n
}

// CheckedProduction is Production that reports false instead of wrapping on
// overflow. Negative dimensions also report false.
func (s Shape) CheckedProduction() (int64, bool) {
	n := int64(1)
	for _, d := range s {
		if d < 0 {
			return 0, false
		}
		if d == 0 {
			n = 0
		}
	}
	if n == 0 {
		return 0, true
	}
	for _, d := range s {
		if n > math.MaxInt64/d {
			return 0, false
		}
		n *= d
	}
	return n, true
}

// Equal reports whether two shapes have the same rank and dimensions.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy that does not alias s.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	out := make(Shape, len(s))
	copy(out, s)
	return out
}

func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = strconv.FormatInt(d, 10)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (sp Spec) String() string {
	parts := make([]string, len(sp))
	for i, s := range sp {
		dims := make([]string, len(s))
		for j, d := range s {
			dims[j] = strconv.FormatInt(d, 10)
		}
		parts[i] = strings.Join(dims, dimSeparator)
	}
	return strings.Join(parts, shapeSeparator)
}
