package route

import (
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"strings"
)

// Capture is a named, typed path-component slot. The name is used in error
// messages and route documentation; the param decodes one path component
// into the slot's value.
type Capture struct {
	name  string
	param Param
}

// NewCapture creates a capture slot decoding one path component with param.
func NewCapture(name string, param Param) Capture {
	return Capture{name: name, param: param}
}

// WithName returns a copy of the capture with a different display name.
// The original capture is unchanged.
func (c Capture) WithName(name string) Capture {
	c.name = name
	return c
}

// Name returns the capture's display name.
func (c Capture) Name() string { return c.name }

// Param returns the capture's value converter.
func (c Capture) Param() Param { return c.param }

// pathElement is a literal segment, a capture, or a rest capture. These
// three shapes are the complete set; matching switches over the tags.
type pathElement struct {
	literal   string
	capture   Capture
	isCapture bool
	isRest    bool
}

// Path is an immutable pattern over decoded URL path components: literal
// segments must match exactly, captures decode one component each. The
// captured values, in left-to-right occurrence order, form the path's
// contribution to the handler tuple.
//
// Appending never mutates: Segment and Capture return new patterns, so a
// Path may be shared as a prefix between routes.
type Path struct {
	elems []pathElement
}

// Root returns the empty pattern. It matches only a path with zero
// components, i.e. the document root.
func Root() *Path { return &Path{} }

// Segment returns a new Path with a literal component appended. The capture
// tuple shape is unchanged.
func (p *Path) Segment(literal string) *Path {
	elems := append(p.cloneElems(), pathElement{literal: literal})
	return &Path{elems: elems}
}

// Segments returns a new Path with several literal components appended.
func (p *Path) Segments(literals ...string) *Path {
	elems := p.cloneElems()
	for _, l := range literals {
		elems = append(elems, pathElement{literal: l})
	}
	return &Path{elems: elems}
}

// Capture returns a new Path with a typed capture appended; the decoded
// value becomes the next tuple slot.
func (p *Path) Capture(name string, param Param) *Path {
	return p.CaptureSlot(NewCapture(name, param))
}

// CaptureSlot is Capture for a pre-built slot.
func (p *Path) CaptureSlot(c Capture) *Path {
	elems := append(p.cloneElems(), pathElement{capture: c, isCapture: true})
	return &Path{elems: elems}
}

// CaptureRest returns a new Path capturing all remaining path components,
// zero or more, as a []string slot. It must be the last element of a
// pattern; nothing can be appended after it.
func (p *Path) CaptureRest(name string) *Path {
	elems := append(p.cloneElems(), pathElement{
		capture: Capture{name: name},
		isRest:  true,
	})
	return &Path{elems: elems}
}

// cloneElems copies the element list, rejecting appends after a rest
// capture. Extending a pattern is a definition-time operation, so a
// violation panics like any other malformed route declaration.
func (p *Path) cloneElems() []pathElement {
	if n := len(p.elems); n > 0 && p.elems[n-1].isRest {
		panic("route: cannot extend a path after a rest capture")
	}
	return slices.Clone(p.elems)
}

// Match walks the pattern and the decoded path components in lockstep and
// returns the captured values in occurrence order. Arity mismatch, literal
// mismatch and capture decode failure are all reported as a non-match,
// never as an error: URL shape is resolved by trying the next candidate
// route, not by producing a 400.
func (p *Path) Match(components []string) ([]any, bool) {
	if p.hasRest() {
		if len(components) < len(p.elems)-1 {
			return nil, false
		}
	} else if len(components) != len(p.elems) {
		return nil, false
	}
	values := make([]any, 0, p.arity())
	for i, el := range p.elems {
		switch {
		case el.isRest:
			values = append(values, slices.Clone(components[i:]))
			return values, true
		case el.isCapture:
			v, err := el.capture.param.Parse(components[i])
			if err != nil {
				return nil, false
			}
			values = append(values, v)
		case el.literal != components[i]:
			return nil, false
		}
	}
	return values, true
}

func (p *Path) hasRest() bool {
	n := len(p.elems)
	return n > 0 && p.elems[n-1].isRest
}

// Captures returns the capture slots in occurrence order, including the
// rest capture when the pattern has one.
func (p *Path) Captures() []Capture {
	var out []Capture
	for _, el := range p.elems {
		if el.isCapture || el.isRest {
			out = append(out, el.capture)
		}
	}
	return out
}

// Template renders the pattern in brace form, e.g. "/post/{id}".
func (p *Path) Template() string {
	if len(p.elems) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, el := range p.elems {
		b.WriteByte('/')
		switch {
		case el.isRest:
			b.WriteByte('{')
			b.WriteString(el.capture.name)
			b.WriteString("...}")
		case el.isCapture:
			b.WriteByte('{')
			b.WriteString(el.capture.name)
			b.WriteByte('}')
		default:
			b.WriteString(el.literal)
		}
	}
	return b.String()
}

// URL builds a concrete, escaped path for the pattern. It takes one
// argument per capture, in occurrence order, each of the capture's Go type.
func (p *Path) URL(args ...any) (string, error) {
	if len(args) != p.arity() {
		return "", fmt.Errorf("route: path %s takes %d arguments, got %d", p.Template(), p.arity(), len(args))
	}
	if len(p.elems) == 0 {
		return "/", nil
	}
	var b strings.Builder
	i := 0
	for _, el := range p.elems {
		if el.isRest {
			rest, ok := args[i].([]string)
			if !ok {
				return "", fmt.Errorf("route: argument %d of path %s must be []string, got %T",
					i, p.Template(), args[i])
			}
			for _, c := range rest {
				b.WriteByte('/')
				b.WriteString(url.PathEscape(c))
			}
			break
		}
		b.WriteByte('/')
		if !el.isCapture {
			b.WriteString(url.PathEscape(el.literal))
			continue
		}
		want := el.capture.param.Type()
		if reflect.TypeOf(args[i]) != want {
			return "", fmt.Errorf("route: argument %d of path %s must be %s, got %T",
				i, p.Template(), want, args[i])
		}
		b.WriteString(url.PathEscape(el.capture.param.Unparse(args[i])))
		i++
	}
	if b.Len() == 0 {
		return "/", nil
	}
	return b.String(), nil
}

func (p *Path) arity() int {
	n := 0
	for _, el := range p.elems {
		if el.isCapture || el.isRest {
			n++
		}
	}
	return n
}

func (p *Path) captureTypes() []reflect.Type {
	var types []reflect.Type
	for _, el := range p.elems {
		switch {
		case el.isRest:
			types = append(types, reflect.TypeOf((*[]string)(nil)).Elem())
		case el.isCapture:
			types = append(types, el.capture.param.Type())
		}
	}
	return types
}

// splitPath splits a request path into its components. The root path "/"
// yields zero components. A trailing slash yields a final empty component,
// so "/post/" does not match the pattern /post.
func splitPath(p string) []string {
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
