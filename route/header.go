package route

import (
	"fmt"
	"net/http"
	"reflect"
)

// headerKind enumerates the closed set of header extractor shapes.
type headerKind int

const (
	headerRequired headerKind = iota
	headerOptional
)

// HeaderParam decodes one named request header into one tuple slot. Header
// names are case-insensitive. Header extraction is part of the synchronous
// match phase, before any body is read.
type HeaderParam struct {
	kind  headerKind
	name  string
	param Param
}

// HeaderRequired decodes the named header. A missing header is a validation
// failure, not a structural mismatch.
func HeaderRequired(name string, p Param) HeaderParam {
	return HeaderParam{kind: headerRequired, name: name, param: p}
}

// HeaderOptional decodes the named header when present; absence yields a
// nil pointer. A present but undecodable value is still a validation
// failure.
func HeaderOptional(name string, p Param) HeaderParam {
	return HeaderParam{kind: headerOptional, name: name, param: p}
}

// Name returns the header name.
func (h HeaderParam) Name() string { return h.name }

// Required reports whether the header must be present.
func (h HeaderParam) Required() bool { return h.kind == headerRequired }

// Describe returns the human-readable type tag of the header's value.
func (h HeaderParam) Describe() string { return h.param.Describe() }

// Type returns the Go type of the header's decoded value, ignoring the
// pointer wrapper the optional shape adds.
func (h HeaderParam) Type() reflect.Type { return h.param.Type() }

func (h HeaderParam) slotType() reflect.Type {
	if h.kind == headerOptional {
		return reflect.PointerTo(h.param.Type())
	}
	return h.param.Type()
}

func (h HeaderParam) decode(hdr http.Header) (any, error) {
	raw := hdr.Get(h.name)
	switch h.kind {
	case headerRequired:
		if raw == "" {
			return nil, fmt.Errorf("%w: header %s %s", ErrMissing, h.name, h.param.Describe())
		}
		return h.parse(raw)
	case headerOptional:
		if raw == "" {
			return nilSlot(h.param.Type()), nil
		}
		v, err := h.parse(raw)
		if err != nil {
			return nil, err
		}
		return pointerTo(h.param.Type(), v), nil
	}
	panic("route: unknown header parameter kind")
}

func (h HeaderParam) parse(raw string) (any, error) {
	v, err := h.param.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: header %s %s: %w", ErrInvalid, h.name, h.param.Describe(), err)
	}
	return v, nil
}
