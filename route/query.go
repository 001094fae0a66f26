package route

import (
	"fmt"
	"net/url"
	"reflect"
	"slices"
)

// queryKind enumerates the closed set of query parameter shapes. Every
// switch over a queryKind handles all of them.
type queryKind int

const (
	queryRequired queryKind = iota
	queryRequiredAll
	queryOptional
	queryOptionalAll
	queryAll
)

// QueryParam decodes one named query parameter (or, for the all-values
// shape, the complete raw mapping) into one tuple slot. Each QueryParam is
// evaluated independently against the full multi-valued mapping of the
// incoming request; the order parameters appear in the URL is irrelevant.
type QueryParam struct {
	kind queryKind
	name string
	one  Param
	many MultiParam
}

// QueryRequired decodes the first value of the named parameter. A missing
// name is a validation failure, not a structural mismatch.
func QueryRequired(name string, p Param) QueryParam {
	return QueryParam{kind: queryRequired, name: name, one: p}
}

// QueryRequiredAll decodes every value of the named parameter. A missing
// name is a validation failure.
func QueryRequiredAll(name string, p MultiParam) QueryParam {
	return QueryParam{kind: queryRequiredAll, name: name, many: p}
}

// QueryOptional decodes the first value of the named parameter when
// present; absence yields a nil pointer. Optional refers to presence, not
// validity: a present but undecodable value is still a validation failure.
func QueryOptional(name string, p Param) QueryParam {
	return QueryParam{kind: queryOptional, name: name, one: p}
}

// QueryOptionalAll is QueryOptional for every value of the named parameter.
func QueryOptionalAll(name string, p MultiParam) QueryParam {
	return QueryParam{kind: queryOptionalAll, name: name, many: p}
}

// QueryAllValues captures the complete raw name-to-values mapping as a
// url.Values slot. It always succeeds.
func QueryAllValues() QueryParam {
	return QueryParam{kind: queryAll}
}

// Name returns the parameter name. It is empty for the all-values shape.
func (q QueryParam) Name() string { return q.name }

// Required reports whether the parameter must be present.
func (q QueryParam) Required() bool {
	return q.kind == queryRequired || q.kind == queryRequiredAll
}

// Type returns the Go type of the parameter's decoded value, ignoring the
// pointer wrapper optional shapes add. The all-values shape yields
// url.Values.
func (q QueryParam) Type() reflect.Type {
	t := q.slotType()
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

// Describe returns the human-readable type tag of the parameter's values.
func (q QueryParam) Describe() string {
	switch q.kind {
	case queryRequired, queryOptional:
		return q.one.Describe()
	case queryRequiredAll, queryOptionalAll:
		return q.many.Describe()
	case queryAll:
		return "<values>"
	}
	panic("route: unknown query parameter kind")
}

// slotType returns the Go type of the tuple slot this parameter produces.
// Optional shapes produce a pointer whose nil value means absent.
func (q QueryParam) slotType() reflect.Type {
	switch q.kind {
	case queryRequired:
		return q.one.Type()
	case queryRequiredAll:
		return q.many.Type()
	case queryOptional:
		return reflect.PointerTo(q.one.Type())
	case queryOptionalAll:
		return reflect.PointerTo(q.many.Type())
	case queryAll:
		return reflect.TypeOf((*url.Values)(nil)).Elem()
	}
	panic("route: unknown query parameter kind")
}

// decode evaluates the parameter against the full query mapping. An absent
// name and an empty mapping are the same failure.
func (q QueryParam) decode(values url.Values) (any, error) {
	switch q.kind {
	case queryRequired:
		vs, ok := values[q.name]
		if !ok || len(vs) == 0 {
			return nil, fmt.Errorf("%w: %s %s", ErrMissing, q.name, q.one.Describe())
		}
		return q.parseOne(vs[0])
	case queryRequiredAll:
		vs, ok := values[q.name]
		if !ok {
			return nil, fmt.Errorf("%w: %s %s", ErrMissing, q.name, q.many.Describe())
		}
		return q.parseMany(vs)
	case queryOptional:
		vs, ok := values[q.name]
		if !ok || len(vs) == 0 {
			return nilSlot(q.one.Type()), nil
		}
		v, err := q.parseOne(vs[0])
		if err != nil {
			return nil, err
		}
		return pointerTo(q.one.Type(), v), nil
	case queryOptionalAll:
		vs, ok := values[q.name]
		if !ok {
			return nilSlot(q.many.Type()), nil
		}
		v, err := q.parseMany(vs)
		if err != nil {
			return nil, err
		}
		return pointerTo(q.many.Type(), v), nil
	case queryAll:
		return values, nil
	}
	panic("route: unknown query parameter kind")
}

func (q QueryParam) parseOne(raw string) (any, error) {
	v, err := q.one.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrInvalid, q.name, q.one.Describe(), err)
	}
	return v, nil
}

func (q QueryParam) parseMany(raw []string) (any, error) {
	v, err := q.many.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrInvalid, q.name, q.many.Describe(), err)
	}
	return v, nil
}

// encode reverse-maps a decoded slot value onto a query mapping. An absent
// optional contributes nothing; the all-values shape contributes every pair
// of its mapping.
func (q QueryParam) encode(v any, into url.Values) {
	switch q.kind {
	case queryRequired:
		into.Set(q.name, q.one.Unparse(v))
	case queryRequiredAll:
		into[q.name] = q.many.Unparse(v)
	case queryOptional:
		rv := reflect.ValueOf(v)
		if !rv.IsValid() || rv.IsNil() {
			return
		}
		into.Set(q.name, q.one.Unparse(rv.Elem().Interface()))
	case queryOptionalAll:
		rv := reflect.ValueOf(v)
		if !rv.IsValid() || rv.IsNil() {
			return
		}
		into[q.name] = q.many.Unparse(rv.Elem().Interface())
	case queryAll:
		for name, vs := range v.(url.Values) {
			into[name] = slices.Clone(vs)
		}
	}
}

// nilSlot returns the typed nil pointer marking an absent optional value.
func nilSlot(elem reflect.Type) any {
	return reflect.Zero(reflect.PointerTo(elem)).Interface()
}

// pointerTo boxes a decoded value into a pointer of the slot's type.
func pointerTo(elem reflect.Type, v any) any {
	ptr := reflect.New(elem)
	ptr.Elem().Set(reflect.ValueOf(v))
	return ptr.Interface()
}

// Query aggregates zero or more query parameters into consecutive tuple
// slots, in declaration order. Decoding is fail-fast: the first parameter
// that fails determines the reported error.
type Query struct {
	params []QueryParam
}

// NewQuery declares a query string decoding the given parameters.
func NewQuery(params ...QueryParam) *Query {
	return &Query{params: params}
}

// And returns a new Query with more parameters appended. The original is
// unchanged.
func (q *Query) And(params ...QueryParam) *Query {
	return &Query{params: append(slices.Clone(q.params), params...)}
}

// Params returns the declared parameters in order.
func (q *Query) Params() []QueryParam {
	return slices.Clone(q.params)
}

func (q *Query) decode(values url.Values) ([]any, error) {
	slots := make([]any, 0, len(q.params))
	for _, p := range q.params {
		v, err := p.decode(values)
		if err != nil {
			return nil, err
		}
		slots = append(slots, v)
	}
	return slots, nil
}

func (q *Query) slotTypes() []reflect.Type {
	types := make([]reflect.Type, 0, len(q.params))
	for _, p := range q.params {
		types = append(types, p.slotType())
	}
	return types
}

// Encode reverse-maps decoded slot values back to a query mapping,
// reproducing the pairs Parse would have consumed.
func (q *Query) Encode(slots []any) (url.Values, error) {
	if len(slots) != len(q.params) {
		return nil, fmt.Errorf("route: query takes %d values, got %d", len(q.params), len(slots))
	}
	out := url.Values{}
	for i, p := range q.params {
		p.encode(slots[i], out)
	}
	return out, nil
}
