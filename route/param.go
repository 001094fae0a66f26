package route

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Param converts a single raw request value (one path component or one query
// value) to and from a typed Go value. A Param carries a stable,
// human-readable describe tag used in error messages and route documentation.
//
// Parse may fail for ill-formed input and reports via an error, never a
// panic. Unparse is total: it must succeed for every value of the param's
// type, so that URL building is infallible.
type Param struct {
	desc    string
	typ     reflect.Type
	parse   func(string) (any, error)
	unparse func(any) string
}

// NewParam constructs a Param from a describe tag, a fallible parse function
// and a total unparse function. The concrete Go type A is recorded and later
// checked against handler signatures when a route is built.
func NewParam[A any](desc string, parse func(string) (A, error), unparse func(A) string) Param {
	return Param{
		desc: desc,
		typ:  reflect.TypeOf((*A)(nil)).Elem(),
		parse: func(s string) (any, error) {
			v, err := parse(s)
			if err != nil {
				return nil, err
			}
			return v, nil
		},
		unparse: func(v any) string { return unparse(v.(A)) },
	}
}

// Describe returns the human-readable type tag, e.g. "<int>".
func (p Param) Describe() string { return p.desc }

// Type returns the Go type produced by Parse.
func (p Param) Type() reflect.Type { return p.typ }

// Parse decodes one raw value.
func (p Param) Parse(s string) (any, error) { return p.parse(s) }

// Unparse renders a previously decoded value back to its raw form.
func (p Param) Unparse(v any) string { return p.unparse(v) }

// MultiParam converts the complete value list of a repeated query parameter
// to and from a typed Go value. It is the list-valued counterpart of Param
// with the same parse/unparse contract.
type MultiParam struct {
	desc    string
	typ     reflect.Type
	parse   func([]string) (any, error)
	unparse func(any) []string
}

// NewMultiParam constructs a MultiParam. See NewParam.
func NewMultiParam[A any](desc string, parse func([]string) (A, error), unparse func(A) []string) MultiParam {
	return MultiParam{
		desc: desc,
		typ:  reflect.TypeOf((*A)(nil)).Elem(),
		parse: func(vs []string) (any, error) {
			v, err := parse(vs)
			if err != nil {
				return nil, err
			}
			return v, nil
		},
		unparse: func(v any) []string { return unparse(v.(A)) },
	}
}

// Describe returns the human-readable type tag, e.g. "<int>...".
func (p MultiParam) Describe() string { return p.desc }

// Type returns the Go type produced by Parse.
func (p MultiParam) Type() reflect.Type { return p.typ }

// Parse decodes the complete raw value list.
func (p MultiParam) Parse(vs []string) (any, error) { return p.parse(vs) }

// Unparse renders a previously decoded value back to its raw value list.
func (p MultiParam) Unparse(v any) []string { return p.unparse(v) }

// String accepts any value unchanged, including the empty string.
var String = NewParam[string]("<string>",
	func(s string) (string, error) { return s, nil },
	func(s string) string { return s },
)

// Int accepts a value iff the entire trimmed value is a base-10 signed
// integer. Partial parses and surrounding garbage are rejected.
var Int = NewParam[int]("<int>", parseInt, strconv.Itoa)

// Int64 is the 64-bit counterpart of Int.
var Int64 = NewParam[int64]("<int64>",
	func(s string) (int64, error) { return strconv.ParseInt(strings.TrimSpace(s), 10, 64) },
	func(n int64) string { return strconv.FormatInt(n, 10) },
)

// Bool accepts the values understood by strconv.ParseBool.
var Bool = NewParam[bool]("<bool>",
	func(s string) (bool, error) { return strconv.ParseBool(s) },
	strconv.FormatBool,
)

// UUID accepts an RFC 4122 UUID in its canonical textual form.
var UUID = NewParam[uuid.UUID]("<uuid>", uuid.Parse,
	func(u uuid.UUID) string { return u.String() },
)

// Strings accepts every value of a repeated parameter unchanged.
var Strings = NewMultiParam[[]string]("<string>...",
	func(vs []string) ([]string, error) { return vs, nil },
	func(vs []string) []string { return vs },
)

// Ints requires every value of a repeated parameter to be an integer.
var Ints = NewMultiParam[[]int]("<int>...", parseInts, unparseInts)

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func parseInts(vs []string) ([]int, error) {
	out := make([]int, 0, len(vs))
	for _, v := range vs {
		n, err := parseInt(v)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func unparseInts(ns []int) []string {
	out := make([]string, 0, len(ns))
	for _, n := range ns {
		out = append(out, strconv.Itoa(n))
	}
	return out
}
