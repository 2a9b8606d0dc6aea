package jsondoc

import (
	"bytes"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
)

// Kind discriminates the JSON value variants.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return "unknown"
}

// Value is one node of a parsed JSON document. Unlike a plain
// map[string]any decode, objects remember key insertion order, which keeps
// issue addressing deterministic across runs.
type Value struct {
	kind Kind
	str  string
	num  json.Number
	b    bool
	arr  []*Value
	keys []string
	obj  map[string]*Value
}

// Kind returns the value's variant.
func (v *Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is a JSON null. A nil receiver counts as
// null, so absent and explicit-null members can be treated alike.
func (v *Value) IsNull() bool { return v == nil || v.kind == Null }

// Str returns the string payload (empty for non-strings).
func (v *Value) Str() string { return v.str }

// BoolVal returns the boolean payload.
func (v *Value) BoolVal() bool { return v.b }

// Float64 returns the numeric payload. ok is false for non-numbers.
func (v *Value) Float64() (float64, bool) {
	if v.kind != Number {
		return 0, false
	}
	f, err := v.num.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int64 returns the numeric payload as an integer. ok is false for
// non-numbers and for numbers written with a fractional or exponent part.
func (v *Value) Int64() (int64, bool) {
	if v.kind != Number || !v.integral() {
		return 0, false
	}
	n, err := v.num.Int64()
	if err != nil {
		return 0, false
	}
	return n, true
}

func (v *Value) integral() bool {
	s := v.num.String()
	return !bytes.ContainsAny([]byte(s), ".eE")
}

// Elems returns the array elements in document order (nil for non-arrays).
func (v *Value) Elems() []*Value {
	if v.kind != Array {
		return nil
	}
	return v.arr
}

// Keys returns the object keys in document insertion order (nil for
// non-objects).
func (v *Value) Keys() []string {
	if v.kind != Object {
		return nil
	}
	return v.keys
}

// Member returns the named object member, or nil when the key is absent or
// the value is not an object. A nil receiver is allowed and reports nil.
func (v *Value) Member(key string) *Value {
	if v == nil || v.kind != Object {
		return nil
	}
	return v.obj[key]
}

// Has reports whether the object has the named member.
func (v *Value) Has(key string) bool {
	if v == nil || v.kind != Object {
		return false
	}
	_, ok := v.obj[key]
	return ok
}

var bom = []byte{0xEF, 0xBB, 0xBF}

// Load reads and parses one JSON document from disk. A leading UTF-8 BOM is
// tolerated; content files occasionally pick one up from Windows editors.
func Load(path string) (*Value, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimPrefix(raw, bom)
	return Decode(bytes.NewReader(raw))
}

// Decode parses a single JSON document from r.
func Decode(r io.Reader) (*Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	v, err := parseValue(dec)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after JSON document")
	}
	return v, nil
}

func parseValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return fromToken(dec, tok)
}

func fromToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t.String())
	case string:
		return &Value{kind: String, str: t}, nil
	case json.Number:
		return &Value{kind: Number, num: t}, nil
	case bool:
		return &Value{kind: Bool, b: t}, nil
	case nil:
		return &Value{kind: Null}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func parseObject(dec *json.Decoder) (*Value, error) {
	v := &Value{kind: Object, obj: map[string]*Value{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", tok)
		}
		member, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		// A duplicated key keeps its first position but the last value,
		// matching what a dict-based decoder produces.
		if _, seen := v.obj[key]; !seen {
			v.keys = append(v.keys, key)
		}
		v.obj[key] = member
	}
	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return v, nil
}

func parseArray(dec *json.Decoder) (*Value, error) {
	v := &Value{kind: Array}
	for dec.More() {
		elem, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		v.arr = append(v.arr, elem)
	}
	// Consume the closing ']'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return v, nil
}
