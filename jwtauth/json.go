package jwtauth

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

// JSONType is the kind of a decoded JSON value.
type JSONType int

const (
	TypeNull JSONType = iota
	TypeBool
	TypeInteger
	TypeFloat
	TypeString
	TypeArray
	TypeObject
)

var jsonTypeNames = [...]string{"null", "bool", "integer", "float", "string", "array", "object"}

func (t JSONType) String() string {
	if t < 0 || int(t) >= len(jsonTypeNames) {
		return "unknown"
	}
	return jsonTypeNames[t]
}

// Value is a single decoded JSON value. Numbers are kept as json.Number so
// that integers and floats stay distinguishable.
type Value struct {
	raw any
}

// Type returns the JSON kind of v.
func (v Value) Type() JSONType {
	return typeOf(v.raw)
}

// Raw returns the underlying decoded value.
func (v Value) Raw() any {
	return v.raw
}

// AsString returns the value if it is a JSON string.
func (v Value) AsString() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok
}

// AsInt64 returns the value if it is a JSON integer that fits in an int64.
func (v Value) AsInt64() (int64, bool) {
	n, ok := v.raw.(json.Number)
	if !ok || !isIntegerLiteral(n) {
		return 0, false
	}
	i, err := n.Int64()
	return i, err == nil
}

// AsFloat64 returns any JSON number as a float64.
func (v Value) AsFloat64() (float64, bool) {
	n, ok := v.raw.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	return f, err == nil
}

// AsBool returns the value if it is a JSON boolean.
func (v Value) AsBool() (bool, bool) {
	b, ok := v.raw.(bool)
	return b, ok
}

func typeOf(raw any) JSONType {
	switch x := raw.(type) {
	case nil:
		return TypeNull
	case bool:
		return TypeBool
	case json.Number:
		if isIntegerLiteral(x) {
			if _, err := strconv.ParseInt(string(x), 10, 64); err == nil {
				return TypeInteger
			}
		}
		return TypeFloat
	case string:
		return TypeString
	case []any:
		return TypeArray
	case map[string]any:
		return TypeObject
	}
	return TypeNull
}

func isIntegerLiteral(n json.Number) bool {
	return !strings.ContainsAny(string(n), ".eE")
}

// typedValue converts raw to the Go representation used for kind t:
// int64 for integers, float64 for floats, and the decoded value otherwise.
func typedValue(raw any, t JSONType) any {
	switch t {
	case TypeInteger:
		i, _ := raw.(json.Number).Int64()
		return i
	case TypeFloat:
		f, _ := raw.(json.Number).Float64()
		return f
	}
	return raw
}

var (
	errNotObject   = errors.New("json value is not an object")
	errInvalidUTF8 = errors.New("json text is not valid utf-8")
)

// numberLiteral is the RFC 8259 number grammar. The decoder also accepts
// forms such as 01 and 1. which must not survive into canonical output.
var numberLiteral = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// parseObject decodes data as exactly one JSON object.
func parseObject(data []byte) (map[string]any, error) {
	if !utf8.Valid(data) {
		return nil, errInvalidUTF8
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errNotObject
	}

	var trailing any
	if err := dec.Decode(&trailing); err != io.EOF {
		return nil, errors.New("unexpected data after json object")
	}
	if err := checkNumbers(obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// checkNumbers walks a decoded value and rejects number literals outside
// the JSON grammar.
func checkNumbers(v any) error {
	switch x := v.(type) {
	case json.Number:
		if !numberLiteral.MatchString(string(x)) {
			return fmt.Errorf("invalid json number %q", string(x))
		}
	case []any:
		for _, e := range x {
			if err := checkNumbers(e); err != nil {
				return err
			}
		}
	case map[string]any:
		for _, e := range x {
			if err := checkNumbers(e); err != nil {
				return err
			}
		}
	}
	return nil
}
