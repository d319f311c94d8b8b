package jwtauth

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Payload is an immutable view over the decoded claims of a token.
// Two payloads are equal when their canonical JSON serializations are equal.
type Payload struct {
	claims    map[string]any
	canonical string
}

// ParsePayload decodes data, which must hold a single JSON object.
func ParsePayload(data []byte) (*Payload, error) {
	obj, err := parseObject(data)
	if err != nil {
		return nil, NewValidationError(ErrMalformed, "payload is not a json object", err)
	}
	return newPayload(obj)
}

// NewPayload builds a payload from Go values. The claims are serialized and
// decoded again, so later changes to the map are not observed.
func NewPayload(claims map[string]any) (*Payload, error) {
	if claims == nil {
		claims = map[string]any{}
	}
	data, err := json.Marshal(claims)
	if err != nil {
		return nil, NewValidationError(ErrMalformed, "claims are not serializable", err)
	}
	return ParsePayload(data)
}

func newPayload(obj map[string]any) (*Payload, error) {
	canonical, err := json.Marshal(obj)
	if err != nil {
		return nil, NewValidationError(ErrMalformed, "claims are not serializable", err)
	}
	return &Payload{claims: obj, canonical: string(canonical)}, nil
}

// Claim returns the raw value of the named claim.
func (p *Payload) Claim(name string) Optional[Value] {
	raw, ok := p.claims[name]
	if !ok {
		return None[Value]()
	}
	return Some(Value{raw: raw})
}

// Has reports whether the named claim is present, whatever its type.
func (p *Payload) Has(name string) bool {
	_, ok := p.claims[name]
	return ok
}

// Claims returns a deep copy of the decoded claims. Numbers are json.Number.
func (p *Payload) Claims() map[string]any {
	obj, err := parseObject([]byte(p.canonical))
	if err != nil {
		// canonical was produced by Marshal on a decoded object
		panic(fmt.Sprintf("jwtauth: canonical payload does not decode: %v", err))
	}
	return obj
}

func (p *Payload) Subject() Optional[string]  { return stringClaim(p, ClaimSubject) }
func (p *Payload) Expires() Optional[int64]   { return integerClaim(p, ClaimExpires) }
func (p *Payload) Audience() Optional[string] { return stringClaim(p, ClaimAudience) }
func (p *Payload) JWTID() Optional[string]    { return stringClaim(p, ClaimJWTID) }
func (p *Payload) NotBefore() Optional[int64] { return integerClaim(p, ClaimNotBefore) }
func (p *Payload) Issuer() Optional[string]   { return stringClaim(p, ClaimIssuer) }
func (p *Payload) IssuedAt() Optional[int64]  { return integerClaim(p, ClaimIssuedAt) }

// String returns the canonical JSON form: compact, with sorted keys.
func (p *Payload) String() string {
	return p.canonical
}

// MarshalJSON implements json.Marshaler.
func (p *Payload) MarshalJSON() ([]byte, error) {
	return []byte(p.canonical), nil
}

// Equal reports whether p and other serialize to the same canonical JSON.
func (p *Payload) Equal(other *Payload) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.canonical == other.canonical
}

func stringClaim(p *Payload, name string) Optional[string] {
	v, ok := claimAs[string](p, TypeString, name)
	if !ok {
		return None[string]()
	}
	return Some(v)
}

func integerClaim(p *Payload, name string) Optional[int64] {
	v, ok := claimAs[int64](p, TypeInteger, name)
	if !ok {
		return None[int64]()
	}
	return Some(v)
}

// claimAs returns the named claim as T when it is present and of kind
// expected. Integers are int64, floats float64, arrays []any and objects
// map[string]any.
func claimAs[T any](p *Payload, expected JSONType, name string) (T, bool) {
	var zero T
	raw, ok := p.claims[name]
	if !ok || typeOf(raw) != expected {
		return zero, false
	}
	v, ok := typedValue(raw, expected).(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// ValidateClaim reports whether the named claim is present, of kind expected
// and accepted by predicate.
func ValidateClaim[T any](p *Payload, expected JSONType, name string, predicate func(T) bool) bool {
	v, ok := claimAs[T](p, expected, name)
	return ok && predicate(v)
}

// ValidateClaimIfPresent is like ValidateClaim but accepts an absent claim.
// A present claim of the wrong kind is still rejected.
func ValidateClaimIfPresent[T any](p *Payload, expected JSONType, name string, predicate func(T) bool) bool {
	if !p.Has(name) {
		return true
	}
	return ValidateClaim(p, expected, name, predicate)
}
