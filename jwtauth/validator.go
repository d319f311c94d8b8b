package jwtauth

import (
	"time"
)

// ClaimValidator is a single predicate over a token payload. An Authenticator
// accepts a token only when every registered validator accepts its payload.
type ClaimValidator interface {
	Validate(payload *Payload) bool
}

// ClaimValidatorFunc adapts an ordinary function to ClaimValidator.
type ClaimValidatorFunc func(payload *Payload) bool

// Validate calls f(payload).
func (f ClaimValidatorFunc) Validate(payload *Payload) bool {
	return f(payload)
}

// ExpiresValidator accepts a payload without "exp", or whose integer "exp"
// is not before the current time minus Leeway.
type ExpiresValidator struct {
	Now    func() time.Time // defaults to time.Now
	Leeway time.Duration
}

func (v ExpiresValidator) Validate(payload *Payload) bool {
	now := nowFunc(v.Now)().Add(-v.Leeway).Unix()
	return ValidateClaimIfPresent(payload, TypeInteger, ClaimExpires, func(exp int64) bool {
		return exp >= now
	})
}

// NotBeforeValidator accepts a payload without "nbf", or whose integer "nbf"
// is not after the current time plus Leeway.
type NotBeforeValidator struct {
	Now    func() time.Time // defaults to time.Now
	Leeway time.Duration
}

func (v NotBeforeValidator) Validate(payload *Payload) bool {
	now := nowFunc(v.Now)().Add(v.Leeway).Unix()
	return ValidateClaimIfPresent(payload, TypeInteger, ClaimNotBefore, func(nbf int64) bool {
		return now >= nbf
	})
}

// IssuedAtValidator rejects tokens whose integer "iat" lies in the future.
// An absent "iat" is accepted.
type IssuedAtValidator struct {
	Now    func() time.Time // defaults to time.Now
	Leeway time.Duration
}

func (v IssuedAtValidator) Validate(payload *Payload) bool {
	now := nowFunc(v.Now)().Add(v.Leeway).Unix()
	return ValidateClaimIfPresent(payload, TypeInteger, ClaimIssuedAt, func(iat int64) bool {
		return iat <= now
	})
}

// SubjectValidator requires a "sub" claim of any type.
type SubjectValidator struct{}

func (SubjectValidator) Validate(payload *Payload) bool {
	return payload.Has(ClaimSubject)
}

// UserIDValidator requires a string "userId" claim.
type UserIDValidator struct{}

func (UserIDValidator) Validate(payload *Payload) bool {
	return ValidateClaim(payload, TypeString, ClaimUserID, func(string) bool { return true })
}

// RequiredClaimsValidator requires every named claim to be present
type RequiredClaimsValidator struct {
	Names []string
}

func (v RequiredClaimsValidator) Validate(payload *Payload) bool {
	for _, name := range v.Names {
		if !payload.Has(name) {
			return false
		}
	}
	return true
}

// IssuerValidator requires "iss" to equal Expected exactly
type IssuerValidator struct {
	Expected string
}

func (v IssuerValidator) Validate(payload *Payload) bool {
	return payload.Issuer().IsTrue(func(iss string) bool { return iss == v.Expected })
}

// AudienceValidator requires "aud" to name Expected, either as a string or as
// one element of an array of strings.
type AudienceValidator struct {
	Expected string
}

func (v AudienceValidator) Validate(payload *Payload) bool {
	if payload.Audience().IsTrue(func(aud string) bool { return aud == v.Expected }) {
		return true
	}
	return ValidateClaim(payload, TypeArray, ClaimAudience, func(auds []any) bool {
		for _, a := range auds {
			if s, ok := a.(string); ok && s == v.Expected {
				return true
			}
		}
		return false
	})
}

// defaultValidators is the set installed by the standard construction path.
func defaultValidators(now func() time.Time, leeway time.Duration) []ClaimValidator {
	return []ClaimValidator{
		ExpiresValidator{Now: now, Leeway: leeway},
		NotBeforeValidator{Now: now, Leeway: leeway},
	}
}

func nowFunc(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}
