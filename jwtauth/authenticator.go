package jwtauth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Outcome classifies the result of authenticating a token.
type Outcome int

const (
	Invalid Outcome = iota
	BadSignature
	MismatchedHeaders
	BadClaims
	Verified
)

var outcomeNames = [...]string{"Invalid", "BadSignature", "MismatchedHeaders", "BadClaims", "Verified"}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// Result pairs an Outcome with the decoded payload. The payload is present
// for every outcome except Invalid, and is only trustworthy when Verified.
type Result struct {
	outcome Outcome
	payload *Payload
	reason  error
}

func invalidResult(reason error) Result {
	return Result{outcome: Invalid, reason: reason}
}

func resultWithPayload(outcome Outcome, payload *Payload, reason error) Result {
	return Result{outcome: outcome, payload: payload, reason: reason}
}

// Outcome returns the classification of the token.
func (r Result) Outcome() Outcome {
	return r.outcome
}

// Payload returns the decoded claims, empty when the outcome is Invalid.
func (r Result) Payload() Optional[*Payload] {
	if r.payload == nil {
		return None[*Payload]()
	}
	return Some(r.payload)
}

// Verified reports whether every check passed.
func (r Result) Verified() bool {
	return r.outcome == Verified
}

// Reason describes why the token was not verified. It is nil when Verified.
func (r Result) Reason() error {
	return r.reason
}

// Authenticator verifies compact HMAC-signed tokens. Its signing strategy
// and validators are fixed at construction, so one instance may be shared
// between goroutines.
type Authenticator struct {
	encryptor  Encryptor
	validators []ClaimValidator
}

// NewAuthenticator returns an authenticator that checks "exp" and "nbf"
// against the wall clock, followed by the given validators.
func NewAuthenticator(encryptor Encryptor, validators ...ClaimValidator) *Authenticator {
	return newAuthenticator(encryptor, append(defaultValidators(time.Now, 0), validators...))
}

// NewCustomAuthenticator returns an authenticator that runs exactly the given
// validators, without the default "exp" and "nbf" checks.
func NewCustomAuthenticator(encryptor Encryptor, validators ...ClaimValidator) *Authenticator {
	return newAuthenticator(encryptor, validators)
}

func newAuthenticator(encryptor Encryptor, validators []ClaimValidator) *Authenticator {
	return &Authenticator{
		encryptor:  encryptor,
		validators: append([]ClaimValidator(nil), validators...),
	}
}

// Algorithm returns the name of the configured signing strategy
func (a *Authenticator) Algorithm() string {
	return a.encryptor.Name()
}

// Authenticate verifies token and classifies it. Checks run in order and
// stop at the first failure: structure, decoding, signature, header, claims.
// The payload is never returned for structural or decoding failures.
func (a *Authenticator) Authenticate(token string) Result {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return invalidResult(NewValidationError(
			ErrMalformed,
			fmt.Sprintf("token must have 3 segments, got %d", len(parts)),
			nil,
		))
	}
	if !ValidBase64URL(parts[0]) || !ValidBase64URL(parts[1]) {
		return invalidResult(NewValidationError(ErrMalformed, "invalid base64url characters in token", nil))
	}

	header, headerErr := decodeHeader(parts[0])
	payload, payloadErr := decodePayload(parts[1])
	if err := errors.Join(headerErr, payloadErr); err != nil {
		return invalidResult(NewValidationError(ErrMalformed, "token segments do not decode", err))
	}

	if !a.verifySignature(parts) {
		return resultWithPayload(BadSignature, payload, NewValidationError(ErrInvalidSignature, "invalid signature", nil))
	}

	if err := a.validateHeader(header); err != nil {
		return resultWithPayload(MismatchedHeaders, payload, err)
	}

	for i, v := range a.validators {
		if !runValidator(v, payload) {
			return resultWithPayload(BadClaims, payload, NewValidationError(
				ErrClaimsRejected,
				fmt.Sprintf("claim validator %d (%T) rejected the payload", i, v),
				nil,
			))
		}
	}

	return resultWithPayload(Verified, payload, nil)
}

// runValidator treats a panicking validator as a rejection.
func runValidator(v ClaimValidator, payload *Payload) (accepted bool) {
	defer func() {
		if recover() != nil {
			accepted = false
		}
	}()
	return v.Validate(payload)
}

func decodeHeader(segment string) (map[string]any, error) {
	data, err := DecodeBase64URL(segment)
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	header, err := parseObject(data)
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	return header, nil
}

func decodePayload(segment string) (*Payload, error) {
	data, err := DecodeBase64URL(segment)
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}
	payload, err := ParsePayload(data)
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}
	return payload, nil
}

// verifySignature recomputes the MAC over "header.payload" and compares its
// encoding with the signature segment.
func (a *Authenticator) verifySignature(parts []string) bool {
	expected := EncodeBase64URL(a.encryptor.Encrypt([]byte(parts[0] + "." + parts[1])))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(parts[2])) == 1
}

// validateHeader requires string "alg" equal to the strategy name and string
// "typ" equal to "JWT".
func (a *Authenticator) validateHeader(header map[string]any) error {
	rawAlg, ok := header["alg"]
	if !ok {
		return NewValidationError(ErrMismatchedHeaders, "missing algorithm in token header", nil)
	}
	alg, ok := rawAlg.(string)
	if !ok {
		return NewValidationError(ErrMalformedAlgorithmHeader, "algorithm header must be a string", nil)
	}
	if alg != a.encryptor.Name() {
		return NewValidationError(
			ErrMismatchedHeaders,
			fmt.Sprintf("algorithm %s does not match expected %s", alg, a.encryptor.Name()),
			nil,
		)
	}

	typ, ok := header["typ"].(string)
	if !ok || typ != "JWT" {
		return NewValidationError(ErrMismatchedHeaders, `token type must be the string "JWT"`, nil)
	}
	return nil
}
