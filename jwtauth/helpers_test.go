package jwtauth

import (
	"fmt"
	"testing"
	"time"
)

const acceptableHeader = `{"alg":"HS256","typ":"JWT"}`

// makeToken signs header and payload verbatim with enc.
func makeToken(header, payload string, enc Encryptor) string {
	signingInput := EncodeBase64URL([]byte(header)) + "." + EncodeBase64URL([]byte(payload))
	return signingInput + "." + EncodeBase64URL(enc.Encrypt([]byte(signingInput)))
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func mustPayload(t testing.TB, claims string) *Payload {
	t.Helper()
	p, err := ParsePayload([]byte(claims))
	if err != nil {
		t.Fatalf("Failed to parse payload %s: %v", claims, err)
	}
	return p
}

func expPayload(t testing.TB, exp time.Time) *Payload {
	return mustPayload(t, fmt.Sprintf(`{"exp":%d}`, exp.Unix()))
}

func mustConfig(t testing.TB, opts ...ConfigOption) *Config {
	t.Helper()
	cfg, err := NewConfig(opts...)
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}
	return cfg
}

type rejectsValidator struct{}

func (rejectsValidator) Validate(*Payload) bool { return false }

type acceptsValidator struct{}

func (acceptsValidator) Validate(*Payload) bool { return true }
