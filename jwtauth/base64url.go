package jwtauth

import (
	"encoding/base64"
	"strings"
)

var fromBase64URL = strings.NewReplacer("-", "+", "_", "/")

// EncodeBase64URL encodes b as unpadded URL-safe base64.
func EncodeBase64URL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeBase64URL reverses EncodeBase64URL. The input is mapped back to the
// standard alphabet and re-padded to a multiple of 4 before decoding, so an
// input whose length leaves a remainder of 1 is always rejected.
func DecodeBase64URL(s string) ([]byte, error) {
	std := fromBase64URL.Replace(s)
	if rem := len(std) % 4; rem != 0 {
		std += strings.Repeat("=", 4-rem)
	}

	b, err := base64.StdEncoding.DecodeString(std)
	if err != nil {
		return nil, NewValidationError(ErrMalformed, "invalid base64url segment", err)
	}
	return b, nil
}

// ValidBase64URL reports whether every character of s is in [A-Za-z0-9_-].
// The empty string is valid.
func ValidBase64URL(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '-' || c == '_') {
			return false
		}
	}
	return true
}
