package jwtauth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"strings"
)

const (
	AlgHS256 = "HS256"
	AlgHS384 = "HS384"
	AlgHS512 = "HS512"
)

// Encryptor is a named signing strategy. Name must match the "alg" header of
// the tokens it verifies and Encrypt must be a deterministic MAC under a key
// fixed at construction.
type Encryptor interface {
	Name() string
	Encrypt(data []byte) []byte
}

// HMACEncryptor computes HMAC signatures with a shared secret.
// It is safe for concurrent use.
type HMACEncryptor struct {
	name     string
	hashFunc func() hash.Hash
	secret   []byte
}

// NewHMACEncryptor returns an encryptor labelled name that computes
// HMAC(hashFunc, secret). The secret is copied.
func NewHMACEncryptor(name string, hashFunc func() hash.Hash, secret []byte) *HMACEncryptor {
	return &HMACEncryptor{
		name:     name,
		hashFunc: hashFunc,
		secret:   append([]byte(nil), secret...),
	}
}

// NewHS256 returns an HMAC-SHA256 encryptor.
func NewHS256(secret []byte) *HMACEncryptor {
	return NewHMACEncryptor(AlgHS256, sha256.New, secret)
}

// NewHS384 returns an HMAC-SHA384 encryptor.
func NewHS384(secret []byte) *HMACEncryptor {
	return NewHMACEncryptor(AlgHS384, sha512.New384, secret)
}

// NewHS512 returns an HMAC-SHA512 encryptor.
func NewHS512(secret []byte) *HMACEncryptor {
	return NewHMACEncryptor(AlgHS512, sha512.New, secret)
}

// NewEncryptor looks up the HMAC strategy for alg.
func NewEncryptor(alg string, secret []byte) (*HMACEncryptor, error) {
	switch alg {
	case AlgHS256:
		return NewHS256(secret), nil
	case AlgHS384:
		return NewHS384(secret), nil
	case AlgHS512:
		return NewHS512(secret), nil
	}
	if strings.EqualFold(alg, "none") {
		return nil, NewValidationError(ErrNoneAlgorithm, "none algorithm is prohibited", nil)
	}
	return nil, NewValidationError(
		ErrUnsupportedAlgorithm,
		fmt.Sprintf("algorithm %s not supported (available: %s, %s, %s)", alg, AlgHS256, AlgHS384, AlgHS512),
		nil,
	)
}

func (e *HMACEncryptor) Name() string {
	return e.name
}

func (e *HMACEncryptor) Encrypt(data []byte) []byte {
	mac := hmac.New(e.hashFunc, e.secret)
	mac.Write(data)
	return mac.Sum(nil)
}
