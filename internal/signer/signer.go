// Package signer signs outgoing event payloads so receivers can verify
// their origin.
package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Header carries the payload signature.
const Header = "HashSHA256"

type Signer interface {
	Sign(data []byte) string
}

// HMACSigner signs with HMAC-SHA256 and a shared key.
type HMACSigner struct {
	key []byte
}

func NewHMACSigner(key string) *HMACSigner {
	return &HMACSigner{key: []byte(key)}
}

// Sign returns the hex encoded HMAC of data.
func (s *HMACSigner) Sign(data []byte) string {
	return hex.EncodeToString(s.sum(data))
}

func (s *HMACSigner) sum(data []byte) []byte {
	mac := hmac.New(sha256.New, s.key)
	mac.Write(data)
	return mac.Sum(nil)
}
