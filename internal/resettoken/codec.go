package resettoken

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// Payload is the signed part of a reset token. The JSON keys are part of the
// wire contract shared with the frontend and must not change.
type Payload struct {
	UserID    int64  `json:"uid"`
	ExpiresAt int64  `json:"exp"`
	CodeHash  string `json:"ch"`
}

type wirePayload struct {
	UserID    *int64  `json:"uid"`
	ExpiresAt *int64  `json:"exp"`
	CodeHash  *string `json:"ch"`
}

// EncodePayload renders p as compact JSON and base64url-encodes it without padding.
func EncodePayload(p Payload) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return "", err
	}
	raw := bytes.TrimRight(buf.Bytes(), "\n")
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodePayload reverses EncodePayload. Padding on the input is tolerated.
func DecodePayload(s string) (Payload, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil || len(raw) == 0 {
		return Payload{}, ErrFormat
	}

	var w wirePayload
	if err := json.Unmarshal(raw, &w); err != nil {
		return Payload{}, ErrMalformed
	}
	if w.UserID == nil || w.ExpiresAt == nil || w.CodeHash == nil {
		return Payload{}, ErrMalformed
	}
	return Payload{UserID: *w.UserID, ExpiresAt: *w.ExpiresAt, CodeHash: *w.CodeHash}, nil
}

// Signer produces and checks "payload.signature" tokens with HMAC-SHA256.
type Signer struct {
	secret []byte
}

func NewSigner(secret []byte) *Signer {
	key := make([]byte, len(secret))
	copy(key, secret)
	return &Signer{secret: key}
}

func (s *Signer) signature(payloadB64 string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payloadB64))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Sign encodes p and appends its signature.
func (s *Signer) Sign(p Payload) (string, error) {
	payloadB64, err := EncodePayload(p)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	return payloadB64 + "." + s.signature(payloadB64), nil
}

// Parse splits token, decodes the payload and checks the signature. The
// returned string is the signature half, usable as a stable token key.
func (s *Signer) Parse(token string) (Payload, string, error) {
	payloadB64, sig, ok := strings.Cut(token, ".")
	if !ok || payloadB64 == "" {
		return Payload{}, "", ErrFormat
	}

	p, err := DecodePayload(payloadB64)
	if err != nil {
		return Payload{}, "", err
	}

	expected := s.signature(payloadB64)
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return Payload{}, "", ErrSignature
	}
	return p, sig, nil
}
