package webauthn

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeBase64URL encodes bytes into the URL-safe base64 alphabet without
// padding, the text form used for challenges, user handles, and credential
// payloads on the wire.
func EncodeBase64URL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeBase64URL is the inverse of EncodeBase64URL. Padded input is
// accepted and stripped before decoding.
func DecodeBase64URL(s string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return nil, fmt.Errorf("decode base64url: %w", err)
	}
	return b, nil
}
