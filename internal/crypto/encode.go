package crypto

import (
	"encoding/base64"
	"errors"
	"strings"
)

// b64url is base64url without padding, rejecting non-canonical trailing bits.
var b64url = base64.RawURLEncoding.Strict()

// B64URL returns base64url encoding without padding.
func B64URL(b []byte) string { return b64url.EncodeToString(b) }

// DecodeB64URL decodes base64url without padding. Padded input is an error,
// and so are line breaks, which encoding/base64 would otherwise skip.
func DecodeB64URL(s string) ([]byte, error) {
	if strings.ContainsAny(s, "\r\n") {
		return nil, errors.New("illegal line break in base64url data")
	}
	return b64url.DecodeString(s)
}
