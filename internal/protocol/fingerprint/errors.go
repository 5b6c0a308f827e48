package fingerprint

import "errors"

var (
	ErrInvalidLength       = errors.New("invalid length")
	ErrMalformedFieldCount = errors.New("fingerprint must have exactly 5 fields")
	ErrBase64Decode        = errors.New("invalid base64url field")
	ErrUnknownHashMethod   = errors.New("unknown hash method")
	ErrUnknownSignMethod   = errors.New("unknown sign method")
	ErrMalformedSalt       = errors.New("salt must be 8 bytes")
	ErrStaleFingerprint    = errors.New("fingerprint is stale")
	ErrHashMismatch        = errors.New("hash mismatch")
	ErrSignatureInvalid    = errors.New("invalid signature")
	// ErrProvider wraps crypto provider failures that are not caused by the
	// fingerprint text, e.g. a public key the provider cannot export.
	ErrProvider = errors.New("crypto provider failure")
)

// reasons maps sentinels to stable labels for logs and metrics.
var reasons = []struct {
	err   error
	label string
}{
	{ErrMalformedFieldCount, "malformed_field_count"},
	{ErrBase64Decode, "base64_decode"},
	{ErrUnknownHashMethod, "unknown_hash_method"},
	{ErrUnknownSignMethod, "unknown_sign_method"},
	{ErrMalformedSalt, "malformed_salt"},
	{ErrInvalidLength, "malformed_salt"},
	{ErrStaleFingerprint, "stale"},
	{ErrHashMismatch, "hash_mismatch"},
	{ErrSignatureInvalid, "signature_invalid"},
	{ErrProvider, "provider"},
}

// Reason returns a short label for err: "ok" for nil, "unknown" for errors
// that did not come from this package.
func Reason(err error) string {
	if err == nil {
		return "ok"
	}
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.label
		}
	}
	return "unknown"
}

// Reasons lists every label Reason can return.
func Reasons() []string {
	out := []string{"ok"}
	seen := map[string]bool{"ok": true}
	for _, r := range reasons {
		if !seen[r.label] {
			seen[r.label] = true
			out = append(out, r.label)
		}
	}
	return append(out, "unknown")
}
