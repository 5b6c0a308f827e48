package fingerprint_test

import (
	"bytes"
	"errors"
	"testing"

	"freshprint/internal/domain"
	"freshprint/internal/protocol/fingerprint"
)

func TestCodec_RoundTrip(t *testing.T) {
	in := fingerprint.Parts{
		HashMethod: "sha256",
		Hash:       bytes.Repeat([]byte{0xab}, 32),
		Salt:       []byte{1, 2, 3, 4, 5, 6, 7, 8},
		SignMethod: "ed25519",
		Signature:  bytes.Repeat([]byte{0xfe}, 64),
	}
	text := fingerprint.Encode(in)
	out, err := fingerprint.Decode(text)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.HashMethod != in.HashMethod || out.SignMethod != in.SignMethod ||
		!bytes.Equal(out.Hash, in.Hash) || !bytes.Equal(out.Salt, in.Salt) ||
		!bytes.Equal(out.Signature, in.Signature) {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestDecode_FieldCount(t *testing.T) {
	cases := []string{
		"",
		"sha256",
		"sha256.AAAA.AAAA.ed25519",
		"sha256.AAAA.AAAA.ed25519.AAAA.AAAA",
		"sha256.AAAA.AAAA.ed25519.AAAA.",
	}
	for _, c := range cases {
		if _, err := fingerprint.Decode(domain.Fingerprint(c)); !errors.Is(err, fingerprint.ErrMalformedFieldCount) {
			t.Fatalf("%q: want ErrMalformedFieldCount, got %v", c, err)
		}
	}
}

func TestDecode_Base64Errors(t *testing.T) {
	cases := []string{
		"sha256.AA==.AAAA.ed25519.AAAA", // padding
		"sha256.AAAA.A+/A.ed25519.AAAA", // standard alphabet
		"sha256.AAAA.AAAA.ed25519.A",    // impossible length
		"sha256.AAAA.AA\nAA.ed25519.AAAA",
	}
	for _, c := range cases {
		if _, err := fingerprint.Decode(domain.Fingerprint(c)); !errors.Is(err, fingerprint.ErrBase64Decode) {
			t.Fatalf("%q: want ErrBase64Decode, got %v", c, err)
		}
	}
}

func TestDecode_EmptyBinaryFieldsAreShapeValid(t *testing.T) {
	p, err := fingerprint.Decode("x...y.")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.HashMethod != "x" || p.SignMethod != "y" || len(p.Hash)+len(p.Salt)+len(p.Signature) != 0 {
		t.Fatalf("unexpected parts %+v", p)
	}
}

func TestReason(t *testing.T) {
	if got := fingerprint.Reason(nil); got != "ok" {
		t.Fatalf("want ok, got %q", got)
	}
	if got := fingerprint.Reason(errors.New("boom")); got != "unknown" {
		t.Fatalf("want unknown, got %q", got)
	}
	_, err := fingerprint.Decode("a.b")
	if got := fingerprint.Reason(err); got != "malformed_field_count" {
		t.Fatalf("want malformed_field_count, got %q", got)
	}
	labels := fingerprint.Reasons()
	if labels[0] != "ok" || labels[len(labels)-1] != "unknown" {
		t.Fatalf("unexpected labels %v", labels)
	}
}
