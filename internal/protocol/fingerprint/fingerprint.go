package fingerprint

import (
	stdcrypto "crypto"
	"crypto/subtle"
	"fmt"

	"freshprint/internal/crypto"
	"freshprint/internal/domain"
)

const (
	// HashMethod and SignMethod are the only accepted method names.
	HashMethod = "sha256"
	SignMethod = "ed25519"

	// MaxAge is how many seconds a fingerprint stays fresh. A fingerprint
	// exactly MaxAge seconds old is still accepted.
	MaxAge = 60 * 60
)

// Protocol generates and verifies fingerprints with a crypto provider.
// It holds no mutable state and is safe for concurrent use.
type Protocol struct {
	provider domain.CryptoProvider
}

// New returns a Protocol using provider, or Ed25519Provider when nil.
func New(provider domain.CryptoProvider) *Protocol {
	if provider == nil {
		provider = crypto.NewEd25519Provider()
	}
	return &Protocol{provider: provider}
}

// Generate mints a fingerprint for kp at clk's current second.
func (p *Protocol) Generate(kp domain.KeyPair, clk domain.Clock) (domain.Fingerprint, error) {
	spki, err := p.provider.ExportPublicKey(kp.Public)
	if err != nil {
		return "", fmt.Errorf("exporting public key: %w", err)
	}
	salt := EncodeUint64(clk.NowSeconds())
	digest := p.provider.DigestSHA256(concat(spki, salt[:]))

	// The signed message is the digest, not spki||salt.
	sig, err := p.provider.Sign(kp.Private, digest[:])
	if err != nil {
		return "", fmt.Errorf("signing digest: %w", err)
	}

	return Encode(Parts{
		HashMethod: HashMethod,
		Hash:       digest[:],
		Salt:       salt[:],
		SignMethod: SignMethod,
		Signature:  sig,
	}), nil
}

// Verify reports whether fp was minted for pub by the matching private key
// no more than MaxAge seconds before clk's current second.
func (p *Protocol) Verify(pub stdcrypto.PublicKey, fp domain.Fingerprint, clk domain.Clock) bool {
	return p.Check(pub, fp, clk) == nil
}

// Check is Verify with the reason for rejection.
func (p *Protocol) Check(pub stdcrypto.PublicKey, fp domain.Fingerprint, clk domain.Clock) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrProvider, r)
		}
	}()

	parts, err := Decode(fp)
	if err != nil {
		return err
	}
	if parts.HashMethod != HashMethod {
		return fmt.Errorf("%w: %q", ErrUnknownHashMethod, parts.HashMethod)
	}
	if parts.SignMethod != SignMethod {
		return fmt.Errorf("%w: %q", ErrUnknownSignMethod, parts.SignMethod)
	}
	if len(parts.Salt) != SaltSize {
		return fmt.Errorf("%w: got %d", ErrMalformedSalt, len(parts.Salt))
	}
	minted, err := DecodeUint64(parts.Salt)
	if err != nil {
		return err
	}
	if now := clk.NowSeconds(); now > minted && now-minted > MaxAge {
		return fmt.Errorf("%w: minted %d, now %d", ErrStaleFingerprint, minted, now)
	}

	spki, err := p.provider.ExportPublicKey(pub)
	if err != nil {
		return fmt.Errorf("%w: exporting public key: %v", ErrProvider, err)
	}
	digest := p.provider.DigestSHA256(concat(spki, parts.Salt))
	if subtle.ConstantTimeCompare(digest[:], parts.Hash) != 1 {
		return ErrHashMismatch
	}
	if !p.provider.Verify(pub, digest[:], parts.Signature) {
		return ErrSignatureInvalid
	}
	return nil
}

// MintedAt returns the salt of fp as Unix seconds without verifying anything.
func MintedAt(fp domain.Fingerprint) (uint64, error) {
	parts, err := Decode(fp)
	if err != nil {
		return 0, err
	}
	return DecodeUint64(parts.Salt)
}

func concat(a, b []byte) []byte {
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
