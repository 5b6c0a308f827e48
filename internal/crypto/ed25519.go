package crypto

import (
	stdcrypto "crypto"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"errors"
	"fmt"
	"io"

	"freshprint/internal/domain"
)

var (
	// ErrUnsupportedKey is returned when a key handle is not an Ed25519 key.
	ErrUnsupportedKey = errors.New("unsupported key type")
)

// Ed25519Provider implements domain.CryptoProvider with crypto/ed25519.
//
// Rand is the entropy source for key generation; nil means crypto/rand.
// Tests may pass a fixed reader to get deterministic key pairs.
type Ed25519Provider struct {
	Rand io.Reader
}

// NewEd25519Provider returns a provider backed by crypto/rand.
func NewEd25519Provider() *Ed25519Provider { return &Ed25519Provider{} }

// GenerateKeyPair returns a new Ed25519 signing key pair.
func (p *Ed25519Provider) GenerateKeyPair() (domain.KeyPair, error) {
	r := p.Rand
	if r == nil {
		r = rand.Reader
	}
	pub, priv, err := ed25519.GenerateKey(r)
	if err != nil {
		return domain.KeyPair{}, fmt.Errorf("generating ed25519 key: %w", err)
	}
	return domain.KeyPair{Public: pub, Private: priv}, nil
}

// ExportPublicKey returns the PKIX (SubjectPublicKeyInfo) DER of pub.
func (p *Ed25519Provider) ExportPublicKey(pub stdcrypto.PublicKey) ([]byte, error) {
	k, err := ed25519Public(pub)
	if err != nil {
		return nil, err
	}
	return x509.MarshalPKIXPublicKey(k)
}

// DigestSHA256 returns SHA-256 of b.
func (p *Ed25519Provider) DigestSHA256(b []byte) [32]byte { return sha256.Sum256(b) }

// Sign signs msg with priv.
func (p *Ed25519Provider) Sign(priv stdcrypto.PrivateKey, msg []byte) ([]byte, error) {
	k, err := ed25519Private(priv)
	if err != nil {
		return nil, err
	}
	return ed25519.Sign(k, msg), nil
}

// Verify reports whether sig is a valid signature of msg by pub. Keys of the
// wrong type or size verify nothing.
func (p *Ed25519Provider) Verify(pub stdcrypto.PublicKey, msg, sig []byte) bool {
	k, err := ed25519Public(pub)
	if err != nil {
		return false
	}
	return ed25519.Verify(k, msg, sig)
}

func ed25519Public(pub stdcrypto.PublicKey) (ed25519.PublicKey, error) {
	var k ed25519.PublicKey
	switch v := pub.(type) {
	case ed25519.PublicKey:
		k = v
	case *ed25519.PublicKey:
		if v == nil {
			return nil, ErrUnsupportedKey
		}
		k = *v
	default:
		return nil, fmt.Errorf("%w: public key %T", ErrUnsupportedKey, pub)
	}
	if len(k) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: public key is %d bytes", ErrUnsupportedKey, len(k))
	}
	return k, nil
}

func ed25519Private(priv stdcrypto.PrivateKey) (ed25519.PrivateKey, error) {
	var k ed25519.PrivateKey
	switch v := priv.(type) {
	case ed25519.PrivateKey:
		k = v
	case *ed25519.PrivateKey:
		if v == nil {
			return nil, ErrUnsupportedKey
		}
		k = *v
	default:
		return nil, fmt.Errorf("%w: private key %T", ErrUnsupportedKey, priv)
	}
	if len(k) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: private key is %d bytes", ErrUnsupportedKey, len(k))
	}
	return k, nil
}

// Compile-time assertion that Ed25519Provider implements domain.CryptoProvider.
var _ domain.CryptoProvider = (*Ed25519Provider)(nil)
