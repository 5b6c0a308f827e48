package crypto

import (
	stdcrypto "crypto"
	"crypto/ed25519"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"

	"freshprint/internal/domain"
)

const publicKeyBlockType = "PUBLIC KEY"

var (
	// ErrInvalidPEM is returned when PEM text has no decodable body.
	ErrInvalidPEM = errors.New("invalid PEM public key")
)

// EncodePublicKeyPEM wraps the SPKI DER of pub in a PUBLIC KEY block,
// 64 base64 characters per line.
func EncodePublicKeyPEM(pub stdcrypto.PublicKey) (domain.PublicKeyPEM, error) {
	k, err := ed25519Public(pub)
	if err != nil {
		return "", err
	}
	der, err := x509.MarshalPKIXPublicKey(k)
	if err != nil {
		return "", err
	}
	b := pem.EncodeToMemory(&pem.Block{Type: publicKeyBlockType, Bytes: der})
	return domain.PublicKeyPEM(b), nil
}

// ParsePublicKeyPEM returns the Ed25519 public key carried by text.
//
// Every line containing "-----" is dropped and the rest is decoded as
// standard base64, so armor headers and trailing text around a single block
// do not matter.
func ParsePublicKeyPEM(text domain.PublicKeyPEM) (stdcrypto.PublicKey, error) {
	var body strings.Builder
	for _, line := range strings.Split(string(text), "\n") {
		if strings.Contains(line, "-----") {
			continue
		}
		body.WriteString(strings.TrimSpace(line))
	}
	if body.Len() == 0 {
		return nil, ErrInvalidPEM
	}
	der, err := base64.StdEncoding.DecodeString(body.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPEM, err)
	}
	return ParsePublicKeyDER(der)
}

// ParsePublicKeyDER parses an SPKI DER and requires an Ed25519 key.
func ParsePublicKeyDER(der []byte) (stdcrypto.PublicKey, error) {
	pub, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}
	k, ok := pub.(ed25519.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: public key %T", ErrUnsupportedKey, pub)
	}
	return k, nil
}

// MarshalPrivateKey returns the PKCS#8 DER of priv.
func MarshalPrivateKey(priv stdcrypto.PrivateKey) ([]byte, error) {
	k, err := ed25519Private(priv)
	if err != nil {
		return nil, err
	}
	return x509.MarshalPKCS8PrivateKey(k)
}

// ParsePrivateKey parses PKCS#8 DER and returns the key pair it holds.
func ParsePrivateKey(der []byte) (domain.KeyPair, error) {
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return domain.KeyPair{}, fmt.Errorf("parsing private key: %w", err)
	}
	k, ok := key.(ed25519.PrivateKey)
	if !ok {
		return domain.KeyPair{}, fmt.Errorf("%w: private key %T", ErrUnsupportedKey, key)
	}
	return domain.KeyPair{Public: k.Public(), Private: k}, nil
}
