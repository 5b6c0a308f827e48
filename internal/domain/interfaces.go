package domain

import "crypto"

// Clock reports the current time as whole seconds since the Unix epoch.
type Clock interface {
	NowSeconds() uint64
}

// CryptoProvider is the primitive engine the fingerprint protocol is built on.
type CryptoProvider interface {
	GenerateKeyPair() (KeyPair, error)
	// ExportPublicKey returns the canonical SubjectPublicKeyInfo DER of pub.
	ExportPublicKey(pub crypto.PublicKey) ([]byte, error)
	DigestSHA256(b []byte) [32]byte
	Sign(priv crypto.PrivateKey, msg []byte) ([]byte, error)
	Verify(pub crypto.PublicKey, msg, sig []byte) bool
}

// KeyStore persists the local key pair between CLI invocations.
type KeyStore interface {
	SaveKeyPair(passphrase string, kp KeyPair) error
	LoadKeyPair(passphrase string) (KeyPair, error)
	LoadPublicKey() (PublicKeyPEM, error)
}

// FingerprintService issues and checks fingerprints for the local identity.
type FingerprintService interface {
	CreateKeyPair(passphrase string) (PublicKeyPEM, error)
	Issue(passphrase string) (Fingerprint, error)
	Check(pub PublicKeyPEM, fp Fingerprint) error
}
