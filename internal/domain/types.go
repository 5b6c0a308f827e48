package domain

import "crypto"

// KeyPair holds opaque signing key handles. The concrete types are whatever
// the CryptoProvider that produced them understands.
type KeyPair struct {
	Public  crypto.PublicKey
	Private crypto.PrivateKey
}

// Fingerprint is the dot-delimited wire form:
//
//	<hashMethod>.<hashB64>.<saltB64>.<signMethod>.<signatureB64>
type Fingerprint string

func (f Fingerprint) String() string { return string(f) }

// PublicKeyPEM is a PEM encoded SubjectPublicKeyInfo.
type PublicKeyPEM string
