// Package crypto exposes the minimal primitives used by freshprint.
//
// Contents
//
//   - Ed25519 provider: key generation, SPKI export, SHA-256, signing and
//     verification (Ed25519Provider)
//   - PEM transport of SubjectPublicKeyInfo public keys (EncodePublicKeyPEM,
//     ParsePublicKeyPEM) and PKCS#8 private key DER (MarshalPrivateKey,
//     ParsePrivateKey)
//   - base64 helpers (B64URL, DecodeB64URL)
//
// # Notes
//
// Keys cross package boundaries as opaque crypto.PublicKey / crypto.PrivateKey
// handles; only this package knows they are ed25519 values.
package crypto
