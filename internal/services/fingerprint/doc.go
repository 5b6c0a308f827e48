// Package fingerprint issues and checks fingerprints for the local key pair.
//
// It enforces the passphrase policy on key creation, persists keys via the
// domain.KeyStore and delegates the wire protocol to
// internal/protocol/fingerprint.
package fingerprint
