// Package fingerprint implements short-lived, self-authenticating key
// fingerprints.
//
// # Format
//
//	sha256.<hash>.<salt>.ed25519.<signature>
//
// All three binary fields are base64url without padding:
//   - hash: SHA-256 over SPKI(publicKey) || salt (32 bytes)
//   - salt: the mint time as a little-endian u64 of Unix seconds (8 bytes)
//   - signature: Ed25519 over the hash bytes (64 bytes)
//
// # Flows
//
// Generate:
//  1. Export the public key as SubjectPublicKeyInfo DER.
//  2. Encode the clock's current second as the salt.
//  3. hash = SHA-256(spki || salt).
//  4. Sign hash with the private key.
//
// Verify:
//  1. Split into exactly five fields and decode the binary ones.
//  2. Require the literal method names; there is no negotiation.
//  3. Reject salts older than MaxAge. Salts in the future are accepted.
//  4. Recompute the hash from the caller's public key and compare.
//  5. Verify the signature over the recomputed hash.
//
// # Errors
//
// Check returns one of the sentinel errors below, possibly wrapped. Verify
// collapses every failure to false and never panics, so it is safe to call on
// untrusted input. Generate returns provider failures unchanged.
package fingerprint
