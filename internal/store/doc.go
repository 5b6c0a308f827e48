// Package store provides file-based persistence for the local key pair.
//
// KeyFileStore keeps two files under the configured home directory:
//   - key.enc: the PKCS#8 private key sealed with ChaCha20-Poly1305 under a
//     scrypt-derived key
//   - key.pub.pem: the SubjectPublicKeyInfo public key as PEM
//
// Files are written via temp file and rename. All methods are
// concurrency-safe via internal locking.
package store
