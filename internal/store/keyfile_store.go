package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"freshprint/internal/crypto"
	"freshprint/internal/domain"
	"freshprint/internal/util/memzero"
)

const (
	privateKeyFilename = "key.enc"
	publicKeyFilename  = "key.pub.pem"
)

var (
	// ErrNoKeyPair is returned when nothing has been saved yet.
	ErrNoKeyPair = errors.New("no key pair found; run keygen first")
)

// KeyFileStore persists the local key pair to disk.
type KeyFileStore struct {
	dir    string
	params scryptParams
	mu     sync.Mutex
}

// NewKeyFileStore returns a KeyFileStore rooted at dir.
func NewKeyFileStore(dir string) *KeyFileStore {
	return &KeyFileStore{dir: dir, params: scryptParamsDefault()}
}

// SaveKeyPair encrypts the private key with passphrase and writes both halves.
func (s *KeyFileStore) SaveKeyPair(passphrase string, kp domain.KeyPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	der, err := crypto.MarshalPrivateKey(kp.Private)
	if err != nil {
		return err
	}
	defer memzero.Zero(der)

	pubPEM, err := crypto.EncodePublicKeyPEM(kp.Public)
	if err != nil {
		return err
	}
	sealed, err := seal(passphrase, der, s.params)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(s.dir, privateKeyFilename), sealed, 0o600); err != nil {
		return fmt.Errorf("writing private key: %w", err)
	}
	if err := writeFile(filepath.Join(s.dir, publicKeyFilename), []byte(pubPEM), 0o644); err != nil {
		return fmt.Errorf("writing public key: %w", err)
	}
	return nil
}

// LoadKeyPair reads and decrypts the key pair.
func (s *KeyFileStore) LoadKeyPair(passphrase string) (domain.KeyPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(filepath.Join(s.dir, privateKeyFilename))
	if err != nil {
		return domain.KeyPair{}, err
	}
	if b == nil {
		return domain.KeyPair{}, ErrNoKeyPair
	}
	der, err := open(passphrase, b)
	if err != nil {
		return domain.KeyPair{}, err
	}
	defer memzero.Zero(der)
	return crypto.ParsePrivateKey(der)
}

// LoadPublicKey returns the stored public key PEM.
func (s *KeyFileStore) LoadPublicKey() (domain.PublicKeyPEM, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(filepath.Join(s.dir, publicKeyFilename))
	if err != nil {
		return "", err
	}
	if b == nil {
		return "", ErrNoKeyPair
	}
	return domain.PublicKeyPEM(b), nil
}

// Compile-time assertion that KeyFileStore implements domain.KeyStore.
var _ domain.KeyStore = (*KeyFileStore)(nil)
