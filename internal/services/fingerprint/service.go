package fingerprint

import (
	"errors"
	"fmt"
	"unicode"

	"go.uber.org/zap"

	"freshprint/internal/crypto"
	"freshprint/internal/domain"
	proto "freshprint/internal/protocol/fingerprint"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)

	// ErrInvalidPublicKey is returned by Check when the PEM cannot be parsed.
	ErrInvalidPublicKey = errors.New("invalid public key")
)

// Service creates the local key pair and mints and checks fingerprints.
type Service struct {
	store    domain.KeyStore
	provider domain.CryptoProvider
	protocol *proto.Protocol
	clock    domain.Clock
	log      *zap.Logger
}

// New returns a fingerprint service. A nil logger discards output.
func New(
	store domain.KeyStore,
	provider domain.CryptoProvider,
	clock domain.Clock,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:    store,
		provider: provider,
		protocol: proto.New(provider),
		clock:    clock,
		log:      log,
	}
}

// CreateKeyPair generates a key pair, saves it encrypted with the passphrase
// and returns the public key PEM.
func (s *Service) CreateKeyPair(passphrase string) (domain.PublicKeyPEM, error) {
	if !isSecurePassphrase(passphrase) {
		return "", ErrWeakPassphrase
	}
	kp, err := s.provider.GenerateKeyPair()
	if err != nil {
		return "", err
	}
	if err := s.store.SaveKeyPair(passphrase, kp); err != nil {
		return "", fmt.Errorf("saving key pair: %w", err)
	}
	pub, err := crypto.EncodePublicKeyPEM(kp.Public)
	if err != nil {
		return "", err
	}
	s.log.Info("key pair created")
	return pub, nil
}

// PublicKey returns the stored public key PEM.
func (s *Service) PublicKey() (domain.PublicKeyPEM, error) {
	return s.store.LoadPublicKey()
}

// Issue mints a fingerprint for the stored key pair at the service clock.
func (s *Service) Issue(passphrase string) (domain.Fingerprint, error) {
	kp, err := s.store.LoadKeyPair(passphrase)
	if err != nil {
		return "", fmt.Errorf("loading key pair: %w", err)
	}
	fp, err := s.protocol.Generate(kp, s.clock)
	if err != nil {
		return "", fmt.Errorf("generating fingerprint: %w", err)
	}
	if minted, err := proto.MintedAt(fp); err == nil {
		s.log.Info("fingerprint issued", zap.Uint64("minted", minted))
	}
	return fp, nil
}

// Check verifies fp against the PEM public key. It returns nil when valid,
// ErrInvalidPublicKey for an unusable key and a protocol sentinel otherwise.
func (s *Service) Check(pub domain.PublicKeyPEM, fp domain.Fingerprint) error {
	key, err := crypto.ParsePublicKeyPEM(pub)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	err = s.protocol.Check(key, fp, s.clock)
	if err != nil {
		s.log.Debug("fingerprint rejected", zap.String("reason", proto.Reason(err)), zap.Error(err))
	}
	return err
}

// Verify reports whether fp is valid for pub.
func (s *Service) Verify(pub domain.PublicKeyPEM, fp domain.Fingerprint) bool {
	return s.Check(pub, fp) == nil
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.FingerprintService.
var _ domain.FingerprintService = (*Service)(nil)
