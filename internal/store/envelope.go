package store

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"freshprint/internal/util/memzero"
)

const (
	// The current supported version of the encrypted blob format stored on disk.
	envelopeFormatVersion = 1
	saltBytes             = 16
)

var (
	// ErrWrongPassphrase is returned when the passphrase is incorrect or the
	// ciphertext has been modified.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted key file")
)

// scryptParams are the KDF cost parameters recorded in each blob.
type scryptParams struct {
	N, R, P int
}

func scryptParamsDefault() scryptParams { return scryptParams{N: 1 << 15, R: 8, P: 1} }

// blob is the on-disk JSON structure holding the ciphertext and KDF parameters.
type blob struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Nonce  []byte `json:"nonce"`
	Cipher []byte `json:"cipher"`
}

// seal derives a key from passphrase and seals raw into a JSON blob. The
// salt doubles as associated data.
func seal(passphrase string, raw []byte, params scryptParams) ([]byte, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	aead, err := newAEAD(passphrase, salt, params)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return json.Marshal(blob{
		V:      envelopeFormatVersion,
		Salt:   salt,
		N:      params.N,
		R:      params.R,
		P:      params.P,
		Nonce:  nonce,
		Cipher: aead.Seal(nil, nonce, raw, salt),
	})
}

// open decrypts a blob produced by seal.
func open(passphrase string, b []byte) ([]byte, error) {
	var bl blob
	if err := json.Unmarshal(b, &bl); err != nil {
		return nil, fmt.Errorf("decoding key file: %w", err)
	}
	if bl.V != envelopeFormatVersion {
		return nil, fmt.Errorf("unsupported key file version %d", bl.V)
	}
	aead, err := newAEAD(passphrase, bl.Salt, scryptParams{N: bl.N, R: bl.R, P: bl.P})
	if err != nil {
		return nil, err
	}
	if len(bl.Nonce) != aead.NonceSize() {
		return nil, ErrWrongPassphrase
	}
	pt, err := aead.Open(nil, bl.Nonce, bl.Cipher, bl.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

// newAEAD wipes the derived key once the cipher holds its own copy.
func newAEAD(passphrase string, salt []byte, params scryptParams) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(passphrase), salt, params.N, params.R, params.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}
	defer memzero.Zero(key)
	return chacha20poly1305.New(key)
}
