package fingerprint

import (
	"fmt"
	"strings"

	"freshprint/internal/crypto"
	"freshprint/internal/domain"
)

const (
	separator  = "."
	fieldCount = 5
)

// Parts is the decoded view of a fingerprint.
type Parts struct {
	HashMethod string
	Hash       []byte
	Salt       []byte
	SignMethod string
	Signature  []byte
}

// Encode joins p into wire form. It does not validate p.
func Encode(p Parts) domain.Fingerprint {
	return domain.Fingerprint(strings.Join([]string{
		p.HashMethod,
		crypto.B64URL(p.Hash),
		crypto.B64URL(p.Salt),
		p.SignMethod,
		crypto.B64URL(p.Signature),
	}, separator))
}

// Decode splits fp into its five fields and decodes the binary ones. It
// checks shape only; method names and lengths are left to the caller.
func Decode(fp domain.Fingerprint) (Parts, error) {
	fields := strings.Split(string(fp), separator)
	if len(fields) != fieldCount {
		return Parts{}, fmt.Errorf("%w: got %d", ErrMalformedFieldCount, len(fields))
	}

	hash, err := crypto.DecodeB64URL(fields[1])
	if err != nil {
		return Parts{}, fmt.Errorf("%w: hash: %v", ErrBase64Decode, err)
	}
	salt, err := crypto.DecodeB64URL(fields[2])
	if err != nil {
		return Parts{}, fmt.Errorf("%w: salt: %v", ErrBase64Decode, err)
	}
	sig, err := crypto.DecodeB64URL(fields[4])
	if err != nil {
		return Parts{}, fmt.Errorf("%w: signature: %v", ErrBase64Decode, err)
	}

	return Parts{
		HashMethod: fields[0],
		Hash:       hash,
		Salt:       salt,
		SignMethod: fields[3],
		Signature:  sig,
	}, nil
}
