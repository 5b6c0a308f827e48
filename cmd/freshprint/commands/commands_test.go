package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testPass = "Correct-Horse-42"
	mintedAt = 1700000000
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func atFlag(sec uint64) string { return "--at=" + strconv.FormatUint(sec, 10) }

func TestKeygenIssueVerify(t *testing.T) {
	home := t.TempDir()

	pub, err := run(t, "keygen", "--home", home, "-p", testPass)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(pub, "-----BEGIN PUBLIC KEY-----"))

	stored, err := run(t, "pubkey", "--home", home)
	require.NoError(t, err)
	require.Equal(t, pub, stored)

	out, err := run(t, "issue", "--home", home, "-p", testPass, atFlag(mintedAt))
	require.NoError(t, err)
	fp := strings.TrimSpace(out)
	require.Len(t, strings.Split(fp, "."), 5)

	out, err = run(t, "verify", "--home", home, atFlag(mintedAt+3600), fp)
	require.NoError(t, err)
	require.Equal(t, "valid\n", out)

	out, err = run(t, "verify", "--home", home, atFlag(mintedAt+3601), fp)
	require.ErrorIs(t, err, errInvalid)
	require.Equal(t, "invalid: stale\n", out)
}

func TestVerify_PubkeyFile(t *testing.T) {
	issuer, other := t.TempDir(), t.TempDir()

	pub, err := run(t, "keygen", "--home", issuer, "-p", testPass)
	require.NoError(t, err)
	_, err = run(t, "keygen", "--home", other, "-p", testPass)
	require.NoError(t, err)
	out, err := run(t, "issue", "--home", issuer, "-p", testPass, atFlag(mintedAt))
	require.NoError(t, err)
	fp := strings.TrimSpace(out)

	pemPath := filepath.Join(t.TempDir(), "issuer.pem")
	require.NoError(t, os.WriteFile(pemPath, []byte(pub), 0o644))

	// other's home has a different stored key; --pubkey wins.
	out, err = run(t, "verify", "--home", other, "--pubkey", pemPath, atFlag(mintedAt+1), fp)
	require.NoError(t, err)
	require.Equal(t, "valid\n", out)

	out, err = run(t, "verify", "--home", other, atFlag(mintedAt+1), fp)
	require.ErrorIs(t, err, errInvalid)
	require.Equal(t, "invalid: hash_mismatch\n", out)
}

func TestKeygen_Errors(t *testing.T) {
	home := t.TempDir()

	_, err := run(t, "keygen", "--home", home)
	require.ErrorContains(t, err, "passphrase required")

	_, err = run(t, "keygen", "--home", home, "-p", "short")
	require.Error(t, err)

	_, err = run(t, "issue", "--home", home, "-p", testPass)
	require.Error(t, err)
}

func TestPassphraseFromEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv(envPassphrase, testPass)

	_, err := run(t, "keygen", "--home", home)
	require.NoError(t, err)
	out, err := run(t, "issue", "--home", home)
	require.NoError(t, err)
	require.NotEmpty(t, strings.TrimSpace(out))
}

func TestInspect(t *testing.T) {
	home := t.TempDir()
	_, err := run(t, "keygen", "--home", home, "-p", testPass)
	require.NoError(t, err)
	out, err := run(t, "issue", "--home", home, "-p", testPass, atFlag(mintedAt))
	require.NoError(t, err)

	out, err = run(t, "inspect", "--home", home, strings.TrimSpace(out))
	require.NoError(t, err)
	require.Contains(t, out, "hash method:  sha256")
	require.Contains(t, out, "minted:       1700000000 (2023-11-14T22:13:20Z)")
	require.Contains(t, out, "expires:      1700003600")
	require.Contains(t, out, "sign method:  ed25519")
	require.Contains(t, out, "signature:    64 bytes")

	_, err = run(t, "inspect", "--home", home, "a.b.c")
	require.Error(t, err)
}
