package cryptox

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	hash, err := HashPassword("user123")
	require.NoError(t, err)
	require.Contains(t, hash, "$argon2id$v=19$")
	require.NotContains(t, hash, "user123")

	require.NoError(t, VerifyPassword("user123", hash))
	require.ErrorIs(t, VerifyPassword("wrong", hash), ErrPasswordMismatch)
}

func TestHashPasswordSalted(t *testing.T) {
	SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	first, err := HashPassword("same-password")
	require.NoError(t, err)
	second, err := HashPassword("same-password")
	require.NoError(t, err)

	// Different salts must produce different encodings for the same input.
	require.NotEqual(t, first, second)
	require.NoError(t, VerifyPassword("same-password", first))
	require.NoError(t, VerifyPassword("same-password", second))
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	require.Error(t, VerifyPassword("x", "not-a-phc-string"))
	require.Error(t, VerifyPassword("x", "$bcrypt$v=19$m=19456,t=2,p=1$salt$hash"))
	require.Error(t, VerifyPassword("x", "$argon2id$v=18$m=19456,t=2,p=1$salt$hash"))
}
