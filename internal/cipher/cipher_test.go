package cipher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCipher(t *testing.T) (*Cipher, string) {
	t.Helper()
	key, err := GenerateKey()
	require.NoError(t, err)
	c, err := New(key)
	require.NoError(t, err)
	return c, key
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	c, _ := newTestCipher(t)

	inputs := []string{"p", "hunter2", "pässwörd ✓", strings.Repeat("x", 1000), " spaced out "}
	for _, in := range inputs {
		tok, err := c.Encrypt(in)
		require.NoError(t, err)
		assert.NotEqual(t, in, tok)

		out, err := c.Decrypt(tok)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}

func TestEncrypt_FreshTokenEachCall(t *testing.T) {
	c, _ := newTestCipher(t)

	a, err := c.Encrypt("same")
	require.NoError(t, err)
	b, err := c.Encrypt("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestDecrypt_Corrupted(t *testing.T) {
	c, _ := newTestCipher(t)

	tok, err := c.Encrypt("secret")
	require.NoError(t, err)

	flipped := []byte(tok)
	mid := len(flipped) / 2
	if flipped[mid] == 'A' {
		flipped[mid] = 'B'
	} else {
		flipped[mid] = 'A'
	}

	for _, bad := range []string{"", "not-a-token", tok[:len(tok)/2], string(flipped)} {
		_, err := c.Decrypt(bad)
		assert.ErrorIs(t, err, ErrDecryption, "token %q", bad)
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	c1, _ := newTestCipher(t)
	c2, _ := newTestCipher(t)

	tok, err := c1.Encrypt("secret")
	require.NoError(t, err)

	_, err = c2.Decrypt(tok)
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestPreviousKeys(t *testing.T) {
	old, oldKey := newTestCipher(t)
	tok, err := old.Encrypt("secret")
	require.NoError(t, err)

	newKey, err := GenerateKey()
	require.NoError(t, err)
	rotated, err := New(newKey, oldKey)
	require.NoError(t, err)

	plain, err := rotated.Decrypt(tok)
	require.NoError(t, err)
	assert.Equal(t, "secret", plain)

	fresh, err := rotated.Reencrypt(tok)
	require.NoError(t, err)

	onlyNew, err := New(newKey)
	require.NoError(t, err)
	plain, err = onlyNew.Decrypt(fresh)
	require.NoError(t, err)
	assert.Equal(t, "secret", plain)

	_, err = onlyNew.Decrypt(tok)
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestNew_InvalidKey(t *testing.T) {
	_, err := New("short")
	assert.ErrorIs(t, err, ErrInvalidKey)

	good, err := GenerateKey()
	require.NoError(t, err)
	_, err = New(good, "also-bad")
	assert.ErrorIs(t, err, ErrInvalidKey)
}
