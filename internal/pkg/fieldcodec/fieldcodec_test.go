package fieldcodec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	c := New("unit-test-secret")
	for _, s := range []string{
		"hello world",
		"message with : colons : inside",
		"unicode ✓ पाठ",
		strings.Repeat("long ", 200),
	} {
		token := c.Encrypt(s)
		require.True(t, strings.HasPrefix(token, "enc:v1:"), "token %q", token)
		assert.Len(t, strings.Split(token, ":"), 5)
		assert.Equal(t, s, c.Decrypt(token))
	}
}

func TestEncrypt_Idempotent(t *testing.T) {
	c := New("unit-test-secret")
	token := c.Encrypt("do not double encrypt")
	assert.Equal(t, token, c.Encrypt(token))
}

func TestEncrypt_EmptyPassesThrough(t *testing.T) {
	c := New("unit-test-secret")
	assert.Equal(t, "", c.Encrypt(""))
	assert.Equal(t, "", c.Decrypt(""))
}

func TestPtrVariants_NilPassesThrough(t *testing.T) {
	c := New("unit-test-secret")
	assert.Nil(t, c.EncryptPtr(nil))
	assert.Nil(t, c.DecryptPtr(nil))

	s := "remark"
	enc := c.EncryptPtr(&s)
	require.NotNil(t, enc)
	dec := c.DecryptPtr(enc)
	require.NotNil(t, dec)
	assert.Equal(t, "remark", *dec)
}

func TestDecrypt_LegacyPlaintextUnchanged(t *testing.T) {
	c := New("unit-test-secret")
	for _, s := range []string{
		"hello world",
		"plain with : colons",
		"enc:v1:short", // token prefix but wrong field count
	} {
		assert.Equal(t, s, c.Decrypt(s))
	}
}

func TestDecrypt_UnknownVersionUnchanged(t *testing.T) {
	c := New("unit-test-secret")
	token := c.Encrypt("future data")
	v2 := strings.Replace(token, "enc:v1:", "enc:v2:", 1)
	assert.Equal(t, v2, c.Decrypt(v2))
}

// Flipping any byte of the tag or ciphertext segment must make Decrypt return
// the tampered token itself, never a wrong plaintext and never a panic.
func TestDecrypt_TamperedTokenReturnedUnchanged(t *testing.T) {
	c := New("unit-test-secret")
	token := c.Encrypt("sensitive chat message body")
	parts := strings.Split(token, ":")
	require.Len(t, parts, 5)

	for _, idx := range []int{3, 4} { // tag, ciphertext
		mutated := make([]string, len(parts))
		copy(mutated, parts)
		seg := []byte(mutated[idx])
		if seg[0] == 'A' {
			seg[0] = 'B'
		} else {
			seg[0] = 'A'
		}
		mutated[idx] = string(seg)
		tampered := strings.Join(mutated, ":")

		var failures int
		c.OnFailure = func(op string, err error) { failures++ }
		got := c.Decrypt(tampered)
		c.OnFailure = nil

		assert.Equal(t, tampered, got, "segment %d", idx)
		assert.Equal(t, 1, failures, "segment %d", idx)
	}
}

func TestDecrypt_WrongKeyReturnsToken(t *testing.T) {
	token := New("key one").Encrypt("secret")
	other := New("key two")
	assert.Equal(t, token, other.Decrypt(token))
}

func TestNew_SecretFallbackOrder(t *testing.T) {
	// Same effective secret -> interoperable codecs.
	a := New("", "session-secret")
	b := New("session-secret")
	assert.Equal(t, "hi", b.Decrypt(a.Encrypt("hi")))

	// All empty -> built-in default, still functional.
	d := New("", "")
	assert.Equal(t, "hi", d.Decrypt(d.Encrypt("hi")))
}
