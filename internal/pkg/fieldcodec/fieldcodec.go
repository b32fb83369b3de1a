package fieldcodec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
)

// Token format: enc:v1:<b64 nonce>:<b64 tag>:<b64 ciphertext> — exactly 5
// colon-separated parts. Anything that does not match this shape is treated
// as legacy plaintext and returned unchanged.
const (
	tokenPrefix = "enc:"
	formatTag   = "enc"
	versionV1   = "v1"
)

// defaultSecret is the last-resort key source when neither the chat secret
// nor the session secret is configured. Deployments are expected to set one.
const defaultSecret = "campus-records-default-secret"

// Codec encrypts and decrypts free-text fields with AES-256-GCM. The key is
// derived once from the configured secret and never rotates in-process; the
// version tag in the token leaves room for a rotation scheme later.
//
// Neither Encrypt nor Decrypt ever fails: every internal error degrades to
// returning the input unchanged, so a crypto problem can never destroy the
// stored text. Callers cannot distinguish "was never encrypted" from "failed
// to decrypt" by the return value; OnFailure is the side channel for that.
type Codec struct {
	key []byte

	// OnFailure, if set, is invoked on every swallowed error (op is
	// "encrypt" or "decrypt"). Errors are also logged at warn level.
	OnFailure func(op string, err error)
}

// New derives the AES-256 key from the first non-empty secret, falling back
// to the built-in default.
func New(secrets ...string) *Codec {
	secret := defaultSecret
	for _, s := range secrets {
		if s != "" {
			secret = s
			break
		}
	}
	key := sha256.Sum256([]byte(secret))
	return &Codec{key: key[:]}
}

// Encrypt returns the encoded token for plain. Empty input and inputs that
// already carry the token prefix pass through unchanged, so repeated save
// cycles never double-encrypt.
func (c *Codec) Encrypt(plain string) string {
	if plain == "" || strings.HasPrefix(plain, tokenPrefix) {
		return plain
	}
	gcm, err := c.aead()
	if err != nil {
		c.fail("encrypt", err)
		return plain
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		c.fail("encrypt", err)
		return plain
	}
	sealed := gcm.Seal(nil, nonce, []byte(plain), nil)
	tagAt := len(sealed) - gcm.Overhead()
	enc := base64.StdEncoding
	return strings.Join([]string{
		formatTag,
		versionV1,
		enc.EncodeToString(nonce),
		enc.EncodeToString(sealed[tagAt:]),
		enc.EncodeToString(sealed[:tagAt]),
	}, ":")
}

// Decrypt recovers the plaintext from a token. Inputs that are not tokens
// (legacy plaintext, unknown version, wrong field count) and tokens that
// fail authentication are returned unchanged.
func (c *Codec) Decrypt(stored string) string {
	if stored == "" {
		return stored
	}
	parts := strings.Split(stored, ":")
	if len(parts) != 5 || parts[0] != formatTag {
		return stored
	}
	// Dispatch on the version tag; unknown versions are left for a future
	// decoder rather than mangled here.
	if parts[1] != versionV1 {
		return stored
	}
	enc := base64.StdEncoding
	nonce, err := enc.DecodeString(parts[2])
	if err != nil {
		c.fail("decrypt", err)
		return stored
	}
	tag, err := enc.DecodeString(parts[3])
	if err != nil {
		c.fail("decrypt", err)
		return stored
	}
	ct, err := enc.DecodeString(parts[4])
	if err != nil {
		c.fail("decrypt", err)
		return stored
	}
	gcm, err := c.aead()
	if err != nil {
		c.fail("decrypt", err)
		return stored
	}
	if len(nonce) != gcm.NonceSize() {
		c.fail("decrypt", errors.New("bad nonce length"))
		return stored
	}
	plain, err := gcm.Open(nil, nonce, append(ct, tag...), nil)
	if err != nil {
		c.fail("decrypt", err)
		return stored
	}
	return string(plain)
}

// EncryptPtr is the nil-safe variant for nullable columns.
func (c *Codec) EncryptPtr(plain *string) *string {
	if plain == nil {
		return nil
	}
	out := c.Encrypt(*plain)
	return &out
}

// DecryptPtr is the nil-safe variant for nullable columns.
func (c *Codec) DecryptPtr(stored *string) *string {
	if stored == nil {
		return nil
	}
	out := c.Decrypt(*stored)
	return &out
}

func (c *Codec) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (c *Codec) fail(op string, err error) {
	log.Warn().Str("op", op).Err(err).Msg("fieldcodec: degraded to pass-through")
	if c.OnFailure != nil {
		c.OnFailure(op, err)
	}
}
