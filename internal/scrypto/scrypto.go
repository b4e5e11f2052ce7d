package scrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/faanross/simulacra_png/internal/logging"
	"github.com/faanross/simulacra_png/internal/oops"
	"github.com/faanross/simulacra_png/internal/spec"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/term"
)

// SecureMessage contains all cryptographic components of a sealed payload.
// Wire layout: [Salt(32)][Nonce(12)][EncryptedData][AuthTag(16)]
type SecureMessage struct {
	Salt          []byte
	Nonce         []byte
	EncryptedData []byte
	AuthTag       []byte
}

// Bytes serializes the message in wire layout.
func (m *SecureMessage) Bytes() []byte {
	out := make([]byte, 0, len(m.Salt)+len(m.Nonce)+len(m.EncryptedData)+len(m.AuthTag))
	out = append(out, m.Salt...)
	out = append(out, m.Nonce...)
	out = append(out, m.EncryptedData...)
	return append(out, m.AuthTag...)
}

// ParseSecureMessage splits a sealed payload into its components.
func ParseSecureMessage(sealed []byte) (*SecureMessage, error) {
	if len(sealed) < spec.SALT_SIZE+spec.NONCE_SIZE+spec.TAG_SIZE {
		return nil, oops.New(oops.AuthenticationFailed, nil,
			"sealed payload of %d bytes too small for salt, nonce and tag", len(sealed))
	}

	offset := 0
	salt := sealed[offset : offset+spec.SALT_SIZE]
	offset += spec.SALT_SIZE

	nonce := sealed[offset : offset+spec.NONCE_SIZE]
	offset += spec.NONCE_SIZE

	tagStart := len(sealed) - spec.TAG_SIZE
	return &SecureMessage{
		Salt:          salt,
		Nonce:         nonce,
		EncryptedData: sealed[offset:tagStart],
		AuthTag:       sealed[tagStart:],
	}, nil
}

// DeriveKey generates an encryption key from password using PBKDF2.
func DeriveKey(password, salt []byte) []byte {
	key := pbkdf2.Key(password, salt, spec.PBKDF2_ITERS, spec.KEY_SIZE, sha256.New)

	logging.Debug().
		Int("iterations", spec.PBKDF2_ITERS).
		Int("salt_len", len(salt)).
		Str("fingerprint", fmt.Sprintf("%X", key[:4])).
		Msg("derived key with PBKDF2-SHA256")

	return key
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cipher creation failed: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("GCM creation failed: %w", err)
	}
	return gcm, nil
}

// Seal encrypts payload with AES-256-GCM under a key derived from password.
func Seal(payload, password []byte) ([]byte, error) {
	return seal(rand.Reader, payload, password)
}

func seal(random io.Reader, payload, password []byte) ([]byte, error) {
	// Step 1: Generate random salt
	salt := make([]byte, spec.SALT_SIZE)
	if _, err := io.ReadFull(random, salt); err != nil {
		return nil, fmt.Errorf("salt generation failed: %w", err)
	}

	// Step 2: Derive key and build cipher
	gcm, err := newGCM(DeriveKey(password, salt))
	if err != nil {
		return nil, err
	}

	// Step 3: Generate nonce
	nonce := make([]byte, spec.NONCE_SIZE)
	if _, err := io.ReadFull(random, nonce); err != nil {
		return nil, fmt.Errorf("nonce generation failed: %w", err)
	}

	// Step 4: Magic header lets Open tell a wrong key from a corrupt payload
	plaintext := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(plaintext[:4], spec.MAGIC_HEADER)
	copy(plaintext[4:], payload)

	// Step 5: Encrypt; Seal appends the auth tag
	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	msg := &SecureMessage{
		Salt:          salt,
		Nonce:         nonce,
		EncryptedData: ciphertext[:len(ciphertext)-spec.TAG_SIZE],
		AuthTag:       ciphertext[len(ciphertext)-spec.TAG_SIZE:],
	}
	return msg.Bytes(), nil
}

// Open reverses Seal. A wrong password or tampered payload fails with
// AuthenticationFailed.
func Open(sealed, password []byte) ([]byte, error) {
	msg, err := ParseSecureMessage(sealed)
	if err != nil {
		return nil, err
	}

	gcm, err := newGCM(DeriveKey(password, msg.Salt))
	if err != nil {
		return nil, err
	}

	ciphertext := make([]byte, 0, len(msg.EncryptedData)+len(msg.AuthTag))
	ciphertext = append(ciphertext, msg.EncryptedData...)
	ciphertext = append(ciphertext, msg.AuthTag...)

	plaintext, err := gcm.Open(nil, msg.Nonce, ciphertext, nil)
	if err != nil {
		return nil, oops.New(oops.AuthenticationFailed, err, "wrong password or corrupted payload")
	}

	if len(plaintext) < 4 {
		return nil, oops.New(oops.AuthenticationFailed, nil, "decrypted data too small")
	}
	magic := binary.BigEndian.Uint32(plaintext[:4])
	if magic != spec.MAGIC_HEADER {
		return nil, oops.New(oops.AuthenticationFailed, nil,
			"invalid magic header: %X (expected %X)", magic, spec.MAGIC_HEADER)
	}

	return plaintext[4:], nil
}

// CheckPassword enforces the minimum password length.
func CheckPassword(password []byte) error {
	if len(password) < spec.MIN_PASSWORD {
		return fmt.Errorf("password must be at least %d characters", spec.MIN_PASSWORD)
	}
	return nil
}

// GetSecurePassword prompts on stderr and reads a password with echo disabled.
func GetSecurePassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)

	if err != nil {
		return nil, fmt.Errorf("password read failed: %w", err)
	}

	if err := CheckPassword(password); err != nil {
		return nil, err
	}

	return password, nil
}
