package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// KeySize is the size of an AES-256 key in bytes.
	KeySize = 32

	// NonceSize is the size of a GCM nonce in bytes.
	NonceSize = 12
)

var (
	// ErrInvalidKey is returned when the key is invalid
	ErrInvalidKey = errors.New("invalid encryption key: must be 32 bytes (64 hex characters)")

	// ErrDecryptionFailed is returned when decryption fails
	ErrDecryptionFailed = errors.New("decryption failed: invalid ciphertext or key")

	// ErrCiphertextTooShort is returned when hex-decoded ciphertext is shorter than a nonce
	ErrCiphertextTooShort = errors.New("ciphertext too short to contain a nonce")

	// ErrNoMasterKey is returned when master key is not set
	ErrNoMasterKey = errors.New("master encryption key not configured")
)

// Encryptor provides AES-256-GCM encryption/decryption of hex-encoded
// payloads using a single master key. This is the concrete implementation
// of the `Decrypt(key, ciphertext) -> plaintext` capability the tenant
// credentials resolver consumes; the resolver itself never sees key
// material or handles the AEAD construction directly.
type Encryptor struct {
	masterKey []byte
}

// NewEncryptor creates a new encryptor with the master key from the
// ENCRYPTION_KEY environment variable (hex-encoded, 32 bytes).
func NewEncryptor() (*Encryptor, error) {
	keyHex := os.Getenv("ENCRYPTION_KEY")
	if keyHex == "" {
		return nil, ErrNoMasterKey
	}
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid encryption key hex: %w", err)
	}
	return NewEncryptorWithKey(key)
}

// NewEncryptorWithKey creates a new encryptor with a specific key.
func NewEncryptorWithKey(key []byte) (*Encryptor, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	return &Encryptor{masterKey: key}, nil
}

func (e *Encryptor) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(e.masterKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return cipher.NewGCM(block)
}

// EncryptHex encrypts plaintext with the master key and returns a
// hex-encoded nonce||ciphertext blob suitable for storage in a text column.
func (e *Encryptor) EncryptHex(plaintext string) (string, error) {
	if e.masterKey == nil {
		return "", ErrNoMasterKey
	}

	gcm, err := e.gcm()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := gcm.Seal(nil, nonce, []byte(plaintext), nil)
	out := make([]byte, 0, len(nonce)+len(sealed))
	out = append(out, nonce...)
	out = append(out, sealed...)
	return hex.EncodeToString(out), nil
}

// DecryptHex decrypts a hex-encoded nonce||ciphertext blob produced by
// EncryptHex (or an equivalent external encryption step) back to plaintext.
// Errors never include the key or ciphertext.
func (e *Encryptor) DecryptHex(ciphertextHex string) (string, error) {
	if e.masterKey == nil {
		return "", ErrNoMasterKey
	}

	raw, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	if len(raw) < NonceSize {
		return "", ErrCiphertextTooShort
	}

	gcm, err := e.gcm()
	if err != nil {
		return "", err
	}

	nonce, sealed := raw[:NonceSize], raw[NonceSize:]
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(plaintext), nil
}
