// Package fieldcrypto provides AES-256-CBC encryption for individual PII
// fields stored at rest. Values are encoded as "ivHex:cipherHex" with a fresh
// random IV per encryption. The scheme carries no authentication tag; it
// provides confidentiality only.
package fieldcrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// KeySize is the required key length in bytes (AES-256).
const KeySize = 32

// Cipher encrypts and decrypts single string fields.
type Cipher struct {
	block cipher.Block
}

// NewCipher creates a Cipher from a raw 32-byte key.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("cipher key must be exactly %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}
	return &Cipher{block: block}, nil
}

// NewCipherFromHex creates a Cipher from a 64-character hex-encoded key.
func NewCipherFromHex(hexKey string) (*Cipher, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("cipher key is not valid hex: %w", err)
	}
	return NewCipher(key)
}

// Encrypt encrypts a plaintext field value. An empty value passes through
// unchanged so nullable columns stay null.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to generate IV: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(c.block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. An empty value passes through unchanged. A value
// without the "iv:cipher" separator is returned as-is: legacy rows written
// before encryption was introduced hold plaintext.
func (c *Cipher) Decrypt(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	sep := strings.IndexByte(value, ':')
	if sep < 0 {
		return value, nil
	}

	iv, err := hex.DecodeString(value[:sep])
	if err != nil {
		return "", fmt.Errorf("malformed IV hex: %w", err)
	}
	if len(iv) != aes.BlockSize {
		return "", fmt.Errorf("IV must be %d bytes, got %d", aes.BlockSize, len(iv))
	}

	ciphertext, err := hex.DecodeString(value[sep+1:])
	if err != nil {
		return "", fmt.Errorf("malformed ciphertext hex: %w", err)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", fmt.Errorf("ciphertext length %d is not a multiple of the block size", len(ciphertext))
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(c.block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(unpadded), nil
}

// EncryptFields encrypts the named fields of a record in place, skipping
// empty values.
func (c *Cipher) EncryptFields(record map[string]string, fields ...string) error {
	for _, f := range fields {
		v, ok := record[f]
		if !ok || v == "" {
			continue
		}
		enc, err := c.Encrypt(v)
		if err != nil {
			return fmt.Errorf("failed to encrypt field %q: %w", f, err)
		}
		record[f] = enc
	}
	return nil
}

// DecryptFields decrypts the named fields of a record in place, skipping
// empty values.
func (c *Cipher) DecryptFields(record map[string]string, fields ...string) error {
	for _, f := range fields {
		v, ok := record[f]
		if !ok || v == "" {
			continue
		}
		dec, err := c.Decrypt(v)
		if err != nil {
			return fmt.Errorf("failed to decrypt field %q: %w", f, err)
		}
		record[f] = dec
	}
	return nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padding)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padding)
	}
	return padded
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded data length %d", len(data))
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize {
		return nil, fmt.Errorf("invalid padding byte %d", padding)
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, fmt.Errorf("inconsistent padding")
		}
	}
	return data[:len(data)-padding], nil
}
