package linktoken

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	nonceSize = 12
	tagSize   = 16
	separator = "."
)

// segment encoding; Strict rejects non-canonical trailing bits so every
// altered character changes the decoded bytes
var segmentEncoding = base64.RawURLEncoding.Strict()

// Codec seals JSON payloads into `iv.tag.ciphertext` tokens with AES-256-GCM
// under a key derived from a shared secret. A Codec is safe for concurrent use.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec derives the 256-bit key as SHA-256 of the UTF-8 secret.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("link secret is required")
	}

	key := sha256.Sum256([]byte(secret))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aead, err := cipher.NewGCMWithTagSize(block, tagSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Codec{aead: aead}, nil
}

// Encode serializes payload to JSON and seals it with a fresh random nonce,
// so two calls with the same payload never return the same token.
func (c *Codec) Encode(payload any) (string, error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nil, nonce, plaintext, nil)
	ciphertext, tag := sealed[:len(sealed)-tagSize], sealed[len(sealed)-tagSize:]

	return strings.Join([]string{
		segmentEncoding.EncodeToString(nonce),
		segmentEncoding.EncodeToString(tag),
		segmentEncoding.EncodeToString(ciphertext),
	}, separator), nil
}

// Decode opens token and unmarshals the plaintext JSON into dest. Every
// failure wraps ErrInvalidToken.
func (c *Codec) Decode(token string, dest any) error {
	parts := strings.Split(token, separator)
	if len(parts) != 3 {
		return invalid("malformed: expected 3 segments")
	}

	segments := make([][]byte, 3)
	for i, part := range parts {
		if part == "" {
			return invalid("malformed: empty segment")
		}

		raw, err := decodeSegment(part)
		if err != nil {
			return invalid("bad encoding")
		}
		segments[i] = raw
	}

	nonce, tag, ciphertext := segments[0], segments[1], segments[2]
	if len(nonce) != nonceSize || len(tag) != tagSize {
		return invalid("malformed: bad nonce or tag length")
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return invalid("authentication failed")
	}

	if err := json.Unmarshal(plaintext, dest); err != nil {
		return invalid("bad json")
	}

	return nil
}

// DecodePayload is Decode into a Payload.
func (c *Codec) DecodePayload(token string) (*Payload, error) {
	var payload Payload
	if err := c.Decode(token, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// decodeSegment accepts both unpadded and padded base64url
func decodeSegment(s string) ([]byte, error) {
	return segmentEncoding.DecodeString(strings.TrimRight(s, "="))
}

// Encode seals payload under secret.
func Encode(payload any, secret string) (string, error) {
	codec, err := NewCodec(secret)
	if err != nil {
		return "", err
	}
	return codec.Encode(payload)
}

// Decode opens token under secret and returns the JSON object it carries.
func Decode(token, secret string) (map[string]any, error) {
	codec, err := NewCodec(secret)
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := codec.Decode(token, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}
