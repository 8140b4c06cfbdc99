// Package auth implements the password storage format used for customer accounts.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

const (
	saltBytes = 16
	separator = "$"
)

// SaltedSHA256 stores passwords as "<salt>$<digest>" where salt is 16 random
// bytes in hex and digest is hex(SHA-256(password + salt)).
//
// A single unstretched SHA-256 pass is weak against offline guessing. The
// format is kept because existing account rows are stored this way.
type SaltedSHA256 struct {
	random io.Reader
}

func NewSaltedSHA256() *SaltedSHA256 {
	return &SaltedSHA256{random: rand.Reader}
}

// Hash returns the stored representation of password with a fresh salt.
func (h *SaltedSHA256) Hash(password string) (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := io.ReadFull(h.random, buf); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	salt := hex.EncodeToString(buf)
	return salt + separator + digest(password, salt), nil
}

// Verify reports whether password matches the stored value. Malformed stored
// values never match.
func (h *SaltedSHA256) Verify(password, stored string) bool {
	parts := strings.Split(stored, separator)
	if len(parts) != 2 {
		return false
	}
	salt, want := parts[0], parts[1]
	return subtle.ConstantTimeCompare([]byte(digest(password, salt)), []byte(want)) == 1
}

func digest(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}
