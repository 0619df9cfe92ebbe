package auth

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// GenerateAPIKey returns a new key of the form "<memberID>.<secret>" and the
// bcrypt hash of its secret. Only the hash is stored.
func GenerateAPIKey(memberID int64) (key, hash string, err error) {
	secret := strings.ReplaceAll(uuid.NewString(), "-", "")
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", "", fmt.Errorf("hash api key: %w", err)
	}
	return fmt.Sprintf("%d.%s", memberID, secret), string(h), nil
}

// ParseAPIKey splits a key into the member id and secret.
func ParseAPIKey(key string) (memberID int64, secret string, ok bool) {
	idPart, secret, found := strings.Cut(key, ".")
	if !found || secret == "" {
		return 0, "", false
	}
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 {
		return 0, "", false
	}
	return id, secret, true
}

// CheckAPIKey reports whether secret matches the stored hash.
func CheckAPIKey(hash, secret string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
