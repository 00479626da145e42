// Package sessions holds the server-side session store and the signed cookie
// that carries a session token between requests.
package sessions

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"pgmaint/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// Store maps opaque tokens to session records. Implementations must be safe for
// concurrent use; each operation is atomic per token.
type Store interface {
	// Save inserts or replaces the record for s.Token.
	Save(ctx context.Context, s *models.Session) error
	// Get returns ErrSessionNotFound when the token is unknown or the record has expired.
	Get(ctx context.Context, token string) (*models.Session, error)
	// Delete is idempotent.
	Delete(ctx context.Context, token string) error
	// Len counts live records.
	Len(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

const tokenBytes = 32

// NewToken returns a random URL-safe session token.
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Digest is the storage key for a token. Raw tokens never reach a store.
func Digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func checkSaveable(s *models.Session) error {
	if s == nil || s.Token == "" {
		return errors.New("session token is required")
	}
	return s.Validate()
}
