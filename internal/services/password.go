package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the longest password bcrypt will hash.
const maxPasswordBytes = 72

// PasswordHasher hashes and verifies owner passwords. Both calls honor ctx so a
// slow comparison never outlives the request that asked for it.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	// Compare reports whether password matches hash. A mismatch is (false, nil).
	Compare(ctx context.Context, hash, password string) (bool, error)
}

// BcryptHasher runs bcrypt off the calling goroutine.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{Cost: cost}
}

type hashResult struct {
	hash []byte
	err  error
}

func (h *BcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	done := make(chan hashResult, 1)
	go func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
		done <- hashResult{hash: hash, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("hash password: %w", res.err)
		}
		return string(res.hash), nil
	}
}

func (h *BcryptHasher) Compare(ctx context.Context, hash, password string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	done := make(chan error, 1)
	go func() {
		done <- bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-done:
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, fmt.Errorf("compare password: %w", err)
		}
	}
}
