package adapter

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/openregistry/ownership/internal/domain"
)

// TokenSource defines an interface for confirmation token generation to
// enable mocking
//
//go:generate mockgen -source=token.go -destination=../mocks/token.go -package=mocks -mock_names=TokenSource=MockTokenSource
type TokenSource interface {
	// NewToken returns a fresh confirmation token, 40 lowercase hex characters
	NewToken() (string, error)
}

// RealTokenSource implements TokenSource using crypto/rand
type RealTokenSource struct{}

// NewTokenSource creates a new real token source
func NewTokenSource() TokenSource {
	return &RealTokenSource{}
}

func (RealTokenSource) NewToken() (string, error) {
	buf := make([]byte, domain.ConfirmationTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
