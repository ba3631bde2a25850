package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"

	"github.com/openregistry/ownership/internal/domain"
)

// Signer computes HMAC-SHA256 signatures over the RFC 8785 canonical form of
// a notification payload. Canonicalization keeps the signature stable across
// JSON re-encoders on the consumer side.
type Signer struct {
	secret []byte
}

// NewSigner creates a Signer with the shared secret
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign returns the hex-encoded signature of the payload
func (s *Signer) Sign(payload domain.NotificationPayload) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize payload: %w", err)
	}

	mac := hmac.New(sha256.New, s.secret)
	mac.Write(canonical)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// Verify reports whether the hex-encoded signature matches the payload
func (s *Signer) Verify(payload domain.NotificationPayload, signature string) (bool, error) {
	expected, err := s.Sign(payload)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1, nil
}
