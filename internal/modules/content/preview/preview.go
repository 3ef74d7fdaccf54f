// Package preview lets an editor hand out short-lived single-use links to
// unpublished records.
package preview

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/atelier-studio/core/internal/modules/content"
)

// TokenTTL bounds how long a minted preview link stays redeemable.
const TokenTTL = 5 * time.Minute

// Service mints and consumes preview tokens.
type Service struct {
	store TokenStore
}

func NewService(store TokenStore) *Service { return &Service{store: store} }

// Mint issues a token granting one read of the given record.
func (s *Service) Mint(ctx context.Context, kind content.Kind, id string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	if err := s.store.Put(ctx, token, Claim{Kind: kind, ID: id}, TokenTTL); err != nil {
		return "", err
	}
	return token, nil
}

// Consume redeems a token. Returns nil for unknown, expired, or already
// consumed tokens; a redeemed token is gone even when the caller's kind/id
// check afterwards fails.
func (s *Service) Consume(ctx context.Context, token string) (*Claim, error) {
	if token == "" {
		return nil, nil
	}
	return s.store.Take(ctx, token)
}
