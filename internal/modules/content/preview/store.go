package preview

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/atelier-studio/core/internal/modules/content"
	redispkg "github.com/atelier-studio/core/internal/pkg/redis"
)

// Claim is what a preview token grants: a single read of one record.
type Claim struct {
	Kind content.Kind `json:"kind"`
	ID   string       `json:"id"`
}

// TokenStore holds outstanding preview tokens. Take is consume-on-read: a
// token yields its claim at most once, across all instances sharing the store.
type TokenStore interface {
	Put(ctx context.Context, token string, claim Claim, ttl time.Duration) error
	Take(ctx context.Context, token string) (*Claim, error)
}

// MemoryStore is the in-process fallback used without Redis. Tokens minted
// here are only redeemable on the same instance.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	claim     Claim
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) Put(_ context.Context, token string, claim Claim, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryEntry{claim: claim, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Take(_ context.Context, token string) (*Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[token]
	if !ok {
		return nil, nil
	}
	delete(s.entries, token)
	if s.now().After(entry.expiresAt) {
		return nil, nil
	}
	claim := entry.claim
	return &claim, nil
}

// RedisStore keys tokens in Redis so any instance can redeem them. Expiry
// rides on the key TTL; consumption is a single GETDEL.
type RedisStore struct {
	rdb    *redispkg.Client
	prefix string
}

func NewRedisStore(rdb *redispkg.Client) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: "atelier:preview:"}
}

func (s *RedisStore) Put(ctx context.Context, token string, claim Claim, ttl time.Duration) error {
	payload, err := json.Marshal(claim)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.prefix+token, string(payload), ttl)
}

func (s *RedisStore) Take(ctx context.Context, token string) (*Claim, error) {
	payload, err := s.rdb.GetDel(ctx, s.prefix+token)
	if err != nil {
		return nil, err
	}
	if payload == "" {
		return nil, nil
	}
	var claim Claim
	if err := json.Unmarshal([]byte(payload), &claim); err != nil {
		return nil, err
	}
	return &claim, nil
}
