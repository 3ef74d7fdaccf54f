package preview

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/atelier-studio/core/internal/modules/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintConsumeRoundTrip(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	token, err := svc.Mint(ctx, content.KindProject, "record-1")
	require.NoError(t, err)
	assert.Len(t, token, 32) // 16 random bytes, hex encoded

	claim, err := svc.Consume(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, claim)
	assert.Equal(t, content.KindProject, claim.Kind)
	assert.Equal(t, "record-1", claim.ID)
}

func TestConsumeIsSingleUse(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	token, err := svc.Mint(ctx, content.KindPost, "record-2")
	require.NoError(t, err)

	first, err := svc.Consume(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := svc.Consume(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, second)
}

func TestConsumeUnknownToken(t *testing.T) {
	svc := NewService(NewMemoryStore())

	claim, err := svc.Consume(context.Background(), "deadbeef")
	require.NoError(t, err)
	assert.Nil(t, claim)

	claim, err = svc.Consume(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, claim)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	store := NewMemoryStore()
	current := time.Now()
	store.now = func() time.Time { return current }

	svc := NewService(store)
	ctx := context.Background()

	token, err := svc.Mint(ctx, content.KindProject, "record-3")
	require.NoError(t, err)

	current = current.Add(TokenTTL + time.Minute)

	claim, err := svc.Consume(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, claim)
}

func TestConcurrentConsumeSingleWinner(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	token, err := svc.Mint(ctx, content.KindPost, "record-4")
	require.NoError(t, err)

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan *Claim, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			claim, err := svc.Consume(ctx, token)
			assert.NoError(t, err)
			results <- claim
		}()
	}
	wg.Wait()
	close(results)

	var winners int
	for claim := range results {
		if claim != nil {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
}

func TestTokensAreUnique(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := svc.Mint(ctx, content.KindProject, "record")
		require.NoError(t, err)
		require.False(t, seen[token])
		seen[token] = true
	}
}
