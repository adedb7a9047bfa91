package memory

import (
	"context"
	"testing"
	"time"

	"github.com/niholbooks/shop-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionGetIdleByDefault(t *testing.T) {
	store := NewSessionStore(0)
	defer store.Close()

	stage, err := store.Get(context.Background(), 10)
	require.NoError(t, err)
	assert.Nil(t, stage)
}

func TestSessionSetOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(0)
	defer store.Close()

	require.NoError(t, store.Set(ctx, 10, domain.SearchWait{}))
	require.NoError(t, store.Set(ctx, 10, domain.CheckoutAddress{Phone: "+99890"}))

	stage, err := store.Get(ctx, 10)
	require.NoError(t, err)

	st, ok := stage.(domain.CheckoutAddress)
	require.True(t, ok)
	assert.Equal(t, "+99890", st.Phone)
}

func TestSessionClear(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(0)
	defer store.Close()

	require.NoError(t, store.Set(ctx, 10, domain.BroadcastWait{}))
	require.NoError(t, store.Clear(ctx, 10))

	stage, err := store.Get(ctx, 10)
	require.NoError(t, err)
	assert.Nil(t, stage)
}

func TestSessionExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(20 * time.Millisecond)
	defer store.Close()

	require.NoError(t, store.Set(ctx, 10, domain.FeedbackWait{}))

	time.Sleep(60 * time.Millisecond)

	stage, err := store.Get(ctx, 10)
	require.NoError(t, err)
	assert.Nil(t, stage)
}

func TestSessionsAreIsolatedPerUser(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(0)
	defer store.Close()

	require.NoError(t, store.Set(ctx, 10, domain.SearchWait{}))

	stage, err := store.Get(ctx, 20)
	require.NoError(t, err)
	assert.Nil(t, stage)
}
