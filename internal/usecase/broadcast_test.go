package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/niholbooks/shop-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcasterCountsEveryRecipient(t *testing.T) {
	transport := newFakeTransport()
	transport.failFor[20] = true

	b := NewBroadcaster(transport, nopLogger{})

	res := b.Run(context.Background(), 99, 42, []int64{10, 20, 30})

	assert.Equal(t, 2, res.Delivered)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 3, res.Delivered+res.Failed)

	// Отказ одного получателя не прерывает доставку остальным.
	require.Len(t, transport.copies, 2)
	assert.Equal(t, copiedMessage{to: 10, from: 99, messageID: 42}, transport.copies[0])
	assert.Equal(t, copiedMessage{to: 30, from: 99, messageID: 42}, transport.copies[1])
}

func TestBroadcasterEmptyRegistry(t *testing.T) {
	b := NewBroadcaster(newFakeTransport(), nopLogger{})

	res := b.Run(context.Background(), 99, 42, nil)

	assert.Equal(t, 0, res.Delivered)
	assert.Equal(t, 0, res.Failed)
}

func TestBroadcastFlowReportsCompletion(t *testing.T) {
	ctx := context.Background()
	admin := int64(99)
	env := newTestEnv(t, []int64{admin})

	for _, id := range []int64{10, 20} {
		require.NoError(t, env.wf.HandleUpdate(ctx, &Update{UserID: id, Kind: UpdateStart}))
	}

	require.NoError(t, env.wf.HandleUpdate(ctx, menuUpdate(admin, MenuBroadcast)))

	stage, err := env.sessions.Get(ctx, admin)
	require.NoError(t, err)
	_, ok := stage.(domain.BroadcastWait)
	require.True(t, ok)

	require.NoError(t, env.wf.HandleUpdate(ctx, &Update{
		UserID: admin, Kind: UpdateText, Text: "Aksiya!", MessageID: 77,
	}))

	// Этап сброшен сразу, рассылка идёт в фоне.
	stage, err = env.sessions.Get(ctx, admin)
	require.NoError(t, err)
	assert.Nil(t, stage)

	started := env.transport.lastMessageTo(t, admin)
	assert.Contains(t, started.text, "2 ta")

	require.Eventually(t, func() bool {
		msgs := env.transport.messagesTo(admin)
		last := msgs[len(msgs)-1]
		return last.text != started.text
	}, time.Second, 10*time.Millisecond)

	done := env.transport.lastMessageTo(t, admin)
	assert.Contains(t, done.text, "Qabul qildi: 2 ta")
	assert.Contains(t, done.text, "Bloklagan/Xato: 0 ta")

	env.transport.mu.Lock()
	copies := len(env.transport.copies)
	env.transport.mu.Unlock()
	assert.Equal(t, 2, copies)
}
