package otpstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_StoreVerifyClear(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(5 * time.Minute)

	require.NoError(t, m.Store(ctx, "a@x.com", "123456"))

	ok, err := m.Verify(ctx, "a@x.com", "123456")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, m.Clear(ctx, "a@x.com"))

	ok, err = m.Verify(ctx, "a@x.com", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_VerifyUnknownEmail(t *testing.T) {
	m := NewMemory(5 * time.Minute)
	ok, err := m.Verify(context.Background(), "nobody@x.com", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_WrongCode_DoesNotConsume(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(5 * time.Minute)
	require.NoError(t, m.Store(ctx, "a@x.com", "123456"))

	ok, _ := m.Verify(ctx, "a@x.com", "654321")
	assert.False(t, ok)

	// The entry survives a failed attempt.
	ok, _ = m.Verify(ctx, "a@x.com", "123456")
	assert.True(t, ok)
}

func TestMemory_MatchDoesNotConsume(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(5 * time.Minute)
	require.NoError(t, m.Store(ctx, "a@x.com", "123456"))

	for i := 0; i < 3; i++ {
		ok, err := m.Verify(ctx, "a@x.com", "123456")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestMemory_Expiry_EvictsLazily(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(20 * time.Millisecond)
	require.NoError(t, m.Store(ctx, "a@x.com", "123456"))

	time.Sleep(50 * time.Millisecond)

	ok, err := m.Verify(ctx, "a@x.com", "123456")
	require.NoError(t, err)
	assert.False(t, ok)

	m.mu.Lock()
	_, present := m.codes["a@x.com"]
	m.mu.Unlock()
	assert.False(t, present, "expired entry should be evicted on verify")
}

func TestMemory_NewStoreReplacesOldCode(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(5 * time.Minute)
	require.NoError(t, m.Store(ctx, "a@x.com", "111111"))
	require.NoError(t, m.Store(ctx, "a@x.com", "222222"))

	ok, _ := m.Verify(ctx, "a@x.com", "111111")
	assert.False(t, ok, "old code must be invalid after a new request")

	ok, _ = m.Verify(ctx, "a@x.com", "222222")
	assert.True(t, ok)
}

func TestMemory_ClearIdempotent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(5 * time.Minute)

	require.NoError(t, m.Clear(ctx, "never-set@x.com"))
	require.NoError(t, m.Store(ctx, "a@x.com", "123456"))
	require.NoError(t, m.Clear(ctx, "a@x.com"))
	require.NoError(t, m.Clear(ctx, "a@x.com"))
}
