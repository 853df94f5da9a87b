package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(TokenPair{AccessToken: "a1", RefreshToken: "r1"})

	access, err := store.Access(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a1", access)

	refresh, err := store.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, "r1", refresh)

	require.NoError(t, store.Save(ctx, TokenPair{AccessToken: "a2", RefreshToken: "r2"}))
	access, _ = store.Access(ctx)
	assert.Equal(t, "a2", access)
}

func TestMemoryStoreRefreshMissing(t *testing.T) {
	store := NewMemoryStore(TokenPair{AccessToken: "a1"})
	_, err := store.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrNoRefreshToken)
}

func TestMemoryStoreClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(TokenPair{AccessToken: "a1", RefreshToken: "r1"})
	require.NoError(t, store.Clear(ctx))

	access, err := store.Access(ctx)
	require.NoError(t, err)
	assert.Empty(t, access)
	_, err = store.Refresh(ctx)
	assert.ErrorIs(t, err, ErrNoRefreshToken)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(TokenPair{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Save(ctx, TokenPair{AccessToken: "a", RefreshToken: "r"})
		}()
		go func() {
			defer wg.Done()
			_, _ = store.Access(ctx)
		}()
	}
	wg.Wait()
}

func TestExpiresAt(t *testing.T) {
	exp := time.Now().Add(1 * time.Hour).Truncate(time.Second)
	token := signedToken(t, jwt.MapClaims{"exp": exp.Unix(), "sub": "user-1"})

	got, err := ExpiresAt(token)
	require.NoError(t, err)
	assert.True(t, got.Equal(exp))
}

func TestExpiresAtNoClaim(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "user-1"})
	_, err := ExpiresAt(token)
	assert.ErrorIs(t, err, ErrNoExpiry)
}

func TestExpiresAtMalformed(t *testing.T) {
	_, err := ExpiresAt("not-a-jwt")
	assert.Error(t, err)
}

func TestNeedsRefresh(t *testing.T) {
	soon := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(10 * time.Second).Unix()})
	later := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(1 * time.Hour).Unix()})

	assert.True(t, NeedsRefresh(soon, time.Minute))
	assert.False(t, NeedsRefresh(later, time.Minute))
	assert.False(t, NeedsRefresh("", time.Minute))
	assert.False(t, NeedsRefresh("garbage", time.Minute))
}
