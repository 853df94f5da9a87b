// Package auth holds the credential state shared between the HTTP client and
// the token-refresh plugin: an access/refresh token pair, a storage contract,
// and JWT expiry inspection for proactive refresh decisions.
package auth

import (
	"context"
	"errors"
	"sync"
)

// ErrNoRefreshToken is returned when a refresh is attempted without a stored
// refresh token.
var ErrNoRefreshToken = errors.New("auth: no refresh token available")

// TokenPair is an access/refresh token pair as issued by the DealGrid auth
// endpoints.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenStore is the storage contract for the credential pair. Implementations
// must be safe for concurrent use; the refresh plugin reads and writes the
// pair from multiple in-flight requests.
type TokenStore interface {
	// Access returns the current access token, or "" when not authenticated.
	Access(ctx context.Context) (string, error)

	// Refresh returns the current refresh token.
	// Returns ErrNoRefreshToken when none is stored.
	Refresh(ctx context.Context) (string, error)

	// Save persists a new token pair, replacing the previous one.
	Save(ctx context.Context, pair TokenPair) error

	// Clear drops both tokens, e.g. after a failed refresh.
	Clear(ctx context.Context) error
}

// MemoryStore is an in-process TokenStore guarded by a mutex.
type MemoryStore struct {
	mu   sync.RWMutex
	pair TokenPair
}

var _ TokenStore = (*MemoryStore)(nil)

// NewMemoryStore creates a MemoryStore seeded with the given pair.
// Zero-value tokens mean "not authenticated".
func NewMemoryStore(pair TokenPair) *MemoryStore {
	return &MemoryStore{pair: pair}
}

// Access returns the stored access token.
func (s *MemoryStore) Access(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pair.AccessToken, nil
}

// Refresh returns the stored refresh token.
func (s *MemoryStore) Refresh(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pair.RefreshToken == "" {
		return "", ErrNoRefreshToken
	}
	return s.pair.RefreshToken, nil
}

// Save replaces the stored pair.
func (s *MemoryStore) Save(_ context.Context, pair TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = pair
	return nil
}

// Clear drops both tokens.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = TokenPair{}
	return nil
}
