package dropbox

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoToken is returned when no token has been stored yet
var ErrNoToken = errors.New("dropbox token not available")

const (
	accessTokenKey  = "dropbox:access_token"
	refreshTokenKey = "dropbox:refresh_token"
)

// TokenStore persists OAuth tokens between requests and restarts
type TokenStore interface {
	AccessToken(ctx context.Context) (string, error)
	SaveAccessToken(ctx context.Context, token string, ttl time.Duration) error
	RefreshToken(ctx context.Context) (string, error)
	SaveRefreshToken(ctx context.Context, token string) error
}

// RedisTokenStore keeps tokens in Redis so they survive restarts
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore creates a Redis-backed token store
func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) AccessToken(ctx context.Context) (string, error) {
	val, err := s.client.Get(ctx, accessTokenKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("get access token: %w", err)
	}
	return val, nil
}

func (s *RedisTokenStore) SaveAccessToken(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, accessTokenKey, token, ttl).Err(); err != nil {
		return fmt.Errorf("save access token: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) RefreshToken(ctx context.Context) (string, error) {
	val, err := s.client.Get(ctx, refreshTokenKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("get refresh token: %w", err)
	}
	return val, nil
}

func (s *RedisTokenStore) SaveRefreshToken(ctx context.Context, token string) error {
	// Refresh tokens do not expire until revoked
	if err := s.client.Set(ctx, refreshTokenKey, token, 0).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// MemoryTokenStore keeps tokens in process memory. Used when Redis is not
// configured; tokens are lost on restart.
type MemoryTokenStore struct {
	mu            sync.RWMutex
	access        string
	accessExpires time.Time
	refresh       string
}

// NewMemoryTokenStore creates an in-memory token store
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) AccessToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.access == "" || (!s.accessExpires.IsZero() && time.Now().After(s.accessExpires)) {
		return "", ErrNoToken
	}
	return s.access, nil
}

func (s *MemoryTokenStore) SaveAccessToken(ctx context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = token
	if ttl > 0 {
		s.accessExpires = time.Now().Add(ttl)
	} else {
		s.accessExpires = time.Time{}
	}
	return nil
}

func (s *MemoryTokenStore) RefreshToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.refresh == "" {
		return "", ErrNoToken
	}
	return s.refresh, nil
}

func (s *MemoryTokenStore) SaveRefreshToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh = token
	return nil
}
