package pcm

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedToken is the persisted shape of a destination access token with an
// absolute expiry.
type CachedToken struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// TokenStore persists tokens between runs. A load miss is never an error;
// the caller just requests a fresh token.
type TokenStore interface {
	Load() (CachedToken, bool)
	Save(CachedToken) error
}

// FileTokenStore keeps the token cache as a small JSON file under the data
// dir. This is the default backend.
type FileTokenStore struct {
	Path string
}

func (s *FileTokenStore) Load() (CachedToken, bool) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return CachedToken{}, false
	}
	var tok CachedToken
	if err := json.Unmarshal(b, &tok); err != nil || tok.AccessToken == "" {
		return CachedToken{}, false
	}
	return tok, true
}

func (s *FileTokenStore) Save(tok CachedToken) error {
	b, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, b, 0o600)
}

const redisTokenKey = "cardsync:ep_token"

// RedisTokenStore shares the token cache between hosts; the entry expires
// with the token itself.
type RedisTokenStore struct {
	Client *redis.Client
}

func (s *RedisTokenStore) Load() (CachedToken, bool) {
	ctx := context.Background()

	val, err := s.Client.Get(ctx, redisTokenKey).Result()
	if err != nil {
		return CachedToken{}, false
	}

	var tok CachedToken
	if err := json.Unmarshal([]byte(val), &tok); err != nil || tok.AccessToken == "" {
		return CachedToken{}, false
	}
	return tok, true
}

func (s *RedisTokenStore) Save(tok CachedToken) error {
	ttl := time.Until(tok.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	b, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	return s.Client.Set(context.Background(), redisTokenKey, b, ttl).Err()
}
