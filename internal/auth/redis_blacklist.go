package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix      = "jwt:blacklist:"
	defaultRedisTimeout = 5 * time.Second
)

// ConnectRedis initialises a Redis client and validates connectivity with a ping.
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, defaultRedisTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// RedisBlacklistStore keeps revoked tokens in Redis with a TTL equal to
// the token's remaining lifetime, so revocations survive restarts and are
// shared between instances.
type RedisBlacklistStore struct {
	client *redis.Client
}

// NewRedisBlacklistStore wraps client.
func NewRedisBlacklistStore(client *redis.Client) *RedisBlacklistStore {
	return &RedisBlacklistStore{client: client}
}

// IsBlacklisted implements JwtBlacklistStore.
func (s *RedisBlacklistStore) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("blacklist lookup: %w", err)
	}
	return n > 0, nil
}

// AddToBlacklist implements JwtBlacklistStore. Already expired tokens are ignored.
func (s *RedisBlacklistStore) AddToBlacklist(ctx context.Context, token string, exp time.Time) error {
	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, s.key(token), "1", ttl).Err()
}

func (s *RedisBlacklistStore) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return redisKeyPrefix + hex.EncodeToString(sum[:])
}
