package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopfront/backend/internal/infrastructure/config"
)

// ResetCodeStore holds short-lived password-reset codes keyed by email.
// The store must survive process restarts and work across multiple
// instances, which is why the production implementation is Redis-backed.
type ResetCodeStore interface {
	// Put stores a code for the email with a TTL, replacing any prior code
	Put(ctx context.Context, email, code string, ttl time.Duration) error
	// Consume verifies the code for the email and deletes it on match.
	// Returns false for unknown, mismatched or expired codes.
	Consume(ctx context.Context, email, code string) (bool, error)
}

// GenerateResetCode produces a 6-digit numeric reset code
func GenerateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// RedisResetCodeStore implements ResetCodeStore on Redis
type RedisResetCodeStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisResetCodeStore connects to Redis and returns a reset-code store
func NewRedisResetCodeStore(cfg config.RedisConfig) (*RedisResetCodeStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisResetCodeStore{client: client, keyPrefix: "auth:reset:"}, nil
}

// NewRedisResetCodeStoreWithClient wraps an existing client, useful for
// sharing a connection across components
func NewRedisResetCodeStoreWithClient(client *redis.Client) *RedisResetCodeStore {
	return &RedisResetCodeStore{client: client, keyPrefix: "auth:reset:"}
}

// Put stores a code with a TTL
func (s *RedisResetCodeStore) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.client.Set(ctx, s.keyPrefix+email, code, ttl).Err()
}

// Consume verifies and deletes a code atomically enough for this use: the
// code is deleted only after a successful match.
func (s *RedisResetCodeStore) Consume(ctx context.Context, email, code string) (bool, error) {
	key := s.keyPrefix + email
	stored, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if stored != code {
		return false, nil
	}
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return false, err
	}
	return true, nil
}

// Close releases the Redis connection
func (s *RedisResetCodeStore) Close() error {
	return s.client.Close()
}

// InMemoryResetCodeStore is a process-local implementation for tests and
// development. Not suitable for multi-instance deployments.
type InMemoryResetCodeStore struct {
	mu    sync.Mutex
	codes map[string]resetEntry
}

type resetEntry struct {
	code      string
	expiresAt time.Time
}

// NewInMemoryResetCodeStore creates an empty in-memory store
func NewInMemoryResetCodeStore() *InMemoryResetCodeStore {
	return &InMemoryResetCodeStore{codes: make(map[string]resetEntry)}
}

// Put stores a code with a TTL
func (s *InMemoryResetCodeStore) Put(_ context.Context, email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = resetEntry{code: code, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Consume verifies the code and deletes it on match
func (s *InMemoryResetCodeStore) Consume(_ context.Context, email, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.codes[email]
	if !ok {
		return false, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.codes, email)
		return false, nil
	}
	if entry.code != code {
		return false, nil
	}
	delete(s.codes, email)
	return true, nil
}

var _ ResetCodeStore = (*RedisResetCodeStore)(nil)
var _ ResetCodeStore = (*InMemoryResetCodeStore)(nil)
