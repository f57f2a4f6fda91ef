package convstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ahwei/flight-ticket-alarm/internal/domain"
)

// Key prefixes keep conversation state and event dedup in separate
// namespaces within the same database.
const (
	statePrefix = "conv:"
	eventPrefix = "event:"
)

// Redis is a Store backed by a Redis instance, for deployments with more
// than one process. State values are JSON with a native key TTL; event
// dedup uses SETNX so only the first delivery wins.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedis connects to Redis and verifies the connection with a ping.
func NewRedis(cfg RedisConfig) (*Redis, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return &Redis{client: client, ttl: cfg.TTL}, nil
}

// Get implements Store.
func (r *Redis) Get(ctx context.Context, userID string) (*domain.ConversationState, bool, error) {
	data, err := r.client.Get(ctx, statePrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get conversation state: %w", err)
	}

	var state domain.ConversationState
	if err := json.Unmarshal(data, &state); err != nil {
		// A corrupt value is unrecoverable; treat it as absent.
		return nil, false, nil
	}
	return &state, true, nil
}

// Put implements Store.
func (r *Redis) Put(ctx context.Context, userID string, state *domain.ConversationState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal conversation state: %w", err)
	}
	if err := r.client.Set(ctx, statePrefix+userID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("put conversation state: %w", err)
	}
	return nil
}

// Delete implements Store.
func (r *Redis) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, statePrefix+userID).Err(); err != nil {
		return fmt.Errorf("delete conversation state: %w", err)
	}
	return nil
}

// MarkEventSeen implements Store.
func (r *Redis) MarkEventSeen(ctx context.Context, eventID string) (bool, error) {
	if eventID == "" {
		return true, nil
	}
	first, err := r.client.SetNX(ctx, eventPrefix+eventID, "1", r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("mark event seen: %w", err)
	}
	return first, nil
}

// Close releases the underlying Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}

// Ensure Redis implements Store at compile time.
var _ Store = (*Redis)(nil)
