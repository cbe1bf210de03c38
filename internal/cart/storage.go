package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// StorageKey is the fixed key cart snapshots are persisted under. Session ids
// are scoped beneath it by the storage adapter.
const StorageKey = "dookiees-cart"

// Storage persists cart snapshots between visits. Implementations must treat
// a missing snapshot as (nil, false, nil), not an error.
type Storage interface {
	Load(ctx context.Context, sessionID string) ([]byte, bool, error)
	Save(ctx context.Context, sessionID string, snapshot []byte) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStorage keeps snapshots in process memory. Used in tests and as a
// fallback when no snapshot backend is configured.
type MemoryStorage struct {
	mu        sync.Mutex
	snapshots map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{snapshots: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(_ context.Context, sessionID string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot, ok := m.snapshots[sessionID]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), snapshot...), true, nil
}

func (m *MemoryStorage) Save(_ context.Context, sessionID string, snapshot []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[sessionID] = append([]byte(nil), snapshot...)
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, sessionID)
	return nil
}

type snapshotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(storageKey, sessionID string) string
}

// RedisStorage persists snapshots in Redis with a TTL so abandoned carts
// eventually expire. The store argument is satisfied by *redis.Client.
type RedisStorage struct {
	client snapshotStore
	ttl    time.Duration
}

func NewRedisStorage(client snapshotStore, ttl time.Duration) (*RedisStorage, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	return &RedisStorage{client: client, ttl: ttl}, nil
}

func (r *RedisStorage) Load(ctx context.Context, sessionID string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, r.client.CartKey(StorageKey, sessionID))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (r *RedisStorage) Save(ctx context.Context, sessionID string, snapshot []byte) error {
	return r.client.Set(ctx, r.client.CartKey(StorageKey, sessionID), snapshot, r.ttl)
}

func (r *RedisStorage) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.client.CartKey(StorageKey, sessionID))
}
