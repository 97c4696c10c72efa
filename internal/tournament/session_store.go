package tournament

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/DhavalSuthar-24/clubhouse/config"
	"github.com/DhavalSuthar-24/clubhouse/internal/constants"
	"github.com/DhavalSuthar-24/clubhouse/internal/scheduler"
)

var ErrSessionNotFound = errors.New("scheduling session not found or expired")

// SessionStore keeps scheduling sessions between requests. Sessions expire
// ttl after their last save.
type SessionStore interface {
	Get(ctx context.Context, id string) (*scheduler.Session, error)
	Save(ctx context.Context, s *scheduler.Session) error
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// MemoryStore serializes sessions so callers never share slices with the
// stored copy.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*scheduler.Session, error) {
	m.mu.Lock()
	e, ok := m.entries[id]
	if ok && m.now().After(e.expires) {
		delete(m.entries, id)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	var s scheduler.Session
	if err := json.Unmarshal(e.data, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, s *scheduler.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", s.ID, err)
	}
	m.mu.Lock()
	m.entries[s.ID] = memoryEntry{data: data, expires: m.now().Add(m.ttl)}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.entries, id)
	m.mu.Unlock()
	return nil
}

// Sweep drops expired sessions and returns how many were removed.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	removed := 0
	for id, e := range m.entries {
		if now.After(e.expires) {
			delete(m.entries, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (m *MemoryStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

const redisKeyPrefix = "clubhouse:schedule:"

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) key(id string) string {
	return redisKeyPrefix + id
}

func (r *RedisStore) Get(ctx context.Context, id string) (*scheduler.Session, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	var s scheduler.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *scheduler.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", s.ID, err)
	}
	if err := r.client.Set(ctx, r.key(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

// NewSessionStore picks redis when REDIS_URL is configured and reachable at
// startup, otherwise an in-process store. The returned stop func releases
// the store's resources.
func NewSessionStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (SessionStore, func(), error) {
	if cfg.Redis.URL == "" {
		mem := NewMemoryStore(cfg.Redis.SessionTTL)
		sweepCtx, cancel := context.WithCancel(context.Background())
		go mem.Run(sweepCtx, sweepInterval(cfg.Redis.SessionTTL))
		log.Info().Dur("ttl", cfg.Redis.SessionTTL).Msg("scheduling sessions kept in memory")
		return mem, cancel, nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	log.Info().Str("addr", opts.Addr).Dur("ttl", cfg.Redis.SessionTTL).Msg("scheduling sessions kept in redis")
	return NewRedisStore(client, cfg.Redis.SessionTTL), func() { client.Close() }, nil
}

func sweepInterval(ttl time.Duration) time.Duration {
	if ttl > 0 && ttl < constants.SessionSweepInterval {
		return ttl
	}
	return constants.SessionSweepInterval
}
