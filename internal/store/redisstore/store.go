package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/polyglotcap/captions/internal/caption"
)

// Store caches the public recent-captions feed so the dashboard poll
// does not hit the database on every request.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr, password string, db int, ttl time.Duration) *Store {
	return &Store{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

func feedKey(limit int) string {
	return fmt.Sprintf("recent_captions:%d", limit)
}

// GetRecent returns redis.Nil on a cache miss.
func (s *Store) GetRecent(ctx context.Context, limit int) ([]caption.Caption, error) {
	raw, err := s.client.Get(ctx, feedKey(limit)).Bytes()
	if err != nil {
		return nil, err
	}
	var items []caption.Caption
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) SetRecent(ctx context.Context, limit int, items []caption.Caption) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, feedKey(limit), raw, s.ttl).Err()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
