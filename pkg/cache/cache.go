package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTLs per content type
const (
	TTLBlog    = 5 * time.Minute  // single post by slug
	TTLList    = 30 * time.Second // public list pages (refreshed often)
	TTLDefault = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixBlog = "blog:"
	PrefixList = "blogs:list:"
)

// ErrCacheMiss is returned when a key is absent
var ErrCacheMiss = errors.New("cache miss")

// Service is the Redis cache used for rendered blog reads
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// Blog helpers
	GetBlog(ctx context.Context, slug string, dest interface{}) error
	SetBlog(ctx context.Context, slug string, blog interface{}) error
	InvalidateBlog(ctx context.Context, slug string) error
	InvalidateLists(ctx context.Context) error
}

type service struct {
	client *redis.Client
}

// NewService creates a Redis-backed cache service.
// A nil client yields a no-op cache (every Get is a miss).
func NewService(client *redis.Client) Service {
	return &service{client: client}
}

func (s *service) Get(ctx context.Context, key string, dest interface{}) error {
	if s.client == nil {
		return ErrCacheMiss
	}
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

func (s *service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s.client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *service) Delete(ctx context.Context, keys ...string) error {
	if s.client == nil || len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *service) GetBlog(ctx context.Context, slug string, dest interface{}) error {
	return s.Get(ctx, PrefixBlog+slug, dest)
}

func (s *service) SetBlog(ctx context.Context, slug string, blog interface{}) error {
	return s.Set(ctx, PrefixBlog+slug, blog, TTLBlog)
}

func (s *service) InvalidateBlog(ctx context.Context, slug string) error {
	return s.Delete(ctx, PrefixBlog+slug)
}

// InvalidateLists drops every cached list page. SCAN instead of KEYS so a
// large keyspace does not block Redis.
func (s *service) InvalidateLists(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	iter := s.client.Scan(ctx, 0, PrefixList+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return s.Delete(ctx, keys...)
}
