// Package cache provides a redis-backed response cache with tag-based
// eviction: every cached entry registers itself under one or more tags, and
// evicting a tag drops all entries registered under it in one call.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// TagMovies labels cached movie listings. Every movie mutation evicts it.
const TagMovies = "movies"

type Cache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func New(client redis.UniversalClient, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached payload for key. The second return is false on a
// miss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return payload, true, nil
}

// Set stores payload under key and registers the key with each tag.
func (c *Cache) Set(ctx context.Context, key string, payload []byte, tags ...string) error {
	pipe := c.client.TxPipeline()

	pipe.Set(ctx, key, payload, c.ttl)
	for _, tag := range tags {
		pipe.SAdd(ctx, tagKey(tag), key)
	}

	_, err := pipe.Exec(ctx)

	return err
}

// EvictByTag deletes every cached entry registered under tag, plus the tag
// set itself.
func (c *Cache) EvictByTag(ctx context.Context, tag string) error {
	keys, err := c.client.SMembers(ctx, tagKey(tag)).Result()
	if err != nil {
		return err
	}

	keys = append(keys, tagKey(tag))

	return c.client.Del(ctx, keys...).Err()
}

func tagKey(tag string) string {
	return "cache:tag:" + tag
}
