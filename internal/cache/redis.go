package cache

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Search responses age out on their own; word detail entries are deleted
// explicitly when the word changes.
const SearchTTL = 5 * time.Minute

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	log.Printf("Connected to Redis at %s", redisURL)
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	return c.client.Get(ctx, key).Bytes()
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// WordKey keys a cached word detail response.
func WordKey(wordID string) string {
	return "word:" + wordID
}

// SearchKey keys a cached search response.
// Format: "search:<dictionaryId>:<limit>:<query>" with "-" for no dictionary
// filter. The limit is part of the key so a response cached for one page size
// is never served for another.
func SearchKey(query, dictionaryID string, limit int) string {
	if dictionaryID == "" {
		dictionaryID = "-"
	}
	return "search:" + dictionaryID + ":" + strconv.Itoa(limit) + ":" + strings.ToLower(strings.TrimSpace(query))
}

// AutocompleteKey keys a cached autocomplete response.
func AutocompleteKey(query, dictionaryID string, limit int) string {
	if dictionaryID == "" {
		dictionaryID = "-"
	}
	return "suggest:" + dictionaryID + ":" + strconv.Itoa(limit) + ":" + strings.ToLower(strings.TrimSpace(query))
}
