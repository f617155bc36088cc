package cache

import (
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const limiterPrefix = "coin-converter:ratelimit"

var newRedisStore = func(client *redis.Client) (limiter.Store, error) {
	return sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: limiterPrefix,
	})
}

// NewLimiter builds a limiter for a formatted rate such as "120-M". Counters
// live in Redis when client is non-nil so every replica shares them.
func NewLimiter(client *redis.Client, formatted string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("parse rate %q: %w", formatted, err)
	}

	if client == nil {
		log.Println("Rate limiter using in-memory store")
		return limiter.New(memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: limiterPrefix}), rate), nil
	}

	store, err := newRedisStore(client)
	if err != nil {
		log.Printf("Warning: redis limiter store unavailable, using memory: %v", err)
		return limiter.New(memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: limiterPrefix}), rate), nil
	}
	return limiter.New(store, rate), nil
}
