// Package cache decorates record stores with a Redis read cache (cache-aside).
// Cache failures never fail a call: they are logged and the decorated store answers.
package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/apper-canvas/insta-studyhub-auto/core"
)

const (
	keyPrefix  = "studyhub:"
	DefaultTTL = 5 * time.Minute
)

// Cache is a JSON value cache with a fixed TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    core.Logger
}

func New(client *redis.Client, ttl time.Duration, logger core.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: client, ttl: ttl, log: logger}
}

// Connect opens a client on `addr` and checks it answers.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "pinging redis")
	}
	return client, nil
}

func key(parts ...string) string {
	k := keyPrefix
	for i, p := range parts {
		if i > 0 {
			k += ":"
		}
		k += p
	}
	return k
}

func idKey(entity string, id int) string {
	return key(entity, strconv.Itoa(id))
}

// get reports whether `k` was found & decoded into `dest`.
func (c *Cache) get(ctx context.Context, k string, dest interface{}) bool {
	data, err := c.client.Get(ctx, k).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.warn("reading cache", k, err)
		}
		return false
	}
	if err = json.Unmarshal(data, dest); err != nil {
		c.warn("decoding cache", k, err)
		return false
	}
	return true
}

func (c *Cache) set(ctx context.Context, k string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		c.warn("encoding cache", k, err)
		return
	}
	if err = c.client.Set(ctx, k, data, c.ttl).Err(); err != nil {
		c.warn("writing cache", k, err)
	}
}

func (c *Cache) del(ctx context.Context, keys ...string) {
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.warn("invalidating cache", keys[0], err)
	}
}

func (c *Cache) warn(msg, k string, err error) {
	if c.log != nil {
		c.log.Warn(msg, err, map[string]interface{}{"key": k})
	}
}
