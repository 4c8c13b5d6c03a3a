package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Aside implements cache-aside: on a hit, dest is populated from the cache;
// on a miss, load fills dest and the result is stored with the given TTL.
// With no cache configured it degrades to calling load directly. Cache write
// failures are swallowed; the loaded value is already in dest.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, load func() error) error {
	if client == nil {
		return load()
	}

	if raw, err := client.Get(ctx, key).Bytes(); err == nil {
		if json.Unmarshal(raw, dest) == nil {
			return nil
		}
		// Corrupt entry: drop it and fall through to the loader.
		client.Del(ctx, key)
	}

	if err := load(); err != nil {
		return err
	}

	if raw, err := json.Marshal(dest); err == nil {
		client.Set(ctx, key, raw, ttl)
	}
	return nil
}
