package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var (
	Rdb *goredis.Client
	TTL = 10 * time.Minute

	// local backs the cache when no Redis address is configured.
	local = gocache.New(TTL, 2*TTL)
)

func Connect(ctx context.Context, addr, password string) error {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return err
	}
	Rdb = client
	log.Info().Str("addr", addr).Msg("Connected to Redis")
	return nil
}

func Close() {
	if Rdb == nil {
		return
	}
	if err := Rdb.Close(); err != nil {
		log.Error().Err(err).Msg("Error while closing redis client")
	}
	Rdb = nil
}

func SetCache(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if Rdb == nil {
		local.Set(key, data, TTL)
		return nil
	}
	return Rdb.Set(ctx, key, data, TTL).Err()
}

// GetCache decodes the cached value into out and reports whether the key was
// present.
func GetCache(ctx context.Context, key string, out interface{}) (bool, error) {
	var data []byte
	if Rdb == nil {
		cached, ok := local.Get(key)
		if !ok {
			return false, nil
		}
		data = cached.([]byte)
	} else {
		val, err := Rdb.Get(ctx, key).Bytes()
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		data = val
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, err
	}
	return true, nil
}

func DeleteCache(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if Rdb == nil {
		for _, k := range keys {
			local.Delete(k)
		}
		return nil
	}
	return Rdb.Del(ctx, keys...).Err()
}
