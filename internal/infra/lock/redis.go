package lock

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Só apaga a chave se ainda for nossa (o TTL pode ter expirado e outro
// processo ter assumido).
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLock exclui varreduras concorrentes entre réplicas.
type RedisLock struct {
	rdb *redis.Client
	key string
	ttl time.Duration
	log *slog.Logger
}

func NewRedisLock(rdb *redis.Client, key string, ttl time.Duration, log *slog.Logger) *RedisLock {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisLock{rdb: rdb, key: key, ttl: ttl, log: log}
}

func (l *RedisLock) TryLock(ctx context.Context) (func(), bool, error) {
	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := releaseScript.Run(ctx, l.rdb, []string{l.key}, token).Err(); err != nil {
			l.log.Warn("release reminder lock failed", "key", l.key, "err", err)
		}
	}
	return release, true, nil
}

// NewRedisClient conecta a partir de uma URL redis://
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
