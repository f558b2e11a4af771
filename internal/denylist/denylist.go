// denylist хранит идентификаторы (jti) отозванных access-токенов до их
// естественного истечения. Без него logout для самодостаточных подписанных
// токенов неисполним: подпись остаётся валидной до exp.
package denylist

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist — минимальный контракт denylist-а отозванных токенов.
type Denylist interface {
	// Add помечает jti отозванным на ttl (остаток жизни токена).
	Add(ctx context.Context, jti string, ttl time.Duration) error
	// Contains сообщает, отозван ли jti.
	Contains(ctx context.Context, jti string) (bool, error)
	// Close закрывает клиент Redis.
	Close() error
}

type redisDenylist struct {
	rdb    *redis.Client
	prefix string
}

// NewRedis создаёт denylist поверх Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "auth:deny:".
func NewRedis(redisURL, prefix string) (Denylist, error) {
	if prefix == "" {
		prefix = "auth:deny:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &redisDenylist{rdb: rdb, prefix: prefix}, nil
}

func (d *redisDenylist) key(jti string) string { return d.prefix + jti }

func (d *redisDenylist) Add(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Токен уже истёк — хранить нечего.
		return nil
	}

	return d.rdb.Set(ctx, d.key(jti), "1", ttl).Err()
}

func (d *redisDenylist) Contains(ctx context.Context, jti string) (bool, error) {
	n, err := d.rdb.Exists(ctx, d.key(jti)).Result()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (d *redisDenylist) Close() error { return d.rdb.Close() }
