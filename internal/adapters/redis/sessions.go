package redisad

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"hotels_api/internal/domain"
)

const keyPrefix = "session:"

// Sessions is a domain.SessionStore backed by `session:<token>` -> userId keys
// written by the auth service.
type Sessions struct{ c *redis.Client }

func New(addr, pass string, db int) *Sessions {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}))
}

func NewWithClient(c *redis.Client) *Sessions { return &Sessions{c: c} }

func (s *Sessions) UserIDForToken(ctx context.Context, token string) (int64, error) {
	v, err := s.c.Get(ctx, keyPrefix+token).Result()
	if err == redis.Nil {
		return 0, domain.ErrUnauthorized
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("session: bad user id %q: %w", v, err)
	}
	return id, nil
}

// Put stores a session; ttl <= 0 keeps it until deleted.
func (s *Sessions) Put(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return s.c.Set(ctx, keyPrefix+token, strconv.FormatInt(userID, 10), ttl).Err()
}

func (s *Sessions) Delete(ctx context.Context, token string) error {
	return s.c.Del(ctx, keyPrefix+token).Err()
}

func (s *Sessions) Ping(ctx context.Context) error {
	return s.c.Ping(ctx).Err()
}

func (s *Sessions) Close() error { return s.c.Close() }
