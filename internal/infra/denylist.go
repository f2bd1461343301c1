package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const denylistPrefix = "jwt:revocado:"

// TokenDenylist records revoked JWT and session ids until the token would have expired
// anyway.
type TokenDenylist struct {
	rdb *redis.Client
}

func NewTokenDenylist(rdb *redis.Client) *TokenDenylist { return &TokenDenylist{rdb: rdb} }

func (d *TokenDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired
	}
	return d.rdb.Set(ctx, denylistPrefix+jti, 1, ttl).Err()
}

// IsRevoked fails open: if Redis is unreachable the token is accepted and the
// error is logged.
func (d *TokenDenylist) IsRevoked(ctx context.Context, jti string) bool {
	n, err := d.rdb.Exists(ctx, denylistPrefix+jti).Result()
	if err != nil {
		log.Warn().Err(err).Msg("denylist: lookup failed")
		return false
	}
	return n > 0
}
