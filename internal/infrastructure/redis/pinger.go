package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
)

// Pinger adapts a go-redis client to health.Pinger.
type Pinger struct {
	Client *goredis.Client
}

func (p Pinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx).Err()
}
