package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -destination=mock/mock_client.go -package=redismock -source=interface.go

// Client is the subset of go-redis the document repository depends on. It is
// satisfied by *redis.Client and *redis.ClusterClient.
type Client interface {
	redis.Cmdable
	Watch(ctx context.Context, fn func(*redis.Tx) error, keys ...string) error
	Close() error
}
