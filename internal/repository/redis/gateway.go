package redis

import (
	"context"

	"github.com/redis/rueidis"

	"opdash/internal/errors"
	"opdash/internal/logging"
	"opdash/internal/repository"
)

// Gateway stores dashboard values as plain Redis strings
type Gateway struct {
	client rueidis.Client
	prefix string
}

var _ repository.Gateway = (*Gateway)(nil)

// NewClient connects to the Redis server at addr
func NewClient(addr string) (rueidis.Client, error) {
	client, err := rueidis.NewClient(
		rueidis.ClientOption{
			InitAddress: []string{addr},
		},
	)
	if err != nil {
		return nil, errors.NewStorageError("connect", addr, err)
	}
	return client, nil
}

// New wraps an existing client. Every key is stored under prefix.
func New(client rueidis.Client, prefix string) *Gateway {
	return &Gateway{client: client, prefix: prefix}
}

// Dial connects to addr and returns a gateway owning the client
func Dial(addr string, prefix string) (*Gateway, error) {
	client, err := NewClient(addr)
	if err != nil {
		return nil, err
	}
	logging.Debugf("redis gateway connected to %s (prefix %q)", addr, prefix)
	return New(client, prefix), nil
}

// Load implements repository.Gateway
func (g *Gateway) Load(ctx context.Context, key string) (string, bool, error) {
	cmd := g.client.B().Get().Key(g.key(key)).Build()
	value, err := g.client.Do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", false, nil
		}
		return "", false, errors.NewStorageError("load", key, err)
	}
	return value, true, nil
}

// Save writes every entry with a single MSET, which Redis applies atomically
func (g *Gateway) Save(ctx context.Context, entries ...repository.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	kv := g.client.B().Mset().KeyValue()
	for _, entry := range entries {
		kv = kv.KeyValue(g.key(entry.Key), entry.Value)
	}

	if err := g.client.Do(ctx, kv.Build()).Error(); err != nil {
		return errors.NewStorageError("save", entries[0].Key, err)
	}
	return nil
}

// Close releases the client
func (g *Gateway) Close() error {
	g.client.Close()
	return nil
}

func (g *Gateway) key(key string) string {
	return PrefixedKey(g.prefix, key)
}

// PrefixedKey joins a namespace prefix and a key with ":"
func PrefixedKey(prefix string, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + ":" + key
}
