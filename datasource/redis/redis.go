package redis

import (
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
)

type RedisClient struct {
	Name      string
	signature string
	client    *redis.Client
}

var redisInstances sync.Map

func signatureOf(opts *redis.Options) string {
	return fmt.Sprintf("%s|%s|%s|%d", opts.Addr, opts.Username, opts.Password, opts.DB)
}

// RegisterRedis registers the online store of a featurestore. A client with the same
// address, credentials and db is reused, otherwise it replaces the old one.
func RegisterRedis(name string, opts *redis.Options) *RedisClient {
	signature := signatureOf(opts)
	if value, ok := redisInstances.Load(name); ok {
		if r := value.(*RedisClient); r.signature == signature {
			return r
		}
	}

	r := &RedisClient{Name: name, signature: signature, client: redis.NewClient(opts)}
	if old, loaded := redisInstances.Swap(name, r); loaded {
		if o := old.(*RedisClient); o.client != nil {
			o.client.Close()
		}
	}
	return r
}

func GetRedis(name string) (*RedisClient, error) {
	value, ok := redisInstances.Load(name)
	if !ok {
		return nil, fmt.Errorf("Redis not found, name:%s", name)
	}

	return value.(*RedisClient), nil
}

func RemoveRedis(name string) {
	value, ok := redisInstances.LoadAndDelete(name)
	if !ok {
		return
	}
	if r := value.(*RedisClient); r.client != nil {
		r.client.Close()
	}
}

func (r *RedisClient) GetClient() *redis.Client {
	return r.client
}
