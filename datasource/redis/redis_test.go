package redis

import (
	"testing"

	"fortio.org/assert"
	"github.com/go-redis/redis/v8"
)

func TestRegisterRedis(t *testing.T) {
	defer RemoveRedis("online_test")

	r1 := RegisterRedis("online_test", &redis.Options{Addr: "10.0.0.1:6379", Password: "pwd"})
	r2 := RegisterRedis("online_test", &redis.Options{Addr: "10.0.0.1:6379", Password: "pwd"})
	assert.True(t, r1 == r2)

	r3 := RegisterRedis("online_test", &redis.Options{Addr: "10.0.0.2:6379", Password: "pwd"})
	assert.True(t, r1 != r3)
	assert.Equal(t, "10.0.0.2:6379", r3.GetClient().Options().Addr)

	r4 := RegisterRedis("online_test", &redis.Options{Addr: "10.0.0.2:6379", Password: "rotated"})
	assert.True(t, r3 != r4)

	current, err := GetRedis("online_test")
	assert.NoError(t, err)
	assert.True(t, current == r4)
	assert.Equal(t, "rotated", current.GetClient().Options().Password)
}

func TestGetRedisNotFound(t *testing.T) {
	_, err := GetRedis("missing")
	assert.Error(t, err)

	RemoveRedis("missing")
}
