package rdx

import (
	"os"
	"time"

	"cakepoint/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init creates the Redis client used for the catalogue cache, the cart
// store and the change-event channel.
func Init() error {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	return Conn.Ping(globals.Ctx).Err()
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxSet(key, value string) error {
	return Conn.Set(globals.Ctx, key, value, 10*time.Minute).Err()
}

func RdxDel(key string) error {
	return Conn.Del(globals.Ctx, key).Err()
}
