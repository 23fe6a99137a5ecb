package redisClient

import "github.com/go-redis/redis"

// NewRedis connects to the cache used for per-user swiped-profile sets.
func NewRedis(host, port string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: host + ":" + port,
	})

	if err := client.Ping().Err(); err != nil {
		return nil, err
	}

	return client, nil
}
