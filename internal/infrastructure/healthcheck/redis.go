package healthcheck

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
)

// RedisChecker reports Redis connectivity via a ping.
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a health checker for the given Redis client.
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

// Name returns the component name.
func (c *RedisChecker) Name() string {
	return "redis"
}

// Check pings Redis and reports the result.
func (c *RedisChecker) Check(ctx context.Context) appcore.HealthStatus {
	checkedAt := time.Now()

	if c.client == nil {
		return appcore.HealthStatus{
			Healthy:   false,
			Message:   "client not initialized",
			CheckedAt: checkedAt,
		}
	}

	if err := c.client.Ping(ctx).Err(); err != nil {
		return appcore.HealthStatus{
			Healthy:   false,
			Message:   err.Error(),
			CheckedAt: checkedAt,
		}
	}

	return appcore.HealthStatus{
		Healthy:   true,
		CheckedAt: checkedAt,
	}
}
