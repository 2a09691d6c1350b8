// Package healthcheck provides health checkers for infrastructure
// components. Each checker implements appcore.HealthChecker and is
// aggregated by the health use cases.
package healthcheck

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
)

// MongoChecker reports MongoDB connectivity via a ping.
type MongoChecker struct {
	client *mongo.Client
}

// NewMongoChecker creates a health checker for the given MongoDB client.
func NewMongoChecker(client *mongo.Client) *MongoChecker {
	return &MongoChecker{client: client}
}

// Name returns the component name.
func (c *MongoChecker) Name() string {
	return "mongodb"
}

// Check pings MongoDB and reports the result.
func (c *MongoChecker) Check(ctx context.Context) appcore.HealthStatus {
	checkedAt := time.Now()

	if c.client == nil {
		return appcore.HealthStatus{
			Healthy:   false,
			Message:   "client not initialized",
			CheckedAt: checkedAt,
		}
	}

	if err := c.client.Ping(ctx, nil); err != nil {
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
