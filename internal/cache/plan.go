package cache

import (
	"context"
	"encoding/json"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"TripPlanner/config"
	"TripPlanner/internal/model"
	"TripPlanner/pkg/logger"
	"TripPlanner/storage/redis"
)

const planResultPrefix = "plan:result"

// PlanCache stores normalized trip plans keyed by the request fingerprint so
// identical submissions skip the upstream planner. Cache failures degrade to a
// miss, never into a request error.
type PlanCache struct {
	enabled bool
	ttl     time.Duration
}

func NewPlanCache() *PlanCache {
	cfg := config.Cfg
	return &PlanCache{
		enabled: cfg.PlanCacheEnabled,
		ttl:     time.Duration(cfg.PlanCacheTTLMinutes) * time.Minute,
	}
}

func (c *PlanCache) Get(ctx context.Context, fingerprint string) (*model.TripPlan, bool) {
	if c == nil || !c.enabled || fingerprint == "" {
		return nil, false
	}

	key := redis.Key(planResultPrefix, fingerprint)
	data, err := redis.Client().Get(ctx, key).Bytes()
	if err != nil {
		if err != redislib.Nil {
			logger.Logger.Warn("Failed to read plan cache",
				zap.String("fingerprint", fingerprint),
				zap.Error(err),
			)
		}
		return nil, false
	}

	var plan model.TripPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		logger.Logger.Warn("Dropping corrupt plan cache entry",
			zap.String("fingerprint", fingerprint),
			zap.Error(err),
		)
		redis.Client().Del(ctx, key)
		return nil, false
	}

	return &plan, true
}

func (c *PlanCache) Set(ctx context.Context, fingerprint string, plan *model.TripPlan) {
	if c == nil || !c.enabled || fingerprint == "" || plan == nil {
		return
	}

	data, err := json.Marshal(plan)
	if err != nil {
		logger.Logger.Warn("Failed to encode plan for cache",
			zap.String("fingerprint", fingerprint),
			zap.Error(err),
		)
		return
	}

	key := redis.Key(planResultPrefix, fingerprint)
	if err := redis.Client().Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Logger.Warn("Failed to write plan cache",
			zap.String("fingerprint", fingerprint),
			zap.Error(err),
		)
	}
}
