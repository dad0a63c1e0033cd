package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"TripPlanner/config"
	"TripPlanner/pkg/errors"
	"TripPlanner/pkg/logger"
	"TripPlanner/pkg/response"
	"TripPlanner/storage/redis"
)

// RateLimitConfig configures a sliding-window limiter.
type RateLimitConfig struct {
	// window length in seconds
	Window int
	// maximum requests inside the window
	MaxRequests int
	KeyPrefix   string
	// key by the trip_id path parameter when present
	ByTripID bool
	ByIP     bool
	// block duration in seconds once the limit is exceeded
	BlockDuration int
}

// PlanRateLimitConfig guards the plan generation endpoint. Each upstream call
// is expensive (an agentic LLM run), so the window is tight.
var PlanRateLimitConfig = RateLimitConfig{
	Window:        60,
	MaxRequests:   10,
	KeyPrefix:     "plan:rate",
	ByTripID:      true,
	ByIP:          true,
	BlockDuration: 300,
}

// GeneralRateLimitConfig covers the rest of the API surface.
var GeneralRateLimitConfig = RateLimitConfig{
	Window:        60,
	MaxRequests:   300,
	KeyPrefix:     "rate:limit",
	ByTripID:      false,
	ByIP:          true,
	BlockDuration: 300,
}

type RateLimiter struct {
	config RateLimitConfig
}

func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		config: config,
	}
}

func (rl *RateLimiter) getKey(ctx context.Context, c *app.RequestContext) string {
	var identifier string

	if rl.config.ByTripID {
		if tripID := c.Param("trip_id"); tripID != "" {
			identifier = fmt.Sprintf("trip:%s", tripID)
		}
	}

	if identifier == "" && rl.config.ByIP {
		identifier = fmt.Sprintf("ip:%s", c.ClientIP())
	}

	return redis.Key(rl.config.KeyPrefix, identifier)
}

// Allow checks the sliding window, recording the current request.
func (rl *RateLimiter) Allow(ctx context.Context, c *app.RequestContext) (bool, int, error) {
	key := rl.getKey(ctx, c)
	now := time.Now()
	windowStart := now.Add(-time.Duration(rl.config.Window) * time.Second)

	// Sliding window over a zset: trim expired entries, record this request,
	// count what remains.
	client := redis.Client()
	pipe := client.Pipeline()

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixNano()))

	pipe.ZAdd(ctx, key, redislib.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})

	zcardCmd := pipe.ZCard(ctx, key)

	pipe.Expire(ctx, key, time.Duration(rl.config.Window+10)*time.Second)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return false, 0, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	count := int(zcardCmd.Val())
	allowed := count <= rl.config.MaxRequests

	return allowed, count, nil
}

func (rl *RateLimiter) Block(ctx context.Context, c *app.RequestContext) error {
	key := redis.Key(rl.config.KeyPrefix+":block", rl.getKey(ctx, c))
	return redis.Client().Set(ctx, key, "1", time.Duration(rl.config.BlockDuration)*time.Second).Err()
}

func (rl *RateLimiter) IsBlocked(ctx context.Context, c *app.RequestContext) (bool, error) {
	key := redis.Key(rl.config.KeyPrefix+":block", rl.getKey(ctx, c))
	result, err := redis.Client().Exists(ctx, key).Result()
	return result > 0, err
}

// RateLimitMiddleware creates the limiter middleware. It is a no-op when rate
// limiting is disabled in config.
func RateLimitMiddleware(cfg RateLimitConfig) app.HandlerFunc {
	limiter := NewRateLimiter(cfg)

	return func(ctx context.Context, c *app.RequestContext) {
		if !config.Cfg.RateLimitEnabled {
			c.Next(ctx)
			return
		}

		blocked, err := limiter.IsBlocked(ctx, c)
		if err != nil {
			// Redis trouble must not take the API down.
			logger.Logger.Error("Failed to check block status", zap.Error(err))
			c.Next(ctx)
			return
		}

		if blocked {
			response.Error(ctx, c, errors.PlanRateLimited)
			c.Abort()
			return
		}

		allowed, count, err := limiter.Allow(ctx, c)
		if err != nil {
			logger.Logger.Error("Failed to check rate limit", zap.Error(err))
			c.Next(ctx)
			return
		}

		remaining := cfg.MaxRequests - count
		if remaining < 0 {
			remaining = 0
		}
		c.Response.Header.Set("X-RateLimit-Limit", strconv.Itoa(cfg.MaxRequests))
		c.Response.Header.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Response.Header.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Duration(cfg.Window)*time.Second).Unix(), 10))

		if !allowed {
			if err := limiter.Block(ctx, c); err != nil {
				logger.Logger.Error("Failed to set rate limit block", zap.Error(err))
			}

			logger.Logger.Warn("Rate limit exceeded",
				zap.String("client_ip", c.ClientIP()),
				zap.String("path", string(c.Path())),
				zap.Int("count", count),
			)

			response.Error(ctx, c, errors.PlanRateLimited)
			c.Abort()
			return
		}

		c.Next(ctx)
	}
}

// PlanRateLimitMiddleware limits plan generation submissions.
func PlanRateLimitMiddleware() app.HandlerFunc {
	return RateLimitMiddleware(PlanRateLimitConfig)
}

// GeneralRateLimitMiddleware limits the whole API surface.
func GeneralRateLimitMiddleware() app.HandlerFunc {
	return RateLimitMiddleware(GeneralRateLimitConfig)
}
