package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/zap"

	"github.com/spec-kit/course-marketplace/internal/config"
	apperrors "github.com/spec-kit/course-marketplace/pkg/util/errorutil"
)

// RateLimiter throttles signup and signin attempts per route and client IP.
type RateLimiter struct {
	limiter *limiter.Limiter
	logger  *zap.Logger
}

// NewRateLimiter uses Redis when client is non-nil so limits are shared across
// replicas, and an in-memory store otherwise.
func NewRateLimiter(cfg config.RateLimitConfig, client *redis.Client, logger *zap.Logger) (*RateLimiter, error) {
	rate := limiter.Rate{Period: time.Minute, Limit: cfg.AuthPerMinute}
	options := limiter.StoreOptions{
		Prefix:          cfg.Prefix,
		MaxRetry:        3,
		CleanUpInterval: limiter.DefaultCleanUpInterval,
	}

	var store limiter.Store
	if client != nil {
		redisStore, err := sredis.NewStoreWithOptions(client, options)
		if err != nil {
			return nil, err
		}
		store = redisStore
	} else {
		store = memory.NewStoreWithOptions(options)
	}

	return &RateLimiter{limiter: limiter.New(store, rate), logger: logger}, nil
}

// Handle rejects the request with 429 once the client exceeds the limit. Store
// failures let the request through.
func (r *RateLimiter) Handle(c *fiber.Ctx) error {
	key := c.Route().Path + "|" + c.IP()
	result, err := r.limiter.Get(c.UserContext(), key)
	if err != nil {
		r.logger.Warn("rate limiter unavailable", zap.Error(err))
		return c.Next()
	}

	c.Set("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
	c.Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
	c.Set("X-RateLimit-Reset", strconv.FormatInt(result.Reset, 10))

	if result.Reached {
		return apperrors.NewRateLimited("too many requests, try again later")
	}
	return c.Next()
}
