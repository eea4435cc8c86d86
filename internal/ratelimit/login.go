package ratelimit

import (
	"context"
	"errors"
	"strings"

	"github.com/maderas/backend/internal/config"
	"github.com/maderas/backend/internal/observability/metrics"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	keyLogin      = "login:"
	endpointLogin = "/api/login"
)

var ErrTooManyRequests = errors.New("too_many_requests")

type bucket interface {
	Allow(ctx context.Context, key string, rate float64, burst int) (Result, error)
}

type Params struct {
	fx.In

	Lc      fx.Lifecycle
	Config  config.Config
	Log     *zap.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

// LoginLimiter throttles login attempts per client address.
type LoginLimiter struct {
	log      *zap.Logger
	metrics  *metrics.Metrics
	shared   bucket
	fallback bucket
	rate     float64
	burst    int
}

func NewLoginLimiter(p Params) *LoginLimiter {
	log := p.Log.Named("ratelimit.login")
	l := &LoginLimiter{
		log:      log,
		metrics:  p.Metrics,
		fallback: NewMemoryBucket(),
		rate:     p.Config.LoginRateLimit,
		burst:    p.Config.LoginBurst,
	}

	if addr := strings.TrimSpace(p.Config.RedisAddr); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: strings.TrimSpace(p.Config.RedisPassword),
		})
		l.shared = NewTokenBucket(client)
		if p.Lc != nil {
			p.Lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					return client.Close()
				},
			})
		}
		log.Info("login rate limit backed by redis", zap.String("addr", addr))
	}
	return l
}

// Enabled reports whether throttling applies at all.
func (l *LoginLimiter) Enabled() bool {
	return l != nil && l.rate > 0 && l.burst > 0
}

// Allow consumes one token for key and returns ErrTooManyRequests when the
// bucket is empty. Redis failures degrade to the in-process bucket.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (Result, error) {
	if !l.Enabled() {
		return Result{Allowed: true}, nil
	}
	key = keyLogin + strings.TrimSpace(key)

	var (
		res Result
		err error
	)
	if l.shared != nil {
		res, err = l.shared.Allow(ctx, key, l.rate, l.burst)
		if err != nil {
			l.log.Warn("redis rate limit failed, using local bucket", zap.Error(err))
		}
	}
	if l.shared == nil || err != nil {
		res, err = l.fallback.Allow(ctx, key, l.rate, l.burst)
		if err != nil {
			return Result{}, err
		}
	}

	if !res.Allowed {
		l.metrics.RecordRateLimitDenied(ctx, endpointLogin, "login_burst")
		return res, ErrTooManyRequests
	}
	l.metrics.RecordRateLimitAllowed(ctx, endpointLogin)
	return res, nil
}
