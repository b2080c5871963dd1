package middleware

import (
	"quickcal/config"
	"quickcal/pkg/log"
	"quickcal/pkg/scope"
)

type Middleware struct {
	l          log.Logger
	jwtManager scope.Manager
	quota      *dailyQuota
	burst      *burstLimiter
}

func New(l log.Logger, jwtManager scope.Manager, cfg config.RateLimitConfig) Middleware {
	return Middleware{
		l:          l,
		jwtManager: jwtManager,
		quota:      newDailyQuota(cfg.DailyLimit),
		burst:      newBurstLimiter(cfg.BurstPerMin),
	}
}
