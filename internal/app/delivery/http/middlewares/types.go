package middlewares

import (
	"farmalink-service/internal/app/config"
	"farmalink-service/internal/app/services/shared/ratelimiter"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log             *zap.Logger
	InternalConfig  *config.InternalConfig
	ResourceLimiter *ratelimiter.ResourceLimiter
}
