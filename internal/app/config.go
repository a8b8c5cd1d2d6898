package app

import (
	"time"

	"github.com/craftora/craftora-backend/internal/permissions"
	"github.com/craftora/craftora-backend/internal/platform/env"
	"github.com/craftora/craftora-backend/internal/platform/logger"
)

type Config struct {
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	RoleResolver   permissions.RoleResolverConfig
	Port           string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := env.Get("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := env.GetInt("ACCESS_TOKEN_TTL", 3600, log)
	fallbackCustomer := env.GetBool("PROFILE_FALLBACK_CUSTOMER", false, log)
	port := env.Get("PORT", "8080", log)
	return Config{
		JWTSecretKey:   jwtSecretKey,
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
		RoleResolver:   permissions.RoleResolverConfig{FallbackCustomer: fallbackCustomer},
		Port:           port,
	}
}
