package app

import (
	"strings"
	"time"

	"github.com/christyekim/recommendations/internal/logger"
	"github.com/christyekim/recommendations/internal/utils"
)

type Config struct {
	HTTPAddr          string
	GinMode           string
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	CORSOrigins       []string
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	ginMode := utils.GetEnv("GIN_MODE", "", log)
	readHeaderTimeoutSeconds := utils.GetEnvAsInt("HTTP_READ_HEADER_TIMEOUT", 5, log)
	idleTimeoutSeconds := utils.GetEnvAsInt("HTTP_IDLE_TIMEOUT", 120, log)
	shutdownTimeoutSeconds := utils.GetEnvAsInt("HTTP_SHUTDOWN_TIMEOUT", 15, log)
	corsOrigins := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log)

	cfg := Config{
		HTTPAddr:          ":" + port,
		GinMode:           ginMode,
		ReadHeaderTimeout: time.Duration(readHeaderTimeoutSeconds) * time.Second,
		IdleTimeout:       time.Duration(idleTimeoutSeconds) * time.Second,
		ShutdownTimeout:   time.Duration(shutdownTimeoutSeconds) * time.Second,
	}
	for _, origin := range strings.Split(corsOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}
	return cfg
}
