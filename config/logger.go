package config

import (
	"context"
	"time"

	zaploki "github.com/paul-milne/zap-loki"
	"go.uber.org/zap"
)

// NewLogger builds the process logger. Logs stay local unless a Loki URL is configured.
func NewLogger(c *Config) *zap.SugaredLogger {
	zapConfig := zap.NewProductionConfig()
	if c.Env != "prod" {
		zapConfig = zap.NewDevelopmentConfig()
	}
	if c.LokiURL == "" {
		return zap.Must(zapConfig.Build()).Sugar()
	}

	lokiConfig := zaploki.Config{
		Url:          c.LokiURL,
		BatchMaxSize: 1000,
		BatchMaxWait: 10 * time.Second,
		Labels:       map[string]string{"app": c.AppName},
	}
	return zap.Must(zaploki.New(context.Background(), lokiConfig).WithCreateLogger(zapConfig)).Sugar()
}
