// README: Structured logger construction; mode chosen from config.
package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New builds a zap logger. "prod" or "production" selects the JSON
// production encoder; anything else gets the development console one.
func New(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}
