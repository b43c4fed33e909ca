package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New builds a production JSON logger, or a development console logger for
// any other env.
func New(env string) (*zap.Logger, error) {
	if strings.EqualFold(env, "production") {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
