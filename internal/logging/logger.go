package logging

import (
	"go.uber.org/zap"
)

// New builds the process logger. Production gets JSON output, everything
// else gets the console encoder with debug enabled.
func New(environment string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if environment == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.DisableStacktrace = true

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

// NewNop returns a logger that discards everything. Tests use it.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
