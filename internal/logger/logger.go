package logger

import (
	"go.uber.org/zap"
)

// NewNamed builds a named zap logger for the given application environment.
// Development gets a human-readable console logger, everything else gets the
// production JSON config.
func NewNamed(appEnv, name string) (*zap.Logger, error) {
	var log *zap.Logger
	var err error
	if appEnv == "development" {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return log.Named(name), nil
}
