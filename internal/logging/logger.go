// Package logging builds the daemon-wide zap logger. Components receive the
// sugared logger named after their concern (session, gateway, syncer) via
// Named, so log lines from the refresh fan-out stay attributable.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns the root sugared logger and a flush func for main's defer.
// env "prod" selects the JSON encoder; anything else gets the console
// encoder for local runs next to the desktop shell.
func New(level, env string) (*zap.SugaredLogger, func(), error) {
	var cfg zap.Config
	if strings.EqualFold(env, "prod") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	if lvl, err := zapcore.ParseLevel(strings.ToLower(level)); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	base, err := cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		return nil, nil, err
	}
	root := base.Named("supaco")
	return root.Sugar(), func() { _ = root.Sync() }, nil
}
