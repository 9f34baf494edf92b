package logger

import (
	"fmt"

	"go.uber.org/zap"
)

var level = zap.NewAtomicLevelAt(zap.InfoLevel)

// Init builds the process-wide zap logger and installs it as zap.L().
func Init(environment string) error {
	var conf zap.Config
	if environment == "development" {
		conf = zap.NewDevelopmentConfig()
		level.SetLevel(zap.DebugLevel)
	} else {
		conf = zap.NewProductionConfig()
	}
	conf.Level = level

	l, err := conf.Build()
	if err != nil {
		return fmt.Errorf("conf.Build -> %w", err)
	}
	zap.ReplaceGlobals(l.With(zap.String("env", environment)))

	return nil
}

// SetLevel changes the level of the installed logger at runtime.
func SetLevel(text string) error {
	if text == "" {
		return nil
	}

	return level.UnmarshalText([]byte(text))
}
