package app

import (
	"github.com/sirupsen/logrus"

	"github.com/sarahkali/oracle/backend/internal/config"
)

// SetupLogging configures the global logrus logger.
func SetupLogging(cfg config.ServerConfig) {
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	} else {
		logrus.WithField("level", cfg.LogLevel).Warn("unknown LOG_LEVEL, keeping info")
	}

	if cfg.LogJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
