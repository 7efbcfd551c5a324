package logger

import (
	"github.com/sirupsen/logrus"
)

// New builds the application logger: JSON output, level from config with an
// info fallback.
func New(logLevel string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
		log.Warnf("unknown log level %q, using info", logLevel)
	}
	log.SetLevel(level)

	return log
}
