package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Init configures the global logrus logger with JSON output.
func Init(level string) {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Unknown log level %q, falling back to info", level)
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	logrus.Info("Logger initialized")
}
