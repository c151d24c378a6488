// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Setup sets the level and formatter ("text" or "json") of the standard
// logger, writing to stderr.
func Setup(level, format string) error {
	return SetupLogger(logrus.StandardLogger(), os.Stderr, level, format)
}

func SetupLogger(l *logrus.Logger, out io.Writer, level, format string) error {
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	switch format {
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	l.SetLevel(lvl)
	l.SetOutput(out)
	return nil
}
