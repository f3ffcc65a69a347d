package pkg

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func SetupLogger(c *Config) error {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return errors.Wrapf(err, "parse log level %q", c.LogLevel)
	}
	logrus.SetLevel(level)
	if c.LogJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{ForceColors: c.LogColor, FullTimestamp: true})
	}
	return nil
}
