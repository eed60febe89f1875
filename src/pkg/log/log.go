package log

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Log wraps the shared logrus instance with the service name and the
// context/scope/meta field convention used across the storage engine.
type Log struct {
	AppName string
	Logger  *logrus.Logger
}

var logger Log

// InitLogger builds the process-wide logger from viper config.
func InitLogger(v *viper.Viper) {
	logger = Log{
		AppName: v.GetString("app.name"),
		Logger:  newLogrusLogger(v),
	}
}

// GetLogger returns the process-wide logger. Before InitLogger it is a
// no-op logger, which keeps library tests quiet.
func GetLogger() Log {
	return logger
}

func newLogrusLogger(v *viper.Viper) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(v.GetString("log.level"))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	return l
}

func (l Log) fields(context, scope, meta string) logrus.Fields {
	return logrus.Fields{
		"service": l.AppName,
		"context": context,
		"scope":   scope,
		"meta":    meta,
	}
}

func (l Log) Info(context, message, scope, meta string) {
	if l.Logger == nil {
		return
	}
	l.Logger.WithFields(l.fields(context, scope, meta)).Info(message)
}

func (l Log) Error(context, message, scope, meta string) {
	if l.Logger == nil {
		return
	}
	l.Logger.WithFields(l.fields(context, scope, meta)).Error(message)
}

// Slow flags operations that fell off the hot path, e.g. a resolution
// that had to run the repair scan or a wide ledger scan.
func (l Log) Slow(context, message, scope, meta string) {
	if l.Logger == nil {
		return
	}
	l.Logger.WithFields(l.fields(context, scope, meta)).Warn(message)
}
