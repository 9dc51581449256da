package queue

import "github.com/sirupsen/logrus"

// loggerAdapter bridges asynq's logging interface onto logrus.
type loggerAdapter struct {
	log *logrus.Logger
}

func newLoggerAdapter(log *logrus.Logger) *loggerAdapter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &loggerAdapter{log: log}
}

func (a *loggerAdapter) Debug(args ...interface{}) { a.log.Debug(args...) }
func (a *loggerAdapter) Info(args ...interface{})  { a.log.Info(args...) }
func (a *loggerAdapter) Warn(args ...interface{})  { a.log.Warn(args...) }
func (a *loggerAdapter) Error(args ...interface{}) { a.log.Error(args...) }
func (a *loggerAdapter) Fatal(args ...interface{}) { a.log.Fatal(args...) }
