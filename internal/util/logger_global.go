package util

import (
	"sync"
)

var (
	globalLogger *Logger
	loggerOnce   sync.Once
)

// InitLogger initializes the process-wide logger. Later calls are no-ops.
func InitLogger(logLevel, logFile string, debugToConsole bool) {
	loggerOnce.Do(func() {
		globalLogger = NewLogger(logLevel, logFile, debugToConsole)
	})
}

// logger returns the global logger, or nil before InitLogger. The global
// helpers drop entries until the logger exists.
func logger() *Logger {
	return globalLogger
}

func LogInfo(msg string) {
	if l := logger(); l != nil {
		l.Info(msg)
	}
}

func LogInfof(format string, args ...interface{}) {
	if l := logger(); l != nil {
		l.Infof(format, args...)
	}
}

func LogDebugf(format string, args ...interface{}) {
	if l := logger(); l != nil {
		l.Debugf(format, args...)
	}
}

func LogError(msg string) {
	if l := logger(); l != nil {
		l.Error(msg)
	}
}

func LogErrorf(format string, args ...interface{}) {
	if l := logger(); l != nil {
		l.Errorf(format, args...)
	}
}
