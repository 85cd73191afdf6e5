package log

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Options is a function type that can be used to configure the logger
type Options func(*LogWrapper)

// WithLevel configures the log level. If level is not specified, default to InfoLevel
func WithLevel(level string) Options {
	return func(lw *LogWrapper) {
		l, err := logrus.ParseLevel(level)
		if err != nil {
			lw.entry.Logger.SetLevel(logrus.InfoLevel)
		} else {
			lw.entry.Logger.SetLevel(l)
		}
		formatter := &logrus.TextFormatter{
			FullTimestamp:          false,
			DisableLevelTruncation: true,
			ForceColors:            true,
		}
		if l == logrus.DebugLevel || l == logrus.TraceLevel {
			formatter = &logrus.TextFormatter{
				TimestampFormat: time.RFC3339,
				FullTimestamp:   true,
			}
			lw.entry.Logger.SetReportCaller(true)
		}
		lw.entry.Logger.SetFormatter(formatter)
	}
}

// WithOutput configures the output destination
func WithOutput(output io.Writer) Options {
	return func(lw *LogWrapper) {
		lw.entry.Logger.SetOutput(output)
	}
}

// WithFormatter configures the log formatter
func WithFormatter(formatter logrus.Formatter) Options {
	return func(lw *LogWrapper) {
		lw.entry.Logger.SetFormatter(formatter)
	}
}

// WithReportCaller configures the log to report caller
func WithReportCaller(reportCaller bool) Options {
	return func(lw *LogWrapper) {
		lw.entry.Logger.SetReportCaller(reportCaller)
	}
}

// WithNullLogger sets the logger to discard all output
func WithNullLogger() Options {
	return func(lw *LogWrapper) {
		lw.entry.Logger.SetOutput(io.Discard)
	}
}
