package log

import (
	"io"
	"os"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

const (
	// default log level
	defaultLogLevel = logrus.InfoLevel

	// default log file params
	defaultLogMaxSize    = 100  // maximum file size before rotation, in MB
	defaultLogMaxBackups = 3    // maximum number of old log files to keep
	defaultLogMaxAge     = 28   // maximum number of days to retain old log files
	defaultLogCompress   = true // gzip setting for rotated log files; NewLogger does not pass it to lumberjack, so rotated files are not compressed
)

// Global is the logger used when a consumer does not supply its own.
var Global Logger

func init() {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(defaultLogLevel)
	l.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		PadLevelText:    true,
		FullTimestamp:   true,
		TimestampFormat: "01-02|15:04:05.000",
	})
	Global = &LogWrapper{entry: logrus.NewEntry(l)}
}

// NewLogger returns a logger writing to the given file, rotated by lumberjack.
// An empty filename logs to stderr only.
func NewLogger(logFilename string, logLevel string) Logger {
	l := logrus.New()
	if logFilename == "" {
		l.SetOutput(os.Stderr)
	} else {
		output := &lumberjack.Logger{
			Filename:   logFilename,
			MaxSize:    defaultLogMaxSize,
			MaxBackups: defaultLogMaxBackups,
			MaxAge:     defaultLogMaxAge,
		}
		l.SetOutput(io.MultiWriter(output, os.Stderr))
	}
	l.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		PadLevelText:    true,
		FullTimestamp:   true,
		TimestampFormat: "01-02|15:04:05.000",
	})
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = defaultLogLevel
	}
	l.SetLevel(level)
	return &LogWrapper{entry: logrus.NewEntry(l)}
}

// New constructs a logger from functional options.
func New(opts ...Options) Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(defaultLogLevel)
	lw := &LogWrapper{entry: logrus.NewEntry(l)}
	for _, opt := range opts {
		opt(lw)
	}
	return lw
}
