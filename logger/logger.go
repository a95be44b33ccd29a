package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	InfoLogger  *logrus.Logger
	WarnLogger  *logrus.Logger
	ErrorLogger *logrus.Logger
)

// InitLoggers sets up the shared loggers. Each level writes to its own
// rotated file under LOG_DIR (default "logs") and mirrors to stdout.
func InitLoggers() {
	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	InfoLogger = newLogger(filepath.Join(logDir, "info.log"), logrus.InfoLevel)
	WarnLogger = newLogger(filepath.Join(logDir, "warn.log"), logrus.WarnLevel)
	ErrorLogger = newLogger(filepath.Join(logDir, "error.log"), logrus.ErrorLevel)
}

func newLogger(filename string, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	rotated := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
	l.SetOutput(io.MultiWriter(os.Stdout, rotated))

	return l
}
