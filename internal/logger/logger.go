package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/doselog/internal/constants"
)

var (
	// Logger is the global logger instance
	Logger *log.Logger
)

// Config holds logger configuration
type Config struct {
	Debug     bool
	ConfigDir string
	// Output replaces the rotating log file when set.
	Output io.Writer
}

// LogFilePath returns the rotating log file location under configDir.
func LogFilePath(configDir string) string {
	return filepath.Join(configDir, "logs", constants.AppName+".log")
}

// Init initializes the global logger with the given configuration
func Init(cfg Config) error {
	var fileWriter io.Writer = cfg.Output
	if fileWriter == nil {
		logFile := LogFilePath(cfg.ConfigDir)
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return err
		}
		fileWriter = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
	}

	level := log.InfoLevel
	writer := fileWriter
	if cfg.Debug {
		level = log.DebugLevel
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})

	return nil
}

// With returns a child logger carrying keyvals, or nil before Init.
func With(keyvals ...interface{}) *log.Logger {
	if Logger == nil {
		return nil
	}
	return Logger.With(keyvals...)
}

// Timed logs msg at debug level with the elapsed time when the returned func is called.
func Timed(msg string, keyvals ...interface{}) func() {
	start := time.Now()
	return func() {
		Debug(msg, append(keyvals, "duration", time.Since(start))...)
	}
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
