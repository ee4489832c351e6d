// Package logger wraps a process-wide charmbracelet logger that writes to a
// rotating file under the config directory.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/pharmtrack/internal/constants"
)

var (
	// Logger is nil until Init succeeds; the helpers below are no-ops until then.
	Logger *log.Logger

	logPath string
)

type Config struct {
	Debug     bool
	ConfigDir string
}

// Init opens <ConfigDir>/logs/pharmtrack.log. Only warnings and errors are
// recorded unless Debug is set, in which case everything is also echoed to stderr.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}
	logPath = filepath.Join(logDir, constants.AppName+".log")

	rotating := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	var out io.Writer = rotating
	level := log.WarnLevel
	if cfg.Debug {
		out = io.MultiWriter(os.Stderr, rotating)
		level = log.DebugLevel
	}

	Logger = log.NewWithOptions(out, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

// Path returns the active log file, or "" before Init.
func Path() string {
	return logPath
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

// Fatal logs at error level and exits with status 1.
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
	os.Exit(1)
}
