package logger

import (
	"io"
	"os"

	"car-rental/pkg/config"

	zl "github.com/rs/zerolog"
)

// log is an unexported package-level global variable that holds the logger instance
var log *logger

type logger struct {
	engine *zl.Logger
}

type options struct {
	format string
	output io.Writer
}

func init() {
	// usable before InitLogger, e.g. in tests
	engine := zl.New(os.Stderr).With().Timestamp().Logger()
	log = &logger{engine: &engine}
}

// InitLogger initializes the logger with configuration
func InitLogger(cfg *config.Config) {
	logLvl := getLogLevel(cfg.Log.Level)

	opts := options{
		format: cfg.Log.Format,
		output: os.Stdout,
	}

	zl.SetGlobalLevel(logLvl)
	setupCloudLoggingSeverity()

	var engine zl.Logger
	if opts.format == ConsoleFormat {
		engine = newConsoleLogger(opts)
	} else {
		engine = newGCPLogger(opts)
	}

	log = &logger{
		engine: &engine,
	}
}

// getLogLevel returns the log level based on the string input
func getLogLevel(level string) zl.Level {
	switch level {
	case DebugLevel:
		return zl.DebugLevel
	case InfoLevel:
		return zl.InfoLevel
	case WarnLevel:
		return zl.WarnLevel
	case ErrorLevel:
		return zl.ErrorLevel
	default:
		return zl.InfoLevel
	}
}

// setupCloudLoggingSeverity configures zerolog to use Cloud Logging severity levels
func setupCloudLoggingSeverity() {
	zl.LevelFieldMarshalFunc = func(l zl.Level) string {
		switch l {
		case zl.DebugLevel:
			return "DEBUG"
		case zl.InfoLevel:
			return "INFO"
		case zl.WarnLevel:
			return "WARNING"
		case zl.ErrorLevel:
			return "ERROR"
		case zl.FatalLevel:
			return "CRITICAL"
		case zl.PanicLevel:
			return "CRITICAL"
		default:
			return "DEFAULT"
		}
	}
}

// newGCPLogger creates a logger that outputs JSON format (better for cloud environments)
func newGCPLogger(opts options) zl.Logger {
	// for Google Cloud Logging structured logging, we need to use specific field names
	zl.TimeFieldFormat = zl.TimeFormatUnix
	zl.TimestampFieldName = timestampField
	zl.LevelFieldName = severityField
	zl.MessageFieldName = messageField

	return zl.New(opts.output).With().
		Timestamp().
		Logger()
}

// newConsoleLogger creates a human readable logger for local development
func newConsoleLogger(opts options) zl.Logger {
	return zl.New(zl.ConsoleWriter{Out: opts.output}).With().
		Timestamp().
		Logger()
}
