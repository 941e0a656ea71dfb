package logger

// log level strings
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// log format strings
const (
	ConsoleFormat = "console"
	JSONFormat    = "json"
)

// Cloud Logging structured field names
const (
	timestampField = "timestamp"
	severityField  = "severity"
	messageField   = "message"
)

// custom error fields
const (
	lineOfCode = "loc"
)
