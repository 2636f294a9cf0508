package neat

import (
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"
)

// LoggerLevel is a logging verbosity, using the same string vocabulary as
// Options.LogLevel's on-disk "log_level" field ("debug", "info", "warn",
// "error"), so a configuration document and the -log_level flag both speak
// the same values (§6).
type LoggerLevel string

const (
	LogLevelDebug   LoggerLevel = "debug"
	LogLevelInfo    LoggerLevel = "info"
	LogLevelWarning LoggerLevel = "warn"
	LogLevelError   LoggerLevel = "error"
)

// severity orders the four levels so acceptLogLevel can compare them with a
// single lookup instead of an if/else chain per level.
var severity = map[LoggerLevel]int{
	LogLevelDebug:   0,
	LogLevelInfo:    1,
	LogLevelWarning: 2,
	LogLevelError:   3,
}

var (
	// LogLevel is the package's current log level, set by InitLogger.
	LogLevel LoggerLevel

	loggerDebug = log.New(os.Stdout, "neatcore debug: ", log.Ltime|log.Lshortfile)
	loggerInfo  = log.New(os.Stdout, "neatcore info: ", log.Ltime|log.Lshortfile)
	loggerWarn  = log.New(os.Stdout, "neatcore warn: ", log.Ltime|log.Lshortfile)
	loggerError = log.New(os.Stderr, "neatcore error: ", log.Ltime|log.Lshortfile)

	// DebugLog emits message if LogLevel is debug.
	DebugLog = func(message string) {
		if acceptLogLevel(LogLevel, LogLevelDebug) {
			_ = loggerDebug.Output(2, message)
		}
	}
	// InfoLog emits message if LogLevel is info or more verbose.
	InfoLog = func(message string) {
		if acceptLogLevel(LogLevel, LogLevelInfo) {
			_ = loggerInfo.Output(2, message)
		}
	}
	// WarnLog emits message if LogLevel is warn or more verbose.
	WarnLog = func(message string) {
		if acceptLogLevel(LogLevel, LogLevelWarning) {
			_ = loggerWarn.Output(2, message)
		}
	}
	// ErrorLog emits message if LogLevel is error or more verbose.
	ErrorLog = func(message string) {
		if acceptLogLevel(LogLevel, LogLevelError) {
			_ = loggerError.Output(2, message)
		}
	}
)

// InitLogger sets the package's log level from the same vocabulary as
// Options.LogLevel, so a caller can pass either a configuration document's
// log_level field or a command-line override through unchanged.
func InitLogger(level string) error {
	candidate := LoggerLevel(level)
	if _, ok := severity[candidate]; !ok {
		return errors.Errorf("unsupported log level: [%s]", level)
	}
	LogLevel = candidate
	return nil
}

// acceptLogLevel reports whether a message at targetLevel should be emitted
// given the package's currently configured currentLevel.
func acceptLogLevel(currentLevel, targetLevel LoggerLevel) bool {
	current, ok := severity[currentLevel]
	if !ok {
		_ = loggerError.Output(2, fmt.Sprintf("unsupported NEAT log level was set: %q; use one of debug, info, warn, error", currentLevel))
		return false
	}
	return severity[targetLevel] >= current
}
