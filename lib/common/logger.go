package common

import (
	"fmt"
	"github.com/lni/dragonboat/v4/logger"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// --------------------------------------------------------------------------
// Custom Logger (implements dragonboats logger.ILogger)
// --------------------------------------------------------------------------

// levelLabels are the column values printed for each level
var levelLabels = map[logger.LogLevel]string{
	logger.CRITICAL: "PANIC",
	logger.ERROR:    "ERROR",
	logger.WARNING:  "WARN",
	logger.INFO:     "INFO",
	logger.DEBUG:    "DEBUG",
}

// dStructLogger writes "time LEVEL | package | message" lines to the shared log output.
// Loggers are cached by dragonboat, so the output is looked up on every write.
type dStructLogger struct {
	name  string
	level atomic.Int32
}

func (l *dStructLogger) SetLevel(level logger.LogLevel) {
	l.level.Store(int32(level))
}

func (l *dStructLogger) Debugf(format string, args ...interface{}) {
	l.logf(logger.DEBUG, format, args...)
}

func (l *dStructLogger) Infof(format string, args ...interface{}) {
	l.logf(logger.INFO, format, args...)
}

func (l *dStructLogger) Warningf(format string, args ...interface{}) {
	l.logf(logger.WARNING, format, args...)
}

func (l *dStructLogger) Errorf(format string, args ...interface{}) {
	l.logf(logger.ERROR, format, args...)
}

// Panicf logs regardless of the level and panics with the message
func (l *dStructLogger) Panicf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	writeLine(logger.CRITICAL, l.name, message)
	panic(message)
}

func (l *dStructLogger) logf(level logger.LogLevel, format string, args ...interface{}) {
	if logger.LogLevel(l.level.Load()) < level {
		return
	}
	writeLine(level, l.name, fmt.Sprintf(format, args...))
}

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

var (
	outputMu    sync.Mutex
	logOutput   io.Writer = os.Stdout
	factoryOnce sync.Once
)

// SetLogOutput redirects all dStruct loggers, including already created ones, to w.
// It returns the previous output.
func SetLogOutput(w io.Writer) io.Writer {
	outputMu.Lock()
	defer outputMu.Unlock()
	old := logOutput
	logOutput = w
	return old
}

func writeLine(level logger.LogLevel, name, message string) {
	line := fmt.Sprintf("%s %-5s | %-15s | %s\n", time.Now().Format("2006/01/02 15:04:05"), levelLabels[level], name, message)

	outputMu.Lock()
	defer outputMu.Unlock()
	_, _ = io.WriteString(logOutput, line)
}

// CreateLogger implements the logger.Factory interface
func CreateLogger(pkgName string) logger.ILogger {
	l := &dStructLogger{name: pkgName}
	l.SetLevel(logger.INFO)
	return l
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// ParseLogLevel converts a string level to logger.LogLevel
func ParseLogLevel(level string) (logger.LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return logger.DEBUG, nil
	case "info", "":
		return logger.INFO, nil
	case "warning", "warn":
		return logger.WARNING, nil
	case "error":
		return logger.ERROR, nil
	default:
		return logger.INFO, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

// --------------------------------------------------------------------------
// Logger initialization
// --------------------------------------------------------------------------

// LoggerNames lists the loggers used by dStruct packages
var LoggerNames = []string{"rstore", "cli"}

// InitLoggers installs the custom logger factory and sets the level of all dStruct loggers
func InitLoggers(level string) error {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		return err
	}

	// the factory can only be installed once per process
	factoryOnce.Do(func() {
		logger.SetLoggerFactory(CreateLogger)
	})

	for _, name := range LoggerNames {
		logger.GetLogger(name).SetLevel(lvl)
	}
	return nil
}
