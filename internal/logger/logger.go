package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// LogLevel represents different log levels
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelSuccess
	LevelError
)

var levelNames = map[LogLevel]string{
	LevelDebug:   "DEBUG",
	LevelInfo:    "INFO",
	LevelWarn:    "WARN",
	LevelError:   "ERROR",
	LevelSuccess: "SUCCESS",
}

var levelColors = map[LogLevel]*color.Color{
	LevelDebug:   color.New(color.FgCyan),
	LevelInfo:    color.New(color.FgGreen),
	LevelWarn:    color.New(color.FgYellow),
	LevelError:   color.New(color.FgRed),
	LevelSuccess: color.New(color.FgGreen, color.Bold),
}

var levelEmojis = map[LogLevel]string{
	LevelDebug:   "🐛",
	LevelInfo:    "ℹ️",
	LevelWarn:    "⚠️",
	LevelError:   "❌",
	LevelSuccess: "✅",
}

var callerColor = color.New(color.FgHiBlack)

var (
	defaultMu    sync.Mutex
	defaultLevel = LevelInfo
	defaultOut   io.Writer = os.Stderr
)

// Logger is the main logger struct
type Logger struct {
	mu         sync.Mutex
	minLevel   LogLevel
	logger     *log.Logger
	showCaller bool
	display    string
	shared     bool // follows SetDefaults until configured directly
}

// New creates a new Logger instance
func New(out io.Writer, minLevel LogLevel) *Logger {
	return &Logger{
		minLevel: minLevel,
		logger:   log.New(out, "", 0),
	}
}

// SetDefaults changes the level and output used by loggers created afterwards.
func SetDefaults(level LogLevel, out io.Writer) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLevel = level
	if out != nil {
		defaultOut = out
	}
}

// PackageLogger creates a logger tagged with a package display name. Its level
// and output follow SetDefaults, so it can live in a package-level var, until
// SetLevel, SetOutput or EnableCallerInfo is called on it.
func PackageLogger(display string) *Logger {
	l := New(os.Stderr, LevelInfo)
	l.display = display
	l.shared = true
	return l
}

// SetLevel sets the minimum log level
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minLevel = level
	l.shared = false
}

// SetOutput sets the output destination
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.SetOutput(w)
	l.shared = false
}

// EnableCallerInfo enables/disables caller information
func (l *Logger) EnableCallerInfo(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.showCaller = enable
	l.shared = false
}

// Log logs a message at a specific level
func (l *Logger) Log(level LogLevel, msg string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	minLevel, showCaller := l.minLevel, l.showCaller
	if l.shared {
		defaultMu.Lock()
		minLevel, showCaller = defaultLevel, defaultLevel == LevelDebug
		l.logger.SetOutput(defaultOut)
		defaultMu.Unlock()
	}
	if level < minLevel {
		return
	}

	var callerInfo string
	if showCaller {
		// 2 levels up: Log <- Info/Debug/... <- caller
		_, file, line, ok := runtime.Caller(2)
		if ok {
			parts := strings.Split(file, "/")
			if len(parts) > 2 {
				file = strings.Join(parts[len(parts)-2:], "/")
			}
			callerInfo = fmt.Sprintf("%s:%d", file, line)
		}
	}

	var sb strings.Builder
	sb.WriteString(levelColors[level].Sprint(levelNames[level]))
	sb.WriteString(" ")
	sb.WriteString(levelEmojis[level])
	sb.WriteString(" ")
	if l.display != "" {
		sb.WriteString(l.display)
		sb.WriteString(" ")
	}
	sb.WriteString(fmt.Sprintf(msg, args...))
	if callerInfo != "" {
		sb.WriteString(" ")
		sb.WriteString(callerColor.Sprintf("(%s)", callerInfo))
	}

	l.logger.Println(sb.String())
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.Log(LevelDebug, msg, args...)
}

// Info logs an info message
func (l *Logger) Info(msg string, args ...interface{}) {
	l.Log(LevelInfo, msg, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.Log(LevelWarn, msg, args...)
}

// Error logs an error message
func (l *Logger) Error(msg string, args ...interface{}) {
	l.Log(LevelError, msg, args...)
}

// Success logs a success message
func (l *Logger) Success(msg string, args ...interface{}) {
	l.Log(LevelSuccess, msg, args...)
}
