package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// VerbosityLevel defines the logging verbosity.
type VerbosityLevel int

const (
	Verbose VerbosityLevel = iota
	Info
	Warning
	Error
	Off
)

var verbosityNames = map[VerbosityLevel]string{
	Verbose: "Verbose",
	Info:    "Info",
	Warning: "Warning",
	Error:   "Error",
	Off:     "Off",
}

func (v VerbosityLevel) String() string {
	if name, ok := verbosityNames[v]; ok {
		return name
	}
	return fmt.Sprintf("VerbosityLevel(%d)", int(v))
}

// ParseVerbosity accepts the level names case-insensitively.
func ParseVerbosity(s string) (VerbosityLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "verbose":
		return Verbose, nil
	case "info":
		return Info, nil
	case "warning":
		return Warning, nil
	case "error":
		return Error, nil
	case "off":
		return Off, nil
	default:
		return Off, fmt.Errorf("invalid verbosity level '%s'. Valid levels are Verbose, Info, Warning, Error, Off", s)
	}
}

// UnmarshalText lets config files spell the level by name.
func (v *VerbosityLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseVerbosity(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v VerbosityLevel) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// SlogLevel maps the verbosity onto slog. Off has no slog equivalent and is
// handled by Setup discarding all output.
func (v VerbosityLevel) SlogLevel() slog.Level {
	switch v {
	case Verbose:
		return slog.LevelDebug
	case Info:
		return slog.LevelInfo
	case Warning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// Config controls where diagnostics go. Rotation settings only apply when
// LogFile is set.
type Config struct {
	Verbosity  VerbosityLevel
	LogFile    string // Log file path, empty for stderr only
	MaxSize    int    // Max size in megabytes
	MaxBackups int    // Max number of backups
	MaxAge     int    // Max age in days
	Compress   bool   // Compress backups
}

func DefaultConfig() Config {
	return Config{
		Verbosity:  Warning,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	}
}

// Setup builds a text slog logger writing to stderr and, if configured, a
// rotating log file. The returned closer releases the file; it is never nil.
func Setup(config Config, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	if config.Verbosity >= Off {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nopCloser{}, nil
	}

	out := stderr
	var closer io.Closer = nopCloser{}
	if config.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(config.LogFile), 0755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		fileLogger := &lumberjack.Logger{
			Filename:   config.LogFile,
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		}
		out = io.MultiWriter(stderr, fileLogger)
		closer = fileLogger
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: config.Verbosity.SlogLevel()})
	return slog.New(handler), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
