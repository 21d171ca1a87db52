package logging

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a syslog severity, numbered 0-7 per RFC 5424. Lower numbers are
// more severe; a message is persisted only when its value is less than or
// equal to the configured threshold.
type Level int8

const (
	Emergency Level = iota
	Alert
	Critical
	Error
	Warning
	Notice
	Info
	Debug
)

// DefaultThreshold is the warning/notice tier conventional for syslog.
const DefaultThreshold = Warning

// maxNameLen caps derived and explicit log names.
const maxNameLen = 50

var levelNames = [...]string{"EMERG", "ALERT", "CRIT", "ERROR", "WARN", "NOTICE", "INFO", "DEBUG"}

// String returns the syslog keyword for the level.
func (l Level) String() string {
	if l < Emergency || l > Debug {
		return fmt.Sprintf("LEVEL(%d)", int8(l))
	}
	return levelNames[l]
}

// Valid reports whether l is within the syslog 0-7 range.
func (l Level) Valid() bool { return l >= Emergency && l <= Debug }

// ErrInvalidName is returned when an explicit log name contains anything
// other than letters and digits.
var ErrInvalidName = errors.New("log name must be alphanumeric")

// Config describes one log destination.
type Config struct {
	// Name is the log file base name. Must be alphanumeric. Empty derives a
	// name from the executable.
	Name string
	// Restart truncates any existing file at open; false appends.
	Restart bool
	// Threshold is the maximum severity value that will be persisted.
	Threshold Level
	// SyslogAddr optionally mirrors every persisted entry to a UDP syslog
	// collector, e.g. "logs.example.net:514".
	SyslogAddr string
}

// Logger writes single-line entries of the form
//
//	<timestamp> [<LEVEL>] <message>
//
// to <name>.log in the working directory. The file handle is unbuffered so
// every accepted entry is handed to the OS before the call returns; logs here
// exist for post-mortem diagnosis, so durability wins over throughput.
type Logger struct {
	threshold Level
	zl        *zap.Logger
	file      *os.File
	conn      net.Conn
	path      string
}

// New validates cfg, opens the log file, and returns a ready Logger.
// Validation failures (bad name, out-of-range threshold) are returned
// immediately; nothing is opened.
func New(cfg Config) (*Logger, error) {
	if !cfg.Threshold.Valid() {
		return nil, fmt.Errorf("log level %d out of range 0-7", cfg.Threshold)
	}
	name, err := resolveName(cfg.Name)
	if err != nil {
		return nil, err
	}

	flags := os.O_CREATE | os.O_WRONLY
	if cfg.Restart {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}
	path := name + ".log"
	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	enc := zapcore.NewConsoleEncoder(encoderConfig())
	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(file)), zap.DebugLevel)

	var conn net.Conn
	if cfg.SyslogAddr != "" {
		conn, err = net.Dial("udp", cfg.SyslogAddr)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("dial syslog collector: %w", err)
		}
		remote := zapcore.NewCore(enc, zapcore.AddSync(conn), zap.DebugLevel)
		core = zapcore.NewTee(core, remote)
	}

	return &Logger{
		threshold: cfg.Threshold,
		zl:        zap.New(core),
		file:      file,
		conn:      conn,
		path:      path,
	}, nil
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = bracketLevelEncoder
	cfg.ConsoleSeparator = " "
	return cfg
}

// bracketLevelEncoder renders the level as "[WARN]" rather than zap's bare
// capital form, matching the persisted line format.
func bracketLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + l.CapitalString() + "]")
}

// resolveName enforces the alphanumeric-only rule. Explicit names are
// rejected outright when they carry other runes; an empty name falls back to
// the executable name with offending runes stripped.
func resolveName(name string) (string, error) {
	if name != "" {
		for _, r := range name {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
			}
		}
		return clipName(strings.ToLower(name)), nil
	}

	base := filepath.Base(os.Args[0])
	var b strings.Builder
	for _, r := range base {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	derived := clipName(b.String())
	if len(derived) < 3 {
		derived = "slate"
	}
	return derived, nil
}

func clipName(name string) string {
	if len(name) > maxNameLen {
		return name[:maxNameLen]
	}
	return name
}

// Path returns the log file path.
func (l *Logger) Path() string { return l.path }

// Threshold returns the configured severity threshold.
func (l *Logger) Threshold() Level { return l.threshold }

// Log writes msg at the given severity. Messages above the threshold are
// dropped, not buffered. Severities without a native zap analogue (emergency,
// alert, critical, notice) land in the nearest zap bucket and carry the exact
// syslog keyword as a structured field.
func (l *Logger) Log(lv Level, msg string, fields ...zap.Field) {
	if !lv.Valid() || lv > l.threshold {
		return
	}
	switch lv {
	case Debug:
		l.zl.Debug(msg, fields...)
	case Info:
		l.zl.Info(msg, fields...)
	case Notice:
		l.zl.Info(msg, append(fields, zap.String("severity", lv.String()))...)
	case Warning:
		l.zl.Warn(msg, fields...)
	case Error:
		l.zl.Error(msg, fields...)
	default: // Critical, Alert, Emergency
		l.zl.Error(msg, append(fields, zap.String("severity", lv.String()))...)
	}
}

// DebugMsg logs at debug severity.
func (l *Logger) DebugMsg(msg string, fields ...zap.Field) { l.Log(Debug, msg, fields...) }

// InfoMsg logs at info severity.
func (l *Logger) InfoMsg(msg string, fields ...zap.Field) { l.Log(Info, msg, fields...) }

// NoticeMsg logs at notice severity.
func (l *Logger) NoticeMsg(msg string, fields ...zap.Field) { l.Log(Notice, msg, fields...) }

// WarningMsg logs at warning severity.
func (l *Logger) WarningMsg(msg string, fields ...zap.Field) { l.Log(Warning, msg, fields...) }

// ErrorMsg logs at error severity.
func (l *Logger) ErrorMsg(msg string, fields ...zap.Field) { l.Log(Error, msg, fields...) }

// Sync flushes any pending entries.
func (l *Logger) Sync() error {
	return l.zl.Sync()
}

// Close flushes and releases the log file and any syslog connection. Safe to
// call on every exit path; errors from Sync on regular files are ignored
// because some platforms reject fsync on them.
func (l *Logger) Close() error {
	_ = l.zl.Sync()
	if l.conn != nil {
		_ = l.conn.Close()
	}
	return l.file.Close()
}
