// Package logging provides the leveled console logger used by every command.
//
// It is a thin layer over logrus: the logrus logger itself writes nowhere,
// and a hook fans each entry out to stdout (or stderr for errors) and to the
// optional plain-text log file. Lines look like
//
//	2006-01-02 15:04:05 [INFO] message
//
// with the level tag colored when the terminal supports it.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/backmassage/mediacat/internal/config"
	"github.com/backmassage/mediacat/internal/term"
)

// successField marks an INFO entry that should render as SUCCESS.
const successField = "success"

const timeLayout = "2006-01-02 15:04:05"

// Logger provides leveled, optionally colored logging with optional file sink.
type Logger struct {
	log  *logrus.Logger
	file *os.File
}

// NewLogger configures terminal colors from cfg and optionally opens
// cfg.LogFile for appending. Call Close when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	color := term.Configure(cfg.ColorMode)

	var file *os.File
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
			return nil, errors.Wrap(err, "creating log directory")
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, errors.Wrap(err, "opening log file")
		}
		file = f
	}

	var sink io.Writer
	if file != nil {
		sink = file
	}
	l := New(cfg.Verbose, color, os.Stdout, os.Stderr, sink)
	l.file = file
	return l, nil
}

// New builds a Logger over explicit writers. file may be nil.
func New(verbose, color bool, stdout, stderr, file io.Writer) *Logger {
	lg := logrus.New()
	lg.SetOutput(io.Discard)
	lg.SetFormatter(&lineFormatter{})
	lg.SetLevel(logrus.InfoLevel)
	if verbose {
		lg.SetLevel(logrus.DebugLevel)
	}
	lg.AddHook(&writerHook{
		stdout:  stdout,
		stderr:  stderr,
		file:    file,
		console: &lineFormatter{color: color},
		plain:   &lineFormatter{},
	})
	return &Logger{log: lg}
}

// Discard returns a Logger that drops everything. Useful in tests.
func Discard() *Logger {
	return New(false, false, io.Discard, io.Discard, nil)
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.log.Infof(format, args...)
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.log.WithField(successField, true).Infof(format, args...)
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log.Warnf(format, args...)
}

// Error logs at ERROR level (red), to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log.Errorf(format, args...)
}

// Debug logs at DEBUG level (cyan) only when the logger is verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log.Debugf(format, args...)
}

// Verbose reports whether Debug output is enabled.
func (l *Logger) Verbose() bool {
	return l.log.IsLevelEnabled(logrus.DebugLevel)
}

// writerHook routes formatted entries to the console streams and the file.
type writerHook struct {
	mu      sync.Mutex
	stdout  io.Writer
	stderr  io.Writer
	file    io.Writer
	console logrus.Formatter
	plain   logrus.Formatter
}

func (h *writerHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *writerHook) Fire(entry *logrus.Entry) error {
	line, err := h.console.Format(entry)
	if err != nil {
		return err
	}
	out := h.stdout
	if entry.Level <= logrus.ErrorLevel {
		out = h.stderr
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, err := out.Write(line); err != nil {
		return err
	}
	if h.file == nil {
		return nil
	}
	plain, err := h.plain.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.file.Write(plain)
	return err
}

// lineFormatter renders "<time> [LEVEL] message".
type lineFormatter struct {
	color bool
}

func (f *lineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	label, color := levelStyle(entry)
	var b bytes.Buffer
	b.WriteString(entry.Time.Format(timeLayout))
	b.WriteByte(' ')
	if f.color && color != "" {
		fmt.Fprintf(&b, "%s[%s]%s", color, label, term.NC)
	} else {
		fmt.Fprintf(&b, "[%s]", label)
	}
	b.WriteByte(' ')
	b.WriteString(entry.Message)
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func levelStyle(entry *logrus.Entry) (string, string) {
	switch entry.Level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return "ERROR", term.Red
	case logrus.WarnLevel:
		return "WARN", term.Yellow
	case logrus.DebugLevel, logrus.TraceLevel:
		return "DEBUG", term.Cyan
	}
	if ok, _ := entry.Data[successField].(bool); ok {
		return "SUCCESS", term.Green
	}
	return "INFO", term.Blue
}
