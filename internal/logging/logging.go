// Package logging sets up the diagnostic file logger. User-facing output does
// not go through here; commands print to their own writers.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/xid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	// Dir is the log root; files go to Dir/<yyyy>/<mm>/<dd>/log-<hhmmss>-<run>.log.
	Dir string
	// Debug lowers the level to debug and tees to stderr.
	Debug bool
}

// Logger is a zap logger bound to one run of the tool.
type Logger struct {
	*zap.Logger
	RunID string
	Path  string

	file *os.File
}

// NewRunID returns a fresh sortable run identifier.
func NewRunID() string {
	return xid.New().String()
}

// New opens a log file for a new run.
func New(opts Options) (*Logger, error) {
	runID := NewRunID()
	path := filepath.Join(opts.Dir, fmt.Sprintf("%s-%s.log", time.Now().Format("2006/01/02/log-150405"), runID))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), level),
	}
	if opts.Debug {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), level))
	}

	zl := zap.New(zapcore.NewTee(cores...)).With(zap.String("run", runID))
	return &Logger{Logger: zl, RunID: runID, Path: path, file: f}, nil
}

// Nop returns a logger that discards everything. Used by tests and when the
// log directory cannot be created.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop(), RunID: NewRunID()}
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	_ = l.Logger.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
