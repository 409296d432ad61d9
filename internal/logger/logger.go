package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu     sync.Mutex
	logger *log.Logger
)

// Config holds logger configuration.
type Config struct {
	Debug bool
	Dir   string
}

// Init routes logs to a rotating file under cfg.Dir, mirrored to stderr when
// debugging. Stdout stays reserved for command output.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.Dir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "readingctl.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	var w io.Writer = fileWriter
	level := log.InfoLevel
	if cfg.Debug {
		w = io.MultiWriter(fileWriter, os.Stderr)
		level = log.DebugLevel
	}

	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})

	mu.Lock()
	logger = l
	mu.Unlock()
	return nil
}

// L returns the configured logger, or a quiet stderr fallback when Init has
// not run (tests, early startup failures).
func L() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})
	}
	return logger
}
