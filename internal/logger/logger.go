package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"emoji-gallery/internal/config"
	"emoji-gallery/internal/platform/paths"
)

type LoggerService interface {
	Info(msg string)
	Error(msg string, err error)
	Warn(msg string)
	Success(msg string)
	Debug(msg string)
	Close() error
}

type service struct {
	logger *log.Logger
	file   *os.File
	debug  bool
}

// New logs to stderr, and additionally to a file when cfg.LogToFile is set.
func New(cfg config.Config) (LoggerService, error) {
	if !cfg.LogToFile {
		return &service{
			logger: log.New(os.Stderr, "", log.LstdFlags),
			debug:  cfg.Debug,
		}, nil
	}

	logPath := strings.TrimSpace(cfg.LogFile)
	if logPath == "" {
		var err error
		logPath, err = paths.LoggerFilePath()
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}

	var out io.Writer = f
	if cfg.Debug {
		out = io.MultiWriter(os.Stderr, f)
	}

	return &service{
		logger: log.New(out, "", log.LstdFlags),
		file:   f,
		debug:  cfg.Debug,
	}, nil
}

func NewStderr() LoggerService {
	return &service{
		logger: log.New(os.Stderr, "", log.LstdFlags),
	}
}

// NewWriter is used by tests to capture output.
func NewWriter(w io.Writer, debug bool) LoggerService {
	return &service{
		logger: log.New(w, "", 0),
		debug:  debug,
	}
}

func Discard() LoggerService {
	return NewWriter(io.Discard, false)
}

func (s *service) Info(msg string) {
	s.write("INFO", msg)
}

func (s *service) Error(msg string, err error) {
	msg = strings.TrimSpace(msg)
	if err != nil {
		if msg == "" {
			msg = err.Error()
		} else {
			msg = msg + ": " + err.Error()
		}
	}
	s.write("ERROR", msg)
}

func (s *service) Warn(msg string) {
	s.write("WARN", msg)
}

func (s *service) Success(msg string) {
	s.write("OK", msg)
}

func (s *service) Debug(msg string) {
	if !s.debug {
		return
	}
	s.write("DEBUG", msg)
}

func (s *service) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

func (s *service) write(level, msg string) {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return
	}
	s.logger.Printf("[%s] %s", level, msg)
}
