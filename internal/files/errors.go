package files

import (
	"errors"
	"fmt"
)

var (
	ErrRootNotConfigured = errors.New("emoji directory is not configured")
	ErrNotDirectory      = errors.New("not a directory")
	ErrNotRegular        = errors.New("not a regular file")
)

// ConfigError reports an unusable root directory.
type ConfigError struct {
	Dir string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Dir == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}
	return fmt.Sprintf("config: emoji directory %q: %v", e.Dir, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ScanError aborts a listing. Path is the entry that could not be read.
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan %q: %v", e.Path, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// InvalidPathError rejects a client-supplied path before it reaches the
// streamer.
type InvalidPathError struct {
	Path   string
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Path, e.Reason)
}

// NotFoundError means a contained path does not name an existing regular file.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("not found: %q", e.Path)
	}
	return fmt.Sprintf("not found: %q: %v", e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// StreamError is an I/O failure while sending a file. HeadersSent tells the
// caller whether an error response can still be written.
type StreamError struct {
	Path        string
	Err         error
	HeadersSent bool
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream %q: %v", e.Path, e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }
