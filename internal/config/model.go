package config

import (
	"errors"
	"strings"
	"time"
)

const (
	DefaultAPIListen   = "127.0.0.1:3001"
	DefaultScanTimeout = 30 * time.Second
	DefaultChunkSize   = 32 << 10
)

var ErrEmojiDirRequired = errors.New("emojiDir is required")

type Config struct {
	EmojiDir       string        `yaml:"emojiDir"`
	APIListen      string        `yaml:"apiListen"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
	ScanTimeout    time.Duration `yaml:"scanTimeout"`
	ChunkSize      int           `yaml:"chunkSize"`
	Debug          bool          `yaml:"debug"`
	LogToFile      bool          `yaml:"logToFile"`
	LogFile        string        `yaml:"logFile"`
}

func Default() Config {
	return Config{
		EmojiDir:       "",
		APIListen:      DefaultAPIListen,
		AllowedOrigins: []string{"*"},
		ScanTimeout:    DefaultScanTimeout,
		ChunkSize:      DefaultChunkSize,
	}
}

// WithDefaults fills zero values left by a partial config file.
func (c Config) WithDefaults() Config {
	def := Default()
	if strings.TrimSpace(c.APIListen) == "" {
		c.APIListen = def.APIListen
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = def.AllowedOrigins
	}
	if c.ScanTimeout <= 0 {
		c.ScanTimeout = def.ScanTimeout
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = def.ChunkSize
	}
	return c
}

// Validate only checks presence of the emoji directory; whether it exists is
// decided when the root is opened.
func (c Config) Validate() error {
	if strings.TrimSpace(c.EmojiDir) == "" {
		return ErrEmojiDirRequired
	}
	return nil
}
