package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"emoji-gallery/internal/platform/paths"
)

const (
	EnvEmojiDir  = "EMOJI_DIR"
	EnvAPIListen = "EMOJI_API_LISTEN"
	EnvDebug     = "EMOJI_DEBUG"
)

var (
	ErrNotFound = errors.New("config not found")
	ErrExists   = errors.New("config already exists")
)

// DefaultPath prefers a per-user config file when one exists.
func DefaultPath() (string, error) {
	if p, err := paths.UserConfigFilePath(); err == nil {
		if _, statErr := os.Stat(p); statErr == nil {
			return p, nil
		}
	}
	return paths.ConfigFilePath()
}

func Load(p string) (Config, error) {
	if p == "" {
		var err error
		p, err = DefaultPath()
		if err != nil {
			return Config{}, err
		}
	}

	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, ErrNotFound
		}
		return Config{}, err
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	return cfg.WithDefaults(), nil
}

func LoadOrDefault(p string) (Config, error) {
	cfg, err := Load(p)
	if err == nil {
		return cfg, nil
	}

	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}

	return Config{}, err
}

const fileHeader = "# emoji-gallery configuration. EMOJI_DIR and EMOJI_API_LISTEN override these keys.\n"

// Save writes cfg to p through a temp file in the same directory, then
// renames it into place. An existing file is kept unless overwrite is set.
func Save(p string, cfg Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(p); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, p)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg.WithDefaults()); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}

	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".config-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p)
}

// LoadDotEnv reads KEY=VALUE files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// ApplyEnv overrides cfg with EMOJI_* variables found through lookup.
func ApplyEnv(cfg Config, lookup func(string) (string, bool)) Config {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvEmojiDir); ok && strings.TrimSpace(v) != "" {
		cfg.EmojiDir = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvAPIListen); ok && strings.TrimSpace(v) != "" {
		cfg.APIListen = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvDebug); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.Debug = b
		}
	}
	return cfg
}
