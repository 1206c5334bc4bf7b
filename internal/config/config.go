package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/readinglist/internal/books"
)

// Config holds what the client needs to reach the books API and where it logs.
type Config struct {
	APIURL  string
	Timeout time.Duration
	LogFile string
}

const (
	defaultConfigPath = "~/.config/readinglist/config.toml"
	defaultLogFile    = "~/.local/state/readinglist/readinglist.log"
	defaultAPIURL     = books.DefaultAPIURL
	defaultTimeout    = 5 * time.Second

	envAPIURL  = "READINGLIST_API_URL"
	envTimeout = "READINGLIST_TIMEOUT"
	envLogFile = "READINGLIST_LOG_FILE"
)

// dotenvFiles are read from the working directory before the environment is
// consulted. Earlier files win because godotenv never overwrites a variable.
var dotenvFiles = []string{".env.local", ".env"}

// Load reads the config file at path (or the default location), then applies
// .env files and READINGLIST_* environment overrides. A missing file yields
// the defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}
	if err := loadDotenv(dotenvFiles...); err != nil {
		return Config{}, err
	}

	cfg := Config{APIURL: defaultAPIURL, Timeout: defaultTimeout, LogFile: mustExpand(defaultLogFile)}

	var raw struct {
		APIURL  string `toml:"api_url"`
		Timeout string `toml:"timeout"`
		LogFile string `toml:"log_file"`
	}
	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if v, ok := os.LookupEnv(envAPIURL); ok {
		raw.APIURL = v
	}
	if v, ok := os.LookupEnv(envTimeout); ok {
		raw.Timeout = v
	}
	if v, ok := os.LookupEnv(envLogFile); ok {
		raw.LogFile = v
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.Timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout %q: %w", v, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("parse timeout %q: must be positive", v)
		}
		cfg.Timeout = d
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	return cfg, nil
}

// LogDir returns the directory holding the log file.
func (c Config) LogDir() string {
	if strings.TrimSpace(c.LogFile) == "" {
		return filepath.Dir(mustExpand(defaultLogFile))
	}
	return filepath.Dir(c.LogFile)
}

func loadDotenv(files ...string) error {
	for _, name := range files {
		if err := godotenv.Load(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
