package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIBase   = "http://localhost:5000/api"
	BackendFile      = "file"
	BackendSQLite    = "sqlite"
	configFileName   = "config.yaml"
	sessionFileName  = "session.json"
	databaseFileName = "learnobs.db"
	logFileName      = "learnobs.log"
)

type Config struct {
	APIBase        string `yaml:"api_base"`
	StateDir       string `yaml:"-"`
	SessionBackend string `yaml:"session_backend"`
	LogLevel       string `yaml:"log_level"`
	Environment    string `yaml:"environment"`
	LogToStderr    bool   `yaml:"log_stderr"`
}

// Overrides come from command-line flags and win over every other source.
type Overrides struct {
	APIBase     string
	StateDir    string
	LogToStderr bool
}

// Load reads .env (if present), then <state dir>/config.yaml (if present),
// then environment variables, then flag overrides.
func Load(o Overrides) (Config, error) {
	// godotenv never overrides variables that are already set.
	_ = godotenv.Load()

	stateDir := firstNonEmpty(o.StateDir, os.Getenv("LEARNOBS_STATE_DIR"))
	if stateDir == "" {
		dir, err := defaultStateDir()
		if err != nil {
			return Config{}, err
		}
		stateDir = dir
	}

	cfg := Config{
		APIBase:        DefaultAPIBase,
		SessionBackend: BackendFile,
		LogLevel:       "info",
		Environment:    "development",
	}
	if err := readFile(filepath.Join(stateDir, configFileName), &cfg); err != nil {
		return Config{}, err
	}
	cfg.StateDir = stateDir

	if v := os.Getenv("LEARNOBS_API_BASE"); v != "" {
		cfg.APIBase = v
	}
	if v := os.Getenv("LEARNOBS_SESSION_BACKEND"); v != "" {
		cfg.SessionBackend = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		cfg.Environment = v
	}
	if v := strings.TrimSpace(os.Getenv("LEARNOBS_LOG_STDERR")); v == "1" || strings.EqualFold(v, "true") {
		cfg.LogToStderr = true
	}

	if o.APIBase != "" {
		cfg.APIBase = o.APIBase
	}
	if o.LogToStderr {
		cfg.LogToStderr = true
	}

	cfg.APIBase = strings.TrimRight(strings.TrimSpace(cfg.APIBase), "/")
	cfg.SessionBackend = strings.ToLower(strings.TrimSpace(cfg.SessionBackend))
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.Environment = strings.ToLower(cfg.Environment)
	return cfg, cfg.validate()
}

func (c Config) SessionPath() string  { return filepath.Join(c.StateDir, sessionFileName) }
func (c Config) DatabasePath() string { return filepath.Join(c.StateDir, databaseFileName) }
func (c Config) LogPath() string      { return filepath.Join(c.StateDir, logFileName) }

func (c Config) validate() error {
	if c.APIBase == "" {
		return fmt.Errorf("api base url is required")
	}
	switch c.SessionBackend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unsupported session backend %q", c.SessionBackend)
	}
	return nil
}

func readFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return nil
}

func defaultStateDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "learnobs"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".learnobs"), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
