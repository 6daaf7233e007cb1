package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables, each overriding the matching file setting.
const (
	EnvAddr        = "STATEMENT_LENS_ADDR"
	EnvMaxUploadMB = "STATEMENT_LENS_MAX_UPLOAD_MB"
	EnvLogLevel    = "STATEMENT_LENS_LOG_LEVEL"
	EnvLogFormat   = "STATEMENT_LENS_LOG_FORMAT"
	EnvStaticDir   = "STATEMENT_LENS_STATIC_DIR"
	EnvOCR         = "STATEMENT_LENS_OCR"
)

// Config holds runtime settings for the CLI and the HTTP server.
type Config struct {
	Addr        string `yaml:"addr"`
	MaxUploadMB int    `yaml:"max_upload_mb"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	// StaticDir, when set, is served as a single-page frontend.
	StaticDir string `yaml:"static_dir"`
	// OCR enables the tesseract fallback for scanned PDFs.
	OCR bool `yaml:"ocr"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Addr:        ":8080",
		MaxUploadMB: 32,
		LogLevel:    "info",
		LogFormat:   "console",
	}
}

// Load builds the configuration in layers: defaults, then the YAML file at
// path (skipped when path is empty), then dotenv files, then the process
// environment. envFiles defaults to ".env"; missing dotenv files are ignored.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := getenv(EnvAddr); v != "" {
		c.Addr = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		c.LogFormat = v
	}
	if v := getenv(EnvStaticDir); v != "" {
		c.StaticDir = v
	}
	if v := getenv(EnvMaxUploadMB); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxUploadMB, err)
		}
		c.MaxUploadMB = n
	}
	if v := getenv(EnvOCR); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvOCR, err)
		}
		c.OCR = b
	}
	return nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("config: addr must not be empty")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("config: max upload must be positive, got %d MB", c.MaxUploadMB)
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	return nil
}

// MaxUploadBytes is the request body limit in bytes.
func (c *Config) MaxUploadBytes() int {
	return c.MaxUploadMB * 1024 * 1024
}

func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
