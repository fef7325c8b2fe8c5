package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

type Config struct {
	Credentials        string `yaml:"credentials"`
	Token              string `yaml:"token"`
	Query              string `yaml:"query"`
	MaxResults         int64  `yaml:"max_results"`
	PublisherBlacklist string `yaml:"publisher_blacklist"`
	TopicBlacklist     string `yaml:"topic_blacklist"`

	// directory holding the loaded config file; relative paths
	// resolve against it
	dir string
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "scholar-digest", "config.yaml")
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.dir, p)
}

func (c *Config) CredentialsPath() string { return c.resolve(c.Credentials) }

func (c *Config) TokenPath() string { return c.resolve(c.Token) }

func (c *Config) PublisherBlacklistPath() string { return c.resolve(c.PublisherBlacklist) }

func (c *Config) TopicBlacklistPath() string { return c.resolve(c.TopicBlacklist) }

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}
	cfg.dir = filepath.Dir(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return cfg, nil
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Keys absent from the file keep their embedded defaults.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func writeDefaults(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	// Starter blacklists, so the default config points at files that exist.
	starters := map[string]string{
		"publishers.txt": "# one publisher URL substring per line\n",
		"topics.txt":     "# one paper title substring per line, lowercase\n",
	}
	for name, header := range starters {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			continue
		}
		if err := os.WriteFile(p, []byte(header), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func validate(cfg *Config) error {
	if cfg.Credentials == "" {
		return fmt.Errorf("credentials path is required")
	}
	if cfg.Token == "" {
		return fmt.Errorf("token path is required")
	}
	if cfg.Query == "" {
		return fmt.Errorf("query is required")
	}
	if cfg.MaxResults <= 0 {
		return fmt.Errorf("max_results must be positive, got %d", cfg.MaxResults)
	}
	if cfg.PublisherBlacklist == "" {
		return fmt.Errorf("publisher_blacklist path is required")
	}
	if cfg.TopicBlacklist == "" {
		return fmt.Errorf("topic_blacklist path is required")
	}
	return nil
}
