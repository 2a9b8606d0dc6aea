package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the tool's own configuration. The content files themselves are
// untrusted input; this only says where to find them.
type Config struct {
	Content struct {
		Root       string `yaml:"root"`
		Resources  string `yaml:"resources"`
		Blueprints string `yaml:"blueprints"`
		TechTree   string `yaml:"tech_tree"`
		Settings   string `yaml:"settings"`
	} `yaml:"content"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load reads the optional YAML config file and applies defaults and
// environment overrides. A missing config file is not an error; a present
// but malformed one is.
func Load(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	var cfg Config

	// 2. Load YAML config (optional)
	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, err
		}
	case os.IsNotExist(err):
		// defaults only
	default:
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if root := os.Getenv("STARLINT_ROOT"); root != "" {
		cfg.Content.Root = root
	}
	if level := os.Getenv("STARLINT_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Content.Root == "" {
		c.Content.Root = "."
	}
	if c.Content.Resources == "" {
		c.Content.Resources = "data/blueprints/resources.json"
	}
	if c.Content.Blueprints == "" {
		c.Content.Blueprints = "data/blueprints/starting_blueprints.json"
	}
	if c.Content.TechTree == "" {
		c.Content.TechTree = "data/tech/tech_tree.json"
	}
	if c.Content.Settings == "" {
		c.Content.Settings = "data/settings.json"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
