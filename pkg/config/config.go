package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the standalone (CLI) configuration.
type Config struct {
	Judge JudgeConfig `yaml:"judge"`
	Shodo ShodoConfig `yaml:"shodo"`
	Log   LogConfig   `yaml:"log"`
}

// JudgeConfig configures the LLM judge.
type JudgeConfig struct {
	BaseURL         string `yaml:"base_url"`
	APIKey          string `yaml:"api_key"`
	Model           string `yaml:"model"`
	Schema          string `yaml:"schema"`
	TargetHooks     int    `yaml:"target_hooks"`
	SuggestionLimit int    `yaml:"suggestion_limit"`
	QPS             int    `yaml:"qps"`
	RPM             int    `yaml:"rpm"`
}

// ShodoConfig configures the proofreading API.
type ShodoConfig struct {
	BaseURL        string `yaml:"base_url"`
	Token          string `yaml:"token"`
	TimeoutSec     int    `yaml:"timeout_sec"`
	MaxWaitMs      int    `yaml:"max_wait_ms"`
	PollIntervalMs int    `yaml:"poll_interval_ms"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads the config file and applies credential overrides from the
// environment, so secrets can stay out of the yaml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Judge.APIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.Judge.Model = v
	}
	if v := os.Getenv("SHODO_TOKEN"); v != "" {
		cfg.Shodo.Token = v
	}
	if v := os.Getenv("SHODO_API_URL"); v != "" {
		cfg.Shodo.BaseURL = v
	}

	return &cfg, nil
}
