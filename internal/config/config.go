package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"studyflow/internal/models"
)

type Config struct {
	Paths      PathsConfig      `yaml:"paths"`
	Segmenter  SegmenterConfig  `yaml:"segmenter"`
	Generation GenerationConfig `yaml:"generation"`
	Export     ExportConfig     `yaml:"export"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type PathsConfig struct {
	Input     string `yaml:"input"`
	Output    string `yaml:"output"`
	StateFile string `yaml:"state_file"`
}

type SegmenterConfig struct {
	TargetSize int `yaml:"target_size"`
	Overlap    int `yaml:"overlap"`
}

type GenerationConfig struct {
	Provider         string   `yaml:"provider"`
	Model            string   `yaml:"model"`
	APIKeys          []string `yaml:"api_keys"`
	BaseURL          string   `yaml:"base_url"`
	RateLimitMs      int      `yaml:"rate_limit_ms"`
	TokenBudget      int      `yaml:"token_budget"`
	InputPricePer1K  float64  `yaml:"input_price_per_1k"`
	OutputPricePer1K float64  `yaml:"output_price_per_1k"`
}

type ExportConfig struct {
	Docx bool `yaml:"docx"`
	HTML bool `yaml:"html"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a YAML config file, validates it and fills defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.Paths.StateFile == "" {
		c.Paths.StateFile = "state.json"
	}
	if c.Segmenter.TargetSize == 0 {
		c.Segmenter.TargetSize = 800
	}
	if c.Segmenter.Overlap == 0 {
		c.Segmenter.Overlap = 80
	}
	if c.Segmenter.TargetSize < 0 || c.Segmenter.Overlap < 0 {
		return &models.ValidationError{Field: "segmenter", Reason: "target_size and overlap must be positive"}
	}
	if c.Segmenter.Overlap >= c.Segmenter.TargetSize {
		return &models.ValidationError{
			Field:  "segmenter.overlap",
			Reason: fmt.Sprintf("overlap (%d) must be smaller than target_size (%d)", c.Segmenter.Overlap, c.Segmenter.TargetSize),
		}
	}

	if c.Generation.Provider == "" {
		c.Generation.Provider = "gemini"
	}
	switch c.Generation.Provider {
	case "gemini", "openai":
	default:
		return &models.ValidationError{Field: "generation.provider", Reason: "must be gemini or openai"}
	}
	if c.Generation.Model == "" {
		switch c.Generation.Provider {
		case "gemini":
			c.Generation.Model = "gemini-2.5-flash"
		case "openai":
			c.Generation.Model = "gpt-4o-mini"
		}
	}
	if c.Generation.RateLimitMs == 0 {
		c.Generation.RateLimitMs = 1000
	}
	if c.Generation.TokenBudget == 0 {
		c.Generation.TokenBudget = 6000
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
