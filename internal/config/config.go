package config

import (
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Confluence ConfluenceConfig `yaml:"confluence"`
}

type ConfluenceConfig struct {
	BaseURL  string `yaml:"base_url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// Space is the default space for commands that take no --space flag.
	Space string `yaml:"space"`
	// SpaceIsKey treats Space (and --space values) as space keys, skipping
	// the name lookup.
	SpaceIsKey bool `yaml:"space_is_key"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(&c.Confluence,
		validation.Field(&c.Confluence.BaseURL,
			validation.Required.Error("confluence.base_url is required"),
			is.RequestURL.Error("confluence.base_url must be a valid URL")),
		validation.Field(&c.Confluence.Username,
			validation.Required.Error("confluence.username is required")),
		validation.Field(&c.Confluence.Password,
			validation.Required.Error("confluence.password is required")),
	)
}
