package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/hackmir/partsbot/core/config"
	coredatabase "github.com/hackmir/partsbot/core/database"
)

// BotConfig holds settings specific to the parts bot.
type BotConfig struct {
	// AdminContact is the public handle shown to users asking to reach the
	// administrator, e.g. "@partsbot_admin".
	AdminContact string `yaml:"admin_contact" envconfig:"BOT_ADMIN_CONTACT"`
}

// AdminPanelConfig configures the web admin panel.
type AdminPanelConfig struct {
	Listen string `yaml:"listen" envconfig:"ADMIN_PANEL_LISTEN"`
}

// Config aggregates core bot settings with application specific sections.
type Config struct {
	Core       coreconfig.Config   `yaml:",inline"`
	Database   coredatabase.Config `yaml:"database"`
	Bot        BotConfig           `yaml:"bot"`
	AdminPanel AdminPanelConfig    `yaml:"admin_panel"`
}

// CoreConfig exposes the embedded core configuration for the shared runner.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Core
}

// LoadConfig reads configuration from a YAML file and environment variables.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if cfg.Core.Telegram.AdminID == 0 {
		return nil, fmt.Errorf("telegram.admin_id is required")
	}
	if strings.TrimSpace(cfg.Bot.AdminContact) == "" {
		return nil, fmt.Errorf("bot.admin_contact is required")
	}
	if strings.TrimSpace(cfg.AdminPanel.Listen) == "" {
		cfg.AdminPanel.Listen = ":8080"
	}
	return &cfg, nil
}
