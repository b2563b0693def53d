package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv  = "NEWSROOM_CONFIG"
	dataDirEnv     = "NEWSROOM_DATA_DIR"
	adminTokenEnv  = "ADMIN_TOKEN"
	githubTokenEnv = "GITHUB_TOKEN"
	githubRepoEnv  = "GITHUB_REPO"
	geminiKeyEnv   = "GEMINI_API_KEY"
)

// Store modes supported by the document store.
const (
	StoreModeLocal  = "local"
	StoreModeGitHub = "github"
)

// Config holds high-level settings required across the application.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Collector CollectorConfig `yaml:"collector"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig describes the HTTP shell.
type ServerConfig struct {
	Addr       string `yaml:"addr"`
	AdminToken string `yaml:"adminToken"`
}

// StoreConfig selects and parameterizes the document store backend.
type StoreConfig struct {
	Mode    string `yaml:"mode"`
	DataDir string `yaml:"dataDir"`
	Repo    string `yaml:"repo"`
	Branch  string `yaml:"branch"`
	Path    string `yaml:"path"`
	Token   string `yaml:"token"`
	APIURL  string `yaml:"apiUrl"`
}

// CollectorConfig tunes feed fetching.
type CollectorConfig struct {
	FetchDelay string `yaml:"fetchDelay"`
}

// Delay parses the inter-feed delay, falling back to the default on bad input.
func (c CollectorConfig) Delay() time.Duration {
	if d, err := time.ParseDuration(c.FetchDelay); err == nil && d > 0 {
		return d
	}
	return 500 * time.Millisecond
}

// GeminiConfig defines how to contact the Gemini API.
type GeminiConfig struct {
	Endpoint string   `yaml:"endpoint"`
	APIKey   string   `yaml:"apiKey"`
	Models   []string `yaml:"models"`
	Language string   `yaml:"language"`
}

// TelegramConfig wires the optional digest notification channel.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// SchedulerConfig enables unattended daily pipeline runs.
type SchedulerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Interval string `yaml:"interval"`
}

// Every parses the run cadence, falling back to daily on bad input.
func (s SchedulerConfig) Every() time.Duration {
	if d, err := time.ParseDuration(s.Interval); err == nil && d > 0 {
		return d
	}
	return 24 * time.Hour
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(dataDirEnv); v != "" {
		c.Store.DataDir = v
	}

	if v := os.Getenv(githubTokenEnv); v != "" {
		c.Store.Token = v
	}

	if v := os.Getenv(githubRepoEnv); v != "" {
		c.Store.Repo = v
		c.Store.Mode = StoreModeGitHub
	}

	if v := os.Getenv(geminiKeyEnv); v != "" {
		c.Gemini.APIKey = v
	}

	if v := os.Getenv(adminTokenEnv); v != "" {
		c.Server.AdminToken = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}
	if override.Server.AdminToken != "" {
		base.Server.AdminToken = override.Server.AdminToken
	}

	if override.Store.Mode != "" {
		base.Store.Mode = override.Store.Mode
	}
	if override.Store.DataDir != "" {
		base.Store.DataDir = override.Store.DataDir
	}
	if override.Store.Repo != "" {
		base.Store.Repo = override.Store.Repo
	}
	if override.Store.Branch != "" {
		base.Store.Branch = override.Store.Branch
	}
	if override.Store.Path != "" {
		base.Store.Path = override.Store.Path
	}
	if override.Store.Token != "" {
		base.Store.Token = override.Store.Token
	}
	if override.Store.APIURL != "" {
		base.Store.APIURL = override.Store.APIURL
	}

	if override.Collector.FetchDelay != "" {
		base.Collector.FetchDelay = override.Collector.FetchDelay
	}

	if override.Gemini.Endpoint != "" {
		base.Gemini.Endpoint = override.Gemini.Endpoint
	}
	if override.Gemini.APIKey != "" {
		base.Gemini.APIKey = override.Gemini.APIKey
	}
	if len(override.Gemini.Models) > 0 {
		base.Gemini.Models = override.Gemini.Models
	}
	if override.Gemini.Language != "" {
		base.Gemini.Language = override.Gemini.Language
	}

	if override.Telegram.BotToken != "" {
		base.Telegram.BotToken = override.Telegram.BotToken
	}
	if override.Telegram.ChatID != "" {
		base.Telegram.ChatID = override.Telegram.ChatID
	}

	if override.Scheduler.Enabled {
		base.Scheduler.Enabled = true
	}
	if override.Scheduler.Interval != "" {
		base.Scheduler.Interval = override.Scheduler.Interval
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Store: StoreConfig{
			Mode:   StoreModeLocal,
			Branch: "main",
			Path:   "data",
			APIURL: "https://api.github.com",
		},
		Collector: CollectorConfig{FetchDelay: "500ms"},
		Gemini: GeminiConfig{
			Endpoint: "https://generativelanguage.googleapis.com/v1beta",
			Models: []string{
				"gemini-2.0-flash",
				"gemini-2.0-flash-exp",
				"gemini-1.5-flash",
			},
			Language: "English",
		},
		Scheduler: SchedulerConfig{Interval: "24h"},
		Logging:   LoggingConfig{Level: "info"},
	}
}
