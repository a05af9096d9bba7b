package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// WebhookURLEnv is consulted when webhook.url is left empty.
const WebhookURLEnv = "CHATBOT_WEBHOOK_URL"

// ErrNoWebhookURL is returned by RequireWebhook when no webhook address is set.
var ErrNoWebhookURL = errors.New("webhook.url is required (or set " + WebhookURLEnv + ")")

// Config is the top-level chatbot configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Webhook WebhookConfig `yaml:"webhook"`
	Client  ClientConfig  `yaml:"client"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// WebhookConfig holds the external webhook settings.
type WebhookConfig struct {
	URL string `yaml:"url"`
	// Timeout of zero means no explicit timeout.
	Timeout time.Duration `yaml:"timeout"`
}

// ClientConfig holds settings for the chat client.
type ClientConfig struct {
	GatewayURL        string `yaml:"gateway_url"`
	TranscriptEntries int    `yaml:"transcript_entries"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// defaults applies sane defaults to zero-valued fields.
func (c *Config) defaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Client.GatewayURL == "" {
		c.Client.GatewayURL = "http://localhost:8080"
	}
	if c.Client.TranscriptEntries == 0 {
		c.Client.TranscriptEntries = 500
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
}

// validate checks value constraints. The webhook address is checked
// separately by RequireWebhook since only the server needs it.
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Webhook.Timeout < 0 {
		return fmt.Errorf("webhook.timeout must be non-negative")
	}
	if c.Webhook.URL != "" {
		if err := checkHTTPURL(c.Webhook.URL); err != nil {
			return fmt.Errorf("webhook.url: %w", err)
		}
	}
	if err := checkHTTPURL(c.Client.GatewayURL); err != nil {
		return fmt.Errorf("client.gateway_url: %w", err)
	}
	if c.Client.TranscriptEntries < 0 {
		return fmt.Errorf("client.transcript_entries must be non-negative")
	}
	return nil
}

// expandEnv replaces ${VAR} references in address fields with environment
// variable values, then falls back to WebhookURLEnv for an empty webhook URL.
func (c *Config) expandEnv() {
	c.Webhook.URL = strings.TrimSpace(os.ExpandEnv(c.Webhook.URL))
	if c.Webhook.URL == "" {
		c.Webhook.URL = strings.TrimSpace(os.Getenv(WebhookURLEnv))
	}
	c.Client.GatewayURL = strings.TrimSpace(os.ExpandEnv(c.Client.GatewayURL))
}

// RequireWebhook reports ErrNoWebhookURL when the webhook address is unset.
func (c *Config) RequireWebhook() error {
	if c.Webhook.URL == "" {
		return ErrNoWebhookURL
	}
	return nil
}

// Load reads a YAML config file, applies defaults, expands env vars, and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return finish(&cfg)
}

// LoadOptional behaves like Load but returns the defaults when path does not exist.
func LoadOptional(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return finish(&Config{})
	}
	return Load(path)
}

func finish(cfg *Config) (*Config, error) {
	cfg.defaults()
	cfg.expandEnv()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func checkHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}
