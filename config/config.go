// Package config loads the audit credentials from the user's
// configuration file with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variable overrides. Each takes precedence over the value in
// the configuration file. PathEnv overrides the configuration file
// location itself.
const (
	PathEnv          = "VAST_CONFIG"
	canvasAPIURLEnv  = "CANVAS_API_URL"
	canvasAPIKeyEnv  = "CANVAS_API_KEY"
	youtubeAPIKeyEnv = "YOUTUBE_API_KEY"
)

// Config holds all configuration for the application.
type Config struct {
	CanvasAPIURL  string `yaml:"canvas_api_url"`
	CanvasAPIKey  string `yaml:"canvas_api_key"`
	YouTubeAPIKey string `yaml:"youtube_api_key"`
}

// Load reads configuration with the following priority:
// environment variables > config file. A missing config file is not an
// error as long as the environment provides every value; Validate
// reports what is missing.
func Load() (*Config, error) {
	config := &Config{}
	if err := loadConfigFile(config); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if v := os.Getenv(canvasAPIURLEnv); v != "" {
		config.CanvasAPIURL = v
	}
	if v := os.Getenv(canvasAPIKeyEnv); v != "" {
		config.CanvasAPIKey = v
	}
	if v := os.Getenv(youtubeAPIKeyEnv); v != "" {
		config.YouTubeAPIKey = v
	}

	return config, nil
}

// Validate reports every missing credential at once.
func (c *Config) Validate() error {
	var missing []string
	if c.CanvasAPIURL == "" {
		missing = append(missing, "canvas_api_url")
	}
	if c.CanvasAPIKey == "" {
		missing = append(missing, "canvas_api_key")
	}
	if c.YouTubeAPIKey == "" {
		missing = append(missing, "youtube_api_key")
	}
	if len(missing) == 0 {
		return nil
	}

	path, err := Path()
	if err != nil {
		path = "the configuration file"
	}
	return fmt.Errorf("missing configuration: %s. Run 'vast init' and fill in the values in %s, or set the corresponding environment variables", strings.Join(missing, ", "), path)
}

// Init creates a new configuration file with a commented example.
func Init() (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("configuration file already exists: %s", path)
	}

	yamlContent := `# vast configuration file
#
# canvas_api_url is the base URL of your Canvas instance,
# e.g. https://canvas.example.edu
# canvas_api_key is a Canvas access token (Account > Settings >
# New Access Token).
# youtube_api_key is a YouTube Data API v3 key.

canvas_api_url: ""
canvas_api_key: ""
youtube_api_key: ""
`

	if err := os.WriteFile(path, []byte(yamlContent), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}

// Path returns the configuration file location, honoring the PathEnv
// override.
func Path() (string, error) {
	if p := os.Getenv(PathEnv); p != "" {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".vast", "config.yaml"), nil
}

func loadConfigFile(config *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}
