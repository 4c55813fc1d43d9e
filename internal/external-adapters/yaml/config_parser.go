// Package yaml provides YAML-based configuration parsing.
package yaml

import (
	"fmt"
	"os"
	"time"

	"github.com/ochairo/stackcheck/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlConfig represents the raw YAML structure
type yamlConfig struct {
	Endpoints yamlEndpoints `yaml:"endpoints"`
	HTTP      yamlHTTP      `yaml:"http"`
}

type yamlEndpoints struct {
	ApacheIndex      string `yaml:"apache_index"`
	PHPReleases      string `yaml:"php_releases"`
	PHPWindowsBuilds string `yaml:"php_windows_builds"`
}

type yamlHTTP struct {
	Timeout   string `yaml:"timeout"` // Go duration, e.g. "10s"
	Retries   *int   `yaml:"retries"`
	UserAgent string `yaml:"user_agent"`
}

// ConfigParser parses YAML configuration files
type ConfigParser struct{}

// NewConfigParser creates a new YAML parser
func NewConfigParser() *ConfigParser {
	return &ConfigParser{}
}

// ParseFile reads filePath and overlays it on the default configuration
func (p *ConfigParser) ParseFile(filePath string) (entities.Config, error) {
	//nolint:gosec // G304: filePath is supplied by the operator on the command line
	data, err := os.ReadFile(filePath)
	if err != nil {
		return entities.Config{}, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse overlays YAML bytes on the default configuration. Keys left unset
// keep their defaults.
func (p *ConfigParser) Parse(data []byte) (entities.Config, error) {
	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return entities.Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg := entities.DefaultConfig()
	applyEndpoints(&cfg.Endpoints, raw.Endpoints)
	if err := applyHTTP(&cfg.HTTP, raw.HTTP); err != nil {
		return entities.Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return entities.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func applyEndpoints(dst *entities.EndpointConfig, ye yamlEndpoints) {
	if ye.ApacheIndex != "" {
		dst.ApacheIndex = ye.ApacheIndex
	}
	if ye.PHPReleases != "" {
		dst.PHPReleases = ye.PHPReleases
	}
	if ye.PHPWindowsBuilds != "" {
		dst.PHPWindowsBuild = ye.PHPWindowsBuilds
	}
}

func applyHTTP(dst *entities.HTTPConfig, yh yamlHTTP) error {
	if yh.Timeout != "" {
		d, err := time.ParseDuration(yh.Timeout)
		if err != nil {
			return fmt.Errorf("invalid http.timeout %q: %w", yh.Timeout, err)
		}
		dst.Timeout = d
	}
	if yh.Retries != nil {
		dst.Retries = *yh.Retries
	}
	if yh.UserAgent != "" {
		dst.UserAgent = yh.UserAgent
	}
	return nil
}
