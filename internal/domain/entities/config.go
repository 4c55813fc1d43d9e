package entities

import (
	"fmt"
	"time"
)

// Default upstream endpoints
const (
	DefaultApacheIndexURL     = "https://downloads.apache.org/httpd/"
	DefaultPHPReleasesURL     = "https://www.php.net/releases/index.php?json"
	DefaultPHPWindowsBuildURL = "https://windows.php.net/downloads/releases/releases.json"
	DefaultTimeout            = 10 * time.Second
	DefaultUserAgent          = "stackcheck/1.0"
)

// Config holds everything a check run needs besides the target URL
type Config struct {
	Endpoints EndpointConfig
	HTTP      HTTPConfig
}

// EndpointConfig lists the upstream release sources
type EndpointConfig struct {
	ApacheIndex     string // HTML listing scanned for httpd-X.Y.Z.tar.gz
	PHPReleases     string // php.net JSON release index
	PHPWindowsBuild string // windows.php.net JSON builds index
}

// HTTPConfig controls outgoing requests
type HTTPConfig struct {
	Timeout   time.Duration
	Retries   int // extra attempts on network errors and retryable statuses
	UserAgent string
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() Config {
	return Config{
		Endpoints: EndpointConfig{
			ApacheIndex:     DefaultApacheIndexURL,
			PHPReleases:     DefaultPHPReleasesURL,
			PHPWindowsBuild: DefaultPHPWindowsBuildURL,
		},
		HTTP: HTTPConfig{
			Timeout:   DefaultTimeout,
			Retries:   0,
			UserAgent: DefaultUserAgent,
		},
	}
}

// Validate checks that the configuration is usable
func (c Config) Validate() error {
	if c.Endpoints.ApacheIndex == "" {
		return fmt.Errorf("endpoints.apache_index must not be empty")
	}
	if c.Endpoints.PHPReleases == "" {
		return fmt.Errorf("endpoints.php_releases must not be empty")
	}
	if c.Endpoints.PHPWindowsBuild == "" {
		return fmt.Errorf("endpoints.php_windows_builds must not be empty")
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive, got %s", c.HTTP.Timeout)
	}
	if c.HTTP.Retries < 0 {
		return fmt.Errorf("http.retries must not be negative, got %d", c.HTTP.Retries)
	}
	return nil
}
