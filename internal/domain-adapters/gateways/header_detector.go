package gateways

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/ochairo/stackcheck/internal/domain/entities"
	"github.com/ochairo/stackcheck/internal/domain/interfaces"
)

var (
	apacheServerPattern = regexp.MustCompile(`Apache/([\d.]+)`)
	phpPoweredByPattern = regexp.MustCompile(`PHP/([\d.]+)`)
)

// HTTPHeaderDetector fetches a target and reads Server and X-Powered-By
type HTTPHeaderDetector struct {
	fetcher *HTTPFetcher
	logger  interfaces.Logger
}

// NewHTTPHeaderDetector creates a detector using fetcher
func NewHTTPHeaderDetector(fetcher *HTTPFetcher, logger interfaces.Logger) *HTTPHeaderDetector {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &HTTPHeaderDetector{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Detect GETs targetURL, following redirects, and extracts the versions its
// response headers disclose
func (d *HTTPHeaderDetector) Detect(ctx context.Context, targetURL string) (*entities.Detection, error) {
	if err := validateTargetURL(targetURL); err != nil {
		return nil, err
	}

	resp, err := d.fetcher.Get(ctx, targetURL)
	if err != nil {
		return nil, fmt.Errorf("target request failed: %w", err)
	}
	//nolint:errcheck // Defer close, body is never read
	defer resp.Body.Close()

	server := resp.Header.Get("Server")
	poweredBy := resp.Header.Get("X-Powered-By")
	apache, php := ExtractHeaderVersions(server, poweredBy)

	detection := &entities.Detection{
		URL:           resp.Request.URL.String(),
		StatusCode:    resp.StatusCode,
		ApacheVersion: apache,
		PHPVersion:    php,
		ServerHeader:  server,
		PoweredBy:     poweredBy,
	}

	d.logger.Debug("target headers",
		interfaces.F("url", detection.URL),
		interfaces.F("status", detection.StatusCode),
		interfaces.F("server", server),
		interfaces.F("x_powered_by", poweredBy))

	return detection, nil
}

// ExtractHeaderVersions returns the Apache and PHP versions disclosed by the
// given header values ("" when not disclosed)
func ExtractHeaderVersions(server, poweredBy string) (apache, php string) {
	return firstSubmatch(apacheServerPattern, server), firstSubmatch(phpPoweredByPattern, poweredBy)
}

func firstSubmatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

func validateTargetURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("target URL is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid target URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid target URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid target URL %q: missing host", raw)
	}
	return nil
}
