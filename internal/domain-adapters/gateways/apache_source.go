package gateways

import (
	"context"
	"fmt"
	"regexp"

	"github.com/ochairo/stackcheck/internal/domain/entities"
	"github.com/ochairo/stackcheck/internal/domain/interfaces"
)

var apacheTarballPattern = regexp.MustCompile(`httpd-(\d+\.\d+\.\d+)\.tar\.gz`)

// ApacheSource reads the Apache HTTPD download listing
type ApacheSource struct {
	fetcher  *HTTPFetcher
	indexURL string
	logger   interfaces.Logger
}

// NewApacheSource creates a source for the listing at indexURL
func NewApacheSource(fetcher *HTTPFetcher, indexURL string, logger interfaces.Logger) *ApacheSource {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &ApacheSource{
		fetcher:  fetcher,
		indexURL: indexURL,
		logger:   logger,
	}
}

// LatestVersion returns the highest httpd release tarball in the listing, or
// "" when none is listed
func (s *ApacheSource) LatestVersion(ctx context.Context) (string, error) {
	body, err := s.fetcher.GetBody(ctx, s.indexURL)
	if err != nil {
		return "", fmt.Errorf("apache index: %w", err)
	}

	latest, err := ExtractApacheLatest(string(body))
	if err != nil {
		return "", fmt.Errorf("apache index: %w", err)
	}

	if latest == "" {
		s.logger.Warn("no httpd release tarballs found", interfaces.F("url", s.indexURL))
	} else {
		s.logger.Debug("latest apache release", interfaces.F("version", latest))
	}

	return latest, nil
}

// ExtractApacheLatest finds every httpd-X.Y.Z.tar.gz in body and returns the
// highest version
func ExtractApacheLatest(body string) (string, error) {
	matches := apacheTarballPattern.FindAllStringSubmatch(body, -1)

	versions := make([]string, 0, len(matches))
	for _, m := range matches {
		versions = append(versions, m[1])
	}

	return entities.MaxVersion(versions)
}
