package gateways

import (
	"context"
	"fmt"
	"sort"

	"github.com/ochairo/stackcheck/internal/domain/entities"
	"github.com/ochairo/stackcheck/internal/domain/interfaces"
)

// phpRelease is the php.net release index record format
type phpRelease struct {
	Version           string   `json:"version"`
	SupportedVersions []string `json:"supported_versions"`
}

// phpBuild is the windows.php.net builds index record format. The record also
// carries one object per build flavour, which we ignore.
type phpBuild struct {
	Version string `json:"version"`
}

// PHPSource reads the php.net release index and the Windows builds index
type PHPSource struct {
	fetcher     *HTTPFetcher
	releasesURL string
	windowsURL  string
	logger      interfaces.Logger
}

// NewPHPSource creates a source for the two PHP indexes
func NewPHPSource(fetcher *HTTPFetcher, releasesURL, windowsURL string, logger interfaces.Logger) *PHPSource {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &PHPSource{
		fetcher:     fetcher,
		releasesURL: releasesURL,
		windowsURL:  windowsURL,
		logger:      logger,
	}
}

// LatestSupportedVersion returns the newest release whose branch is listed as
// supported anywhere in the index, or "" when there is none
func (s *PHPSource) LatestSupportedVersion(ctx context.Context) (string, error) {
	var raw map[string]phpRelease
	if err := s.fetcher.GetJSON(ctx, s.releasesURL, &raw); err != nil {
		return "", fmt.Errorf("php release index: %w", err)
	}

	releases := make(map[string]entities.PHPRelease, len(raw))
	for id, r := range raw {
		releases[id] = entities.PHPRelease{
			Version:           r.Version,
			SupportedVersions: r.SupportedVersions,
		}
	}

	latest, err := LatestSupported(releases)
	if err != nil {
		return "", fmt.Errorf("php release index: %w", err)
	}

	if latest == "" {
		s.logger.Warn("no supported php release found", interfaces.F("url", s.releasesURL))
	} else {
		s.logger.Debug("latest supported php release", interfaces.F("version", latest))
	}

	return latest, nil
}

// LatestSupported filters every published version down to supported branches
// and returns the highest. Records are visited in release id order so equal
// versions resolve the same way on every call.
func LatestSupported(releases map[string]entities.PHPRelease) (string, error) {
	ids := make([]string, 0, len(releases))
	for id := range releases {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	supported := make(map[string]struct{})
	var versions []string

	for _, id := range ids {
		r := releases[id]
		if r.Version != "" {
			versions = append(versions, r.Version)
		}
		for _, branch := range r.SupportedVersions {
			supported[branch] = struct{}{}
		}
	}

	filtered := make([]string, 0, len(versions))
	for _, v := range versions {
		if _, ok := supported[entities.TrimLastComponent(v)]; ok {
			filtered = append(filtered, v)
		}
	}

	return entities.MaxVersion(filtered)
}

// LatestForBranch returns the newest Windows build on the detected version's
// major.minor branch. An untracked branch yields "" rather than an error.
func (s *PHPSource) LatestForBranch(ctx context.Context, detected string) (string, error) {
	if detected == "" {
		return "", nil
	}

	v, err := entities.ParseVersion(detected)
	if err != nil {
		return "", fmt.Errorf("detected php version: %w", err)
	}
	branch := v.Branch()

	var raw map[string]phpBuild
	if err := s.fetcher.GetJSON(ctx, s.windowsURL, &raw); err != nil {
		return "", fmt.Errorf("php windows builds index: %w", err)
	}

	builds := make(map[string]entities.PHPBuild, len(raw))
	for b, r := range raw {
		builds[b] = entities.PHPBuild{Version: r.Version}
	}

	latest, ok := LookupBranch(builds, branch)
	if !ok {
		s.logger.Warn("php branch not tracked by windows builds index",
			interfaces.F("branch", branch),
			interfaces.F("url", s.windowsURL))
		return "", nil
	}

	s.logger.Debug("latest php build for branch",
		interfaces.F("branch", branch),
		interfaces.F("version", latest))
	return latest, nil
}

// LookupBranch returns the build version for branch. ok is false when the
// branch is absent or its record has no version.
func LookupBranch(builds map[string]entities.PHPBuild, branch string) (version string, ok bool) {
	b, found := builds[branch]
	if !found || b.Version == "" {
		return "", false
	}
	return b.Version, true
}
