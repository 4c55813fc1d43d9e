// Package gateways defines interfaces for external service adapters.
package gateways

import (
	"context"

	"github.com/ochairo/stackcheck/internal/domain/entities"
)

// ApacheReleaseSource reports the newest Apache HTTP Server release
type ApacheReleaseSource interface {
	// LatestVersion returns "" when the index lists no release tarballs
	LatestVersion(ctx context.Context) (string, error)
}

// PHPReleaseSource reports PHP releases from the official indexes
type PHPReleaseSource interface {
	// LatestSupportedVersion returns the newest release on a supported branch, or ""
	LatestSupportedVersion(ctx context.Context) (string, error)

	// LatestForBranch returns the newest build on detected's major.minor branch.
	// It returns "" without a request when detected is "", and "" when the
	// branch is not tracked.
	LatestForBranch(ctx context.Context, detected string) (string, error)
}

// HeaderDetector fetches a target and reads what its headers disclose
type HeaderDetector interface {
	Detect(ctx context.Context, targetURL string) (*entities.Detection, error)
}
