// Package orchestrators coordinates the check workflow across gateways and services.
package orchestrators

import (
	"context"
	"fmt"
	"io"

	"github.com/ochairo/stackcheck/internal/domain/interfaces"
	"github.com/ochairo/stackcheck/internal/domain/interfaces/gateways"
	"github.com/ochairo/stackcheck/internal/domain/services"
)

const notPresent = "Not Present"

// CheckOrchestrator runs one target check from upstream lookups to verdicts
type CheckOrchestrator struct {
	apache   gateways.ApacheReleaseSource
	php      gateways.PHPReleaseSource
	detector gateways.HeaderDetector
	reporter *services.Reporter
	out      io.Writer
	logger   interfaces.Logger
}

// CheckOrchestratorConfig holds output options for the orchestrator
type CheckOrchestratorConfig struct {
	Out     io.Writer
	NoColor bool
	Logger  interfaces.Logger
}

// NewCheckOrchestrator creates a new check orchestrator
func NewCheckOrchestrator(
	apache gateways.ApacheReleaseSource,
	php gateways.PHPReleaseSource,
	detector gateways.HeaderDetector,
	config CheckOrchestratorConfig,
) *CheckOrchestrator {
	logger := config.Logger
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &CheckOrchestrator{
		apache:   apache,
		php:      php,
		detector: detector,
		reporter: services.NewReporter(config.Out, config.NoColor),
		out:      config.Out,
		logger:   logger,
	}
}

// CheckResult contains the verdicts of a completed run
type CheckResult struct {
	Apache services.Assessment
	PHP    services.Assessment
}

// Run checks targetURL and writes the report. Every step is sequential and
// the first error aborts the run.
func (o *CheckOrchestrator) Run(ctx context.Context, targetURL string) (*CheckResult, error) {
	fmt.Fprintf(o.out, "\n=== Remote Apache & PHP Version Check ===\n\n")
	fmt.Fprintf(o.out, "=== Target URL: %s ===\n\n", targetURL)

	apacheLatest, err := o.apache.LatestVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching latest apache version: %w", err)
	}

	phpLatest, err := o.php.LatestSupportedVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching latest php version: %w", err)
	}

	detection, err := o.detector.Detect(ctx, targetURL)
	if err != nil {
		return nil, fmt.Errorf("detecting target versions: %w", err)
	}

	fmt.Fprintf(o.out, "Server Header:     %s\n", orNotPresent(detection.ServerHeader))
	fmt.Fprintf(o.out, "X-Powered-By:      %s\n\n", orNotPresent(detection.PoweredBy))

	phpBranchLatest, err := o.php.LatestForBranch(ctx, detection.PHPVersion)
	if err != nil {
		return nil, fmt.Errorf("fetching latest php build for branch: %w", err)
	}

	apacheResult, err := services.Assess("Apache", detection.ApacheVersion, apacheLatest, "")
	if err != nil {
		return nil, err
	}
	if err := o.reporter.Write(apacheResult); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}

	phpResult, err := services.Assess("PHP", detection.PHPVersion, phpLatest, phpBranchLatest)
	if err != nil {
		return nil, err
	}
	if err := o.reporter.Write(phpResult); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}

	o.logger.Info("check complete",
		interfaces.F("target", targetURL),
		interfaces.F("apache", string(apacheResult.Status)),
		interfaces.F("php", string(phpResult.Status)))

	return &CheckResult{Apache: apacheResult, PHP: phpResult}, nil
}

func orNotPresent(v string) string {
	if v == "" {
		return notPresent
	}
	return v
}
