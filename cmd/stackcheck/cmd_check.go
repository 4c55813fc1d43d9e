package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/ochairo/stackcheck/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/stackcheck/internal/domain-orchestrators"
	"github.com/ochairo/stackcheck/internal/domain/entities"
	"github.com/ochairo/stackcheck/internal/domain/interfaces"
	"github.com/ochairo/stackcheck/internal/external-adapters/yaml"
	"github.com/ochairo/stackcheck/internal/external-adapters/zap"
)

const prompt = "Enter target URL (https://example.com): "

func runCheck(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("stackcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "Path to YAML configuration file")
		noColor    = fs.Bool("no-color", false, "Disable colored output")
		debug      = fs.Bool("debug", false, "Log requests and lookups to stderr")
	)
	fs.Usage = func() {
		printUsage(stderr)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	logger := zap.NewLogger(stderr, *debug)
	//nolint:errcheck // Best effort flush, stderr may not support sync
	defer logger.Sync()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprint(stdout, prompt)
	targetURL, err := readTarget(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	orch := newOrchestrator(cfg, stdout, *noColor, logger)
	if _, err := orch.Run(ctx, targetURL); err != nil {
		logger.Error("check failed", interfaces.F("target", targetURL), interfaces.F("error", err.Error()))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func loadConfig(path string) (entities.Config, error) {
	if path == "" {
		return entities.DefaultConfig(), nil
	}
	return yaml.NewConfigParser().ParseFile(path)
}

// readTarget reads one line and trims surrounding whitespace. A final line
// without a newline is accepted.
func readTarget(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read target URL: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", fmt.Errorf("no target URL given")
	}
	return strings.TrimSpace(line), nil
}

func newOrchestrator(cfg entities.Config, out io.Writer, noColor bool, logger interfaces.Logger) *orchestrators.CheckOrchestrator {
	fetcher := gateways.NewHTTPFetcher(cfg.HTTP, logger)

	return orchestrators.NewCheckOrchestrator(
		gateways.NewApacheSource(fetcher, cfg.Endpoints.ApacheIndex, logger),
		gateways.NewPHPSource(fetcher, cfg.Endpoints.PHPReleases, cfg.Endpoints.PHPWindowsBuild, logger),
		gateways.NewHTTPHeaderDetector(fetcher, logger),
		orchestrators.CheckOrchestratorConfig{
			Out:     out,
			NoColor: noColor,
			Logger:  logger,
		},
	)
}
