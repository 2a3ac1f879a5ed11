package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/ochairo/installer-uploader/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/installer-uploader/internal/domain-orchestrators"
	"github.com/ochairo/installer-uploader/internal/domain/entities"
	"github.com/ochairo/installer-uploader/internal/domain/interfaces"
	domainGateways "github.com/ochairo/installer-uploader/internal/domain/interfaces/gateways"
	"github.com/ochairo/installer-uploader/internal/external-adapters/json"
)

func runUpload(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	fs.SetOutput(stderr)
	common := registerCommonFlags(fs)
	dryRun := fs.Bool("dry-run", false, "Show what would be uploaded without contacting S3")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: uploader upload [options]

Upload the installers built for this operating system and print a download URL for each.

  mac      <build-dir>/<ProductName>.dmg
  windows  <build-dir>/<ProductName>.exe
  linux    <build-dir>/<ProductName>-{amd64.deb,arm64.deb,x86_64.rpm,aarch64.rpm}

Examples:
  uploader upload
  uploader upload --dry-run
  uploader upload --os linux --build-dir ./out
  uploader upload --config uploader.yml --verify-key release.asc

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(stderr, `
Environment Variables:
  AWS_ACCESS_KEY_ID       Access key for the bucket (required)
  AWS_SECRET_ACCESS_KEY   Secret key for the bucket (required)
  AWS_SESSION_TOKEN       Session token for temporary credentials (optional)
  AWS_REGION              Default bucket region (optional)
`)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := common.resolve(ctx, fs, getenv)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	osCategory, err := resolveOS(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	logger := interfaces.NewSlogLogger(stderr, *common.logLevel, interfaces.F("run_id", uuid.NewString()))

	if *dryRun {
		return printPlan(ctx, cfg, osCategory, logger, stdout, stderr)
	}

	orch, err := newUploadOrchestrator(cfg, osCategory, logger, stdout, getenv)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	if _, err := orch.Run(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, entities.ErrMissingCredentials) {
			return exitUsage
		}
		return exitFailure
	}

	return exitOK
}

// newUploadOrchestrator wires the production adapters
func newUploadOrchestrator(cfg entities.UploaderConfig, osCategory entities.OSCategory, logger interfaces.Logger, stdout io.Writer, getenv func(string) string) (*orchestrators.UploadOrchestrator, error) {
	var signatures domainGateways.SignatureVerifier
	if cfg.VerifyKey != "" {
		verifier, err := gateways.NewGPGVerifier(cfg.VerifyKey)
		if err != nil {
			return nil, err
		}
		signatures = verifier
	}

	return orchestrators.NewUploadOrchestrator(
		json.NewManifestRepository(),
		gateways.NewS3StoreFactory(cfg, getenv),
		gateways.NewChecksumVerifier(),
		gateways.NewContentTypeDetector(),
		signatures,
		logger,
		stdout,
		orchestrators.UploadOrchestratorConfig{
			ManifestPath: cfg.ManifestPath,
			BuildDir:     cfg.BuildDir,
			OS:           osCategory,
			Concurrency:  cfg.Concurrency,
			StrictOS:     cfg.StrictOS,
		},
	), nil
}
