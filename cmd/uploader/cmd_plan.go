package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/ochairo/installer-uploader/internal/domain/entities"
	"github.com/ochairo/installer-uploader/internal/domain/interfaces"
)

func runPlan(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	common := registerCommonFlags(fs)

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: uploader plan [options]

Resolve the installers for this operating system and show where each would be uploaded.
No credentials are needed and nothing is sent over the network.

Examples:
  uploader plan
  uploader plan --os windows

Options:
`)
		fs.PrintDefaults()
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
	return printPlan(ctx, cfg, osCategory, logger, stdout, stderr)
}

// printPlan lists "<local path> -> s3://<bucket>/<key>" for every resolved installer
func printPlan(ctx context.Context, cfg entities.UploaderConfig, osCategory entities.OSCategory, logger interfaces.Logger, stdout, stderr io.Writer) int {
	orch, err := newUploadOrchestrator(cfg, osCategory, logger, stdout, func(string) string { return "" })
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	plan, err := orch.Plan(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	if len(plan.Artifacts) == 0 {
		fmt.Fprintf(stdout, "No installers for %s\n", plan.OS)
		return exitOK
	}

	fmt.Fprintf(stdout, "%s (%s): %d installer(s)\n", plan.ProductName, plan.OS, len(plan.Artifacts))
	for _, a := range plan.Artifacts {
		fmt.Fprintf(stdout, "  %s -> s3://%s/%s\n", a.Path, cfg.Bucket, a.ObjectKey)
	}
	return exitOK
}
