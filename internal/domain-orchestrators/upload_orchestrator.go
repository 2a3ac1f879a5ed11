// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ochairo/installer-uploader/internal/domain/entities"
	"github.com/ochairo/installer-uploader/internal/domain/interfaces"
	"github.com/ochairo/installer-uploader/internal/domain/interfaces/gateways"
	"github.com/ochairo/installer-uploader/internal/domain/interfaces/repositories"
	"github.com/ochairo/installer-uploader/internal/domain/services"
	"golang.org/x/sync/errgroup"
)

// UploadOrchestratorConfig holds configuration for the orchestrator
type UploadOrchestratorConfig struct {
	ManifestPath string
	BuildDir     string
	OS           entities.OSCategory
	Concurrency  int
	StrictOS     bool
}

// UploadOrchestrator coordinates the manifest -> artifacts -> bucket workflow
type UploadOrchestrator struct {
	manifests    repositories.ManifestRepository
	stores       gateways.ObjectStoreFactory
	integrity    gateways.IntegrityGateway
	contentTypes gateways.ContentTypeDetector
	signatures   gateways.SignatureVerifier
	artifacts    *services.ArtifactService
	logger       interfaces.Logger
	out          io.Writer
	config       UploadOrchestratorConfig
}

// NewUploadOrchestrator creates a new upload orchestrator. signatures may be nil
// to skip signature checks; logger may be nil.
func NewUploadOrchestrator(
	manifests repositories.ManifestRepository,
	stores gateways.ObjectStoreFactory,
	integrity gateways.IntegrityGateway,
	contentTypes gateways.ContentTypeDetector,
	signatures gateways.SignatureVerifier,
	logger interfaces.Logger,
	out io.Writer,
	config UploadOrchestratorConfig,
) *UploadOrchestrator {
	if config.Concurrency < 1 {
		config.Concurrency = entities.DefaultConcurrency
	}
	if config.BuildDir == "" {
		config.BuildDir = entities.DefaultBuildDir
	}
	if config.ManifestPath == "" {
		config.ManifestPath = entities.DefaultManifest
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &UploadOrchestrator{
		manifests:    manifests,
		stores:       stores,
		integrity:    integrity,
		contentTypes: contentTypes,
		signatures:   signatures,
		artifacts:    services.NewArtifactService(),
		logger:       logger,
		out:          out,
		config:       config,
	}
}

// UploadPlan is the resolved set of artifacts for this host
type UploadPlan struct {
	ProductName string
	OS          entities.OSCategory
	Artifacts   []entities.Artifact
}

// UploadReport contains the result of an upload run
type UploadReport struct {
	Plan     *UploadPlan
	Results  []entities.UploadResult
	Duration time.Duration
}

// Plan reads the manifest and resolves the artifacts for the configured OS.
// An unrecognized OS yields an empty plan unless StrictOS is set.
func (o *UploadOrchestrator) Plan(ctx context.Context) (*UploadPlan, error) {
	manifest, err := o.manifests.GetManifest(ctx, o.config.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	plan := &UploadPlan{
		ProductName: manifest.ProductName,
		OS:          o.config.OS,
	}

	artifacts, err := o.artifacts.ResolveArtifacts(manifest.ProductName, o.config.BuildDir, o.config.OS)
	switch {
	case errors.Is(err, entities.ErrUnsupportedOS) && !o.config.StrictOS:
		o.logger.Warn("No installers defined for this operating system, nothing to upload",
			interfaces.F("os", o.config.OS))
		return plan, nil
	case err != nil:
		return nil, err
	}

	plan.Artifacts = artifacts
	return plan, nil
}

// Run uploads every resolved artifact and prints one line per URL in artifact order.
// The first failed upload cancels the rest and no URLs are printed.
func (o *UploadOrchestrator) Run(ctx context.Context) (*UploadReport, error) {
	startTime := time.Now()

	plan, err := o.Plan(ctx)
	if err != nil {
		return nil, err
	}

	report := &UploadReport{Plan: plan}
	if len(plan.Artifacts) == 0 {
		report.Duration = time.Since(startTime)
		return report, nil
	}

	o.logger.Info("Resolved installers",
		interfaces.F("product", plan.ProductName),
		interfaces.F("os", plan.OS),
		interfaces.F("count", len(plan.Artifacts)))

	if err := o.verifySignatures(plan.Artifacts); err != nil {
		return nil, err
	}

	store, err := o.stores.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open object store: %w", err)
	}

	results := make([]entities.UploadResult, len(plan.Artifacts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.config.Concurrency)

	for i, artifact := range plan.Artifacts {
		g.Go(func() error {
			result, err := o.uploadArtifact(gctx, store, artifact)
			if err != nil {
				return err
			}
			results[i] = *result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		o.logger.Error("Upload failed, aborting run", interfaces.F("error", err))
		return nil, err
	}

	for _, result := range results {
		if _, err := fmt.Fprintf(o.out, "Visit %s to download the uploaded file.\n", result.URL); err != nil {
			return nil, fmt.Errorf("failed to write result: %w", err)
		}
	}

	report.Results = results
	report.Duration = time.Since(startTime)
	o.logger.Info("Upload complete",
		interfaces.F("bucket", store.Bucket()),
		interfaces.F("uploaded", len(results)),
		interfaces.F("duration", report.Duration.Round(time.Millisecond)))

	return report, nil
}

// verifySignatures checks every artifact before the first byte is sent
func (o *UploadOrchestrator) verifySignatures(artifacts []entities.Artifact) error {
	if o.signatures == nil {
		return nil
	}

	for _, artifact := range artifacts {
		if err := o.signatures.VerifyArtifact(artifact.Path); err != nil {
			return err
		}
		o.logger.Debug("Signature verified", interfaces.F("path", artifact.Path))
	}
	return nil
}

func (o *UploadOrchestrator) uploadArtifact(ctx context.Context, store gateways.ObjectStore, artifact entities.Artifact) (*entities.UploadResult, error) {
	sum, err := o.integrity.CalculateChecksum(ctx, artifact.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to checksum %s: %w", artifact.Path, err)
	}

	expected, found, err := o.integrity.ExpectedChecksum(artifact.Path)
	if err != nil {
		return nil, err
	}
	if found && expected != sum {
		return nil, fmt.Errorf("checksum mismatch for %s: expected %s, got %s", artifact.Path, expected, sum)
	}

	contentType, err := o.contentTypes.DetectContentType(artifact.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to detect content type of %s: %w", artifact.Path, err)
	}

	o.logger.Info("Uploading installer",
		interfaces.F("path", artifact.Path),
		interfaces.F("key", artifact.ObjectKey),
		interfaces.F("content_type", contentType))

	obj, err := store.Upload(ctx, &gateways.ObjectUpload{
		LocalPath:   artifact.Path,
		Key:         artifact.ObjectKey,
		ContentType: contentType,
		Metadata:    map[string]string{"sha256": sum},
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("Uploaded installer",
		interfaces.F("key", obj.Key),
		interfaces.F("size", obj.Size),
		interfaces.F("sha256", sum),
		interfaces.F("url", obj.URL))

	return &entities.UploadResult{
		Artifact:    artifact,
		URL:         obj.URL,
		Size:        obj.Size,
		SHA256:      sum,
		ContentType: contentType,
	}, nil
}
