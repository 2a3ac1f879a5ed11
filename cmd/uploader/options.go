package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/ochairo/installer-uploader/internal/domain/entities"
	"github.com/ochairo/installer-uploader/internal/domain/services"
	"github.com/ochairo/installer-uploader/internal/external-adapters/yaml"
)

// commonFlags are accepted by every subcommand that resolves artifacts
type commonFlags struct {
	configPath    *string
	manifest      *string
	buildDir      *string
	bucket        *string
	region        *string
	endpoint      *string
	acl           *string
	publicBaseURL *string
	osName        *string
	verifyKey     *string
	concurrency   *int
	strictOS      *bool
	logLevel      *string
}

func registerCommonFlags(fs *flag.FlagSet) *commonFlags {
	return &commonFlags{
		configPath:    fs.String("config", "", "Optional YAML config file (e.g. uploader.yml)"),
		manifest:      fs.String("manifest", entities.DefaultManifest, "Path to package.json"),
		buildDir:      fs.String("build-dir", entities.DefaultBuildDir, "Directory containing built installers"),
		bucket:        fs.String("bucket", entities.DefaultBucket, "Destination S3 bucket"),
		region:        fs.String("region", entities.DefaultRegion, "S3 bucket region (default from AWS_REGION when set)"),
		endpoint:      fs.String("endpoint", "", "Custom S3-compatible endpoint (path-style)"),
		acl:           fs.String("acl", entities.DefaultACL, "Canned ACL for uploaded objects (empty to omit)"),
		publicBaseURL: fs.String("public-base-url", "", "Base URL used in printed links instead of the bucket URL"),
		osName:        fs.String("os", "", "Override detected OS (mac, windows, linux)"),
		verifyKey:     fs.String("verify-key", "", "OpenPGP public key; require a valid .asc/.sig next to every installer"),
		concurrency:   fs.Int("concurrency", entities.DefaultConcurrency, "Maximum parallel uploads"),
		strictOS:      fs.Bool("strict-os", false, "Fail instead of doing nothing on an unrecognized OS"),
		logLevel:      fs.String("log-level", "info", "Log level (debug, info, warn, error)"),
	}
}

// resolve merges defaults, AWS_REGION, the config file and explicitly set flags, in that order
func (c *commonFlags) resolve(ctx context.Context, fs *flag.FlagSet, getenv func(string) string) (entities.UploaderConfig, error) {
	cfg := entities.DefaultUploaderConfig()
	if region := getenv("AWS_REGION"); region != "" {
		cfg.Region = region
	}

	if *c.configPath != "" {
		loaded, err := yaml.NewConfigRepository().LoadConfig(ctx, *c.configPath, cfg)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "manifest":
			cfg.ManifestPath = *c.manifest
		case "build-dir":
			cfg.BuildDir = *c.buildDir
		case "bucket":
			cfg.Bucket = *c.bucket
		case "region":
			cfg.Region = *c.region
		case "endpoint":
			cfg.Endpoint = *c.endpoint
		case "acl":
			cfg.ACL = *c.acl
		case "public-base-url":
			cfg.PublicBaseURL = *c.publicBaseURL
		case "os":
			cfg.OSOverride = *c.osName
		case "verify-key":
			cfg.VerifyKey = *c.verifyKey
		case "concurrency":
			cfg.Concurrency = *c.concurrency
		case "strict-os":
			cfg.StrictOS = *c.strictOS
		}
	})

	if cfg.Bucket == "" {
		return cfg, fmt.Errorf("bucket name is required")
	}
	if cfg.Concurrency < 1 {
		return cfg, fmt.Errorf("--concurrency must be at least 1, got %d", cfg.Concurrency)
	}

	return cfg, nil
}

// resolveOS honours an explicit override, otherwise classifies the running host
func resolveOS(cfg entities.UploaderConfig) (entities.OSCategory, error) {
	if cfg.OSOverride == "" {
		return services.DetectOS(), nil
	}
	return services.ParseOSCategory(cfg.OSOverride)
}
