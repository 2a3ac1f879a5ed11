package gateways

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/ochairo/installer-uploader/internal/domain/entities"
	"github.com/ochairo/installer-uploader/internal/domain/interfaces/gateways"
)

// Environment variables holding the upload credentials
const (
	EnvAccessKeyID     = "AWS_ACCESS_KEY_ID"
	EnvSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
	EnvSessionToken    = "AWS_SESSION_TOKEN"
)

// S3Config configures a single S3 object store
type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string // Path-style custom endpoint (MinIO, localstack, tests)
	ACL           string
	PublicBaseURL string
	Credentials   entities.Credentials
}

// S3ObjectStore implements ObjectStore on top of the AWS SDK upload manager
type S3ObjectStore struct {
	uploader      *manager.Uploader
	bucket        string
	acl           string
	publicBaseURL string
}

// NewS3ObjectStore creates an S3 client authenticated with static credentials
func NewS3ObjectStore(ctx context.Context, cfg S3Config) (*S3ObjectStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Credentials.AccessKeyID,
			cfg.Credentials.SecretAccessKey,
			cfg.Credentials.SessionToken,
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3ObjectStore{
		uploader:      manager.NewUploader(client),
		bucket:        cfg.Bucket,
		acl:           cfg.ACL,
		publicBaseURL: cfg.PublicBaseURL,
	}, nil
}

// Bucket returns the bucket name uploads go to
func (s *S3ObjectStore) Bucket() string {
	return s.bucket
}

// Upload streams a local file into the bucket and returns its public URL
func (s *S3ObjectStore) Upload(ctx context.Context, upload *gateways.ObjectUpload) (*gateways.StoredObject, error) {
	//nolint:gosec // G304: LocalPath is a resolved build artifact
	file, err := os.Open(upload.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", upload.LocalPath, err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", upload.LocalPath, err)
	}

	input := &s3.PutObjectInput{
		Bucket:   aws.String(s.bucket),
		Key:      aws.String(upload.Key),
		Body:     file,
		Metadata: upload.Metadata,
	}
	if upload.ContentType != "" {
		input.ContentType = aws.String(upload.ContentType)
	}
	if s.acl != "" {
		input.ACL = types.ObjectCannedACL(s.acl)
	}

	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to upload %s to s3://%s/%s: %w", upload.LocalPath, s.bucket, upload.Key, err)
	}

	return &gateways.StoredObject{
		Key:  upload.Key,
		URL:  s.ObjectURL(upload.Key),
		Size: info.Size(),
	}, nil
}

// ObjectURL returns the shareable URL for key
func (s *S3ObjectStore) ObjectURL(key string) string {
	base := s.publicBaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.amazonaws.com", s.bucket)
	}
	return strings.TrimRight(base, "/") + "/" + escapeKey(key)
}

// escapeKey escapes each path segment so "/" keeps separating prefixes
func escapeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}

// CredentialsFromEnv reads the static upload credentials; both keys are required
func CredentialsFromEnv(getenv func(string) string) (entities.Credentials, error) {
	creds := entities.Credentials{
		AccessKeyID:     getenv(EnvAccessKeyID),
		SecretAccessKey: getenv(EnvSecretAccessKey),
		SessionToken:    getenv(EnvSessionToken),
	}

	var missing []string
	if creds.AccessKeyID == "" {
		missing = append(missing, EnvAccessKeyID)
	}
	if creds.SecretAccessKey == "" {
		missing = append(missing, EnvSecretAccessKey)
	}
	if len(missing) > 0 {
		return creds, fmt.Errorf("%w: %s", entities.ErrMissingCredentials, strings.Join(missing, ", "))
	}

	return creds, nil
}

// S3StoreFactory defers credential lookup until an upload is actually about to happen
type S3StoreFactory struct {
	config S3Config
	getenv func(string) string
}

// NewS3StoreFactory builds a factory from the run configuration
func NewS3StoreFactory(cfg entities.UploaderConfig, getenv func(string) string) *S3StoreFactory {
	if getenv == nil {
		getenv = os.Getenv
	}
	return &S3StoreFactory{
		config: S3Config{
			Bucket:        cfg.Bucket,
			Region:        cfg.Region,
			Endpoint:      cfg.Endpoint,
			ACL:           cfg.ACL,
			PublicBaseURL: cfg.PublicBaseURL,
		},
		getenv: getenv,
	}
}

// Open reads credentials from the environment and connects to S3
func (f *S3StoreFactory) Open(ctx context.Context) (gateways.ObjectStore, error) {
	creds, err := CredentialsFromEnv(f.getenv)
	if err != nil {
		return nil, err
	}

	cfg := f.config
	cfg.Credentials = creds
	return NewS3ObjectStore(ctx, cfg)
}
