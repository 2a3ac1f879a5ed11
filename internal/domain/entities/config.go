package entities

// Defaults applied when neither the config file nor flags set a value
const (
	DefaultBucket      = "awesome-app-distribution"
	DefaultRegion      = "us-east-1"
	DefaultBuildDir    = "./release/build"
	DefaultManifest    = "./package.json"
	DefaultConcurrency = 4
	DefaultACL         = "public-read"
)

// UploaderConfig holds the run configuration after defaults, file and flags are merged
type UploaderConfig struct {
	Bucket        string
	Region        string
	Endpoint      string // Custom S3 endpoint (path-style); empty means AWS
	BuildDir      string
	ManifestPath  string
	Concurrency   int
	ACL           string // Canned ACL; empty omits it
	PublicBaseURL string // Overrides https://<bucket>.s3.amazonaws.com
	VerifyKey     string // Armored or binary OpenPGP public key file
	StrictOS      bool   // Treat an unrecognized host OS as an error
	OSOverride    string
}

// DefaultUploaderConfig returns the configuration used when nothing else is provided
func DefaultUploaderConfig() UploaderConfig {
	return UploaderConfig{
		Bucket:       DefaultBucket,
		Region:       DefaultRegion,
		BuildDir:     DefaultBuildDir,
		ManifestPath: DefaultManifest,
		Concurrency:  DefaultConcurrency,
		ACL:          DefaultACL,
	}
}

// Credentials are the static AWS keys used to sign uploads
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}
