package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// project lays out package.json and the installers for productName under a temp dir
func project(t *testing.T, productName string, installers ...string) (manifest, buildDir string) {
	t.Helper()
	root := t.TempDir()

	manifest = filepath.Join(root, "package.json")
	content := `{"name": "app", "build": {"productName": "` + productName + `"}}`
	require.NoError(t, os.WriteFile(manifest, []byte(content), 0600))

	buildDir = filepath.Join(root, "release", "build")
	require.NoError(t, os.MkdirAll(buildDir, 0750))
	for _, name := range installers {
		require.NoError(t, os.WriteFile(filepath.Join(buildDir, name), []byte("installer "+name), 0600))
	}
	return manifest, buildDir
}

func fakeS3(t *testing.T, failKey string) (*httptest.Server, func() []string) {
	t.Helper()
	var (
		mu   sync.Mutex
		keys []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		key := strings.TrimPrefix(r.URL.Path, "/releases/")
		mu.Lock()
		keys = append(keys, key)
		mu.Unlock()

		if key == failKey {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`<Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`))
			return
		}
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	return server, func() []string {
		mu.Lock()
		defer mu.Unlock()
		out := append([]string(nil), keys...)
		sort.Strings(out)
		return out
	}
}

func credentialsEnv(extra map[string]string) func(string) string {
	env := map[string]string{
		"AWS_ACCESS_KEY_ID":     "AKIDEXAMPLE",
		"AWS_SECRET_ACCESS_KEY": "secret",
	}
	for k, v := range extra {
		env[k] = v
	}
	return func(k string) string { return env[k] }
}

func isolateAWSConfig(t *testing.T) {
	t.Helper()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(t.TempDir(), "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(t.TempDir(), "credentials"))
}

func TestRun_Help(t *testing.T) {
	for _, args := range [][]string{{"help"}, {"--help"}, {"-h"}} {
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), args, &stdout, &stderr, credentialsEnv(nil))
		assert.Equal(t, exitOK, code)
		assert.Contains(t, stdout.String(), "uploader - Publish application installers to S3")
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"publish"}, &stdout, &stderr, credentialsEnv(nil))
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr.String(), "Unknown command: publish")
}

func TestRun_SubcommandHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"upload", "--help"}, &stdout, &stderr, credentialsEnv(nil))
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr.String(), "AWS_SECRET_ACCESS_KEY")
}

func TestRun_Plan(t *testing.T) {
	manifest, buildDir := project(t, "My App")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(),
		[]string{"plan", "--manifest", manifest, "--build-dir", buildDir, "--os", "linux", "--bucket", "releases"},
		&stdout, &stderr, func(string) string { return "" })
	require.Equal(t, exitOK, code, stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "My App (linux): 4 installer(s)")
	assert.Contains(t, out, buildDir+"/My App-amd64.deb -> s3://releases/MyApp-amd64.deb")
	assert.Contains(t, out, buildDir+"/My App-aarch64.rpm -> s3://releases/MyApp-aarch64.rpm")
}

func TestRun_Plan_BadOSOverride(t *testing.T) {
	manifest, buildDir := project(t, "App")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(),
		[]string{"plan", "--manifest", manifest, "--build-dir", buildDir, "--os", "solaris"},
		&stdout, &stderr, credentialsEnv(nil))
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr.String(), "unsupported operating system")
}

func TestRun_UploadDryRunNeedsNoCredentials(t *testing.T) {
	manifest, buildDir := project(t, "App")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(),
		[]string{"upload", "--dry-run", "--manifest", manifest, "--build-dir", buildDir, "--os", "mac"},
		&stdout, &stderr, func(string) string { return "" })
	require.Equal(t, exitOK, code, stderr.String())
	assert.Contains(t, stdout.String(), "s3://awesome-app-distribution/App.dmg")
	assert.NotContains(t, stdout.String(), "Visit ")
}

func TestRun_UploadLinux(t *testing.T) {
	isolateAWSConfig(t)
	installers := []string{"My App-amd64.deb", "My App-arm64.deb", "My App-x86_64.rpm", "My App-aarch64.rpm"}
	manifest, buildDir := project(t, "My App", installers...)
	server, keys := fakeS3(t, "")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"--manifest", manifest,
		"--build-dir", buildDir,
		"--os", "linux",
		"--bucket", "releases",
		"--endpoint", server.URL,
		"--public-base-url", "https://downloads.example.com",
	}, &stdout, &stderr, credentialsEnv(nil))
	require.Equal(t, exitOK, code, stderr.String())

	assert.Equal(t, []string{"MyApp-aarch64.rpm", "MyApp-amd64.deb", "MyApp-arm64.deb", "MyApp-x86_64.rpm"}, keys())
	assert.Equal(t, []string{
		"Visit https://downloads.example.com/MyApp-amd64.deb to download the uploaded file.",
		"Visit https://downloads.example.com/MyApp-arm64.deb to download the uploaded file.",
		"Visit https://downloads.example.com/MyApp-x86_64.rpm to download the uploaded file.",
		"Visit https://downloads.example.com/MyApp-aarch64.rpm to download the uploaded file.",
	}, strings.Split(strings.TrimSpace(stdout.String()), "\n"))
	assert.Contains(t, stderr.String(), "run_id=")
}

func TestRun_UploadFailureExitsNonZero(t *testing.T) {
	isolateAWSConfig(t)
	installers := []string{"App-amd64.deb", "App-arm64.deb", "App-x86_64.rpm", "App-aarch64.rpm"}
	manifest, buildDir := project(t, "App", installers...)
	server, _ := fakeS3(t, "App-x86_64.rpm")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"upload",
		"--manifest", manifest,
		"--build-dir", buildDir,
		"--os", "linux",
		"--bucket", "releases",
		"--endpoint", server.URL,
	}, &stdout, &stderr, credentialsEnv(nil))

	assert.Equal(t, exitFailure, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "AccessDenied")
}

func TestRun_UploadMissingInstallerFails(t *testing.T) {
	isolateAWSConfig(t)
	manifest, buildDir := project(t, "App")
	server, keys := fakeS3(t, "")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"upload", "--manifest", manifest, "--build-dir", buildDir, "--os", "windows", "--endpoint", server.URL,
	}, &stdout, &stderr, credentialsEnv(nil))

	assert.Equal(t, exitFailure, code)
	assert.Empty(t, keys())
	assert.Empty(t, stdout.String())
}

func TestRun_UploadMissingCredentials(t *testing.T) {
	manifest, buildDir := project(t, "App", "App.dmg")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"upload", "--manifest", manifest, "--build-dir", buildDir, "--os", "mac",
	}, &stdout, &stderr, func(string) string { return "" })

	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr.String(), "AWS_ACCESS_KEY_ID")
}

func TestRun_UploadManifestMissing(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"upload", "--manifest", filepath.Join(t.TempDir(), "package.json"), "--os", "mac",
	}, &stdout, &stderr, credentialsEnv(nil))

	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr.String(), "failed to load manifest")
}

func TestRun_ConfigFile(t *testing.T) {
	manifest, buildDir := project(t, "App")
	configPath := filepath.Join(t.TempDir(), "uploader.yml")
	config := "bucket: from-config\nbuild_dir: " + buildDir + "\nmanifest: " + manifest + "\nos: windows\n"
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0600))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"plan", "--config", configPath}, &stdout, &stderr, credentialsEnv(nil))
	require.Equal(t, exitOK, code, stderr.String())
	assert.Contains(t, stdout.String(), "s3://from-config/App.exe")

	// flags win over the file
	stdout.Reset()
	code = run(context.Background(), []string{"plan", "--config", configPath, "--bucket", "from-flag", "--os", "mac"},
		&stdout, &stderr, credentialsEnv(nil))
	require.Equal(t, exitOK, code, stderr.String())
	assert.Contains(t, stdout.String(), "s3://from-flag/App.dmg")
}

func TestRun_InvalidConcurrency(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"plan", "--concurrency", "0"}, &stdout, &stderr, credentialsEnv(nil))
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr.String(), "--concurrency must be at least 1")
}
