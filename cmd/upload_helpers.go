package cmd

import (
	"context"
	"fmt"
	"os"

	contextparser "github.com/zinc-sig/summon/internal/context"
	"github.com/zinc-sig/summon/internal/upload"
)

// uploadEnvPrefix is the environment variable namespace for upload settings.
const uploadEnvPrefix = "SUMMON_UPLOAD_CONFIG"

// buildUploadConfig builds upload configuration from env, file, JSON string
// and key=value flags, in that precedence order.
func buildUploadConfig(config *UploadConfig) (map[string]any, error) {
	merged, err := contextparser.BuildWithPrefix(uploadEnvPrefix, config.Config, config.ConfigKV, config.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload config: %w", err)
	}

	if merged == nil {
		return make(map[string]any), nil
	}

	if m, ok := merged.(map[string]any); ok {
		return m, nil
	}

	return nil, fmt.Errorf("upload config must be an object/map")
}

// setupUploadProvider creates and configures an upload provider. Returns nil
// when no provider is requested.
func setupUploadProvider(config *UploadConfig) (upload.Provider, error) {
	if config.Provider == "" {
		return nil, nil
	}

	uploadConf, err := buildUploadConfig(config)
	if err != nil {
		return nil, err
	}

	provider, err := upload.NewProvider(config.Provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload provider: %w", err)
	}

	if err := provider.Configure(uploadConf); err != nil {
		return nil, fmt.Errorf("failed to configure upload provider: %w", err)
	}

	return provider, nil
}

// handleUploads uploads local files to their remote paths.
func handleUploads(provider upload.Provider, files map[string]string, verbose bool) error {
	if provider == nil {
		return nil
	}

	ctx := context.Background()
	for localPath, remotePath := range files {
		reader, err := os.Open(localPath)
		if err != nil {
			return fmt.Errorf("failed to open %s for upload: %w", localPath, err)
		}

		err = provider.Upload(ctx, reader, remotePath)
		_ = reader.Close()
		if err != nil {
			return fmt.Errorf("failed to upload to %s: %w", remotePath, err)
		}

		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Uploaded to: %s\n", remotePath)
		}
	}
	return nil
}

// createTranscriptFiles creates temp tee targets for a run's stdout/stderr.
// Returns the paths and a cleanup function.
func createTranscriptFiles() (stdoutFile, stderrFile string, cleanup func(), err error) {
	tempOut, err := os.CreateTemp("", "summon-stdout-*.log")
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to create temp stdout transcript: %w", err)
	}
	stdoutFile = tempOut.Name()
	_ = tempOut.Close()

	tempErr, err := os.CreateTemp("", "summon-stderr-*.log")
	if err != nil {
		_ = os.Remove(stdoutFile)
		return "", "", nil, fmt.Errorf("failed to create temp stderr transcript: %w", err)
	}
	stderrFile = tempErr.Name()
	_ = tempErr.Close()

	cleanup = func() {
		_ = os.Remove(stdoutFile)
		_ = os.Remove(stderrFile)
	}

	return stdoutFile, stderrFile, cleanup, nil
}
