// Package upload pushes captured agent transcripts (the raw stdout/stderr of
// a run) to remote object storage so orchestrators can inspect runs after the
// working tree is gone.
package upload

import (
	"context"
	"io"
)

// Provider is implemented by each storage backend.
type Provider interface {
	// Upload streams content from reader to the remote path.
	Upload(ctx context.Context, reader io.Reader, remotePath string) error

	// Configure sets up the provider with the given configuration.
	Configure(config map[string]any) error

	// Name returns the provider name.
	Name() string
}
