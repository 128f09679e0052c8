// Package out defines output ports (interfaces) for infrastructure.
// These interfaces define the contract between use cases and driven adapters
// (Docker, secret stores, event bus, etc.).
package out

import (
	"context"

	"github.com/bnema/stevedore/internal/domain"
)

// ProgressFunc receives decoded chunks of a streamed pull or push.
type ProgressFunc func(chunk domain.ProgressChunk)

// ImageTransport moves images between the local daemon and registries.
// Failures are reported as *domain.TransportError.
type ImageTransport interface {
	// PullByName pulls ref and returns a snapshot of the pulled image.
	PullByName(ctx context.Context, ref domain.Reference, cred domain.Credential, onChunk ProgressFunc) (*domain.RemoteImage, error)
	// Push pushes ref, which must already be tagged locally.
	Push(ctx context.Context, ref domain.Reference, cred domain.Credential, onChunk ProgressFunc) error
	// Tag adds ref's canonical name to img.
	Tag(ctx context.Context, img *domain.RemoteImage, ref domain.Reference) error
	// Untag removes canonical from img without deleting other references.
	Untag(ctx context.Context, img *domain.RemoteImage, canonical string) error
	// ListAll returns a snapshot of every local image.
	ListAll(ctx context.Context) ([]*domain.RemoteImage, error)
	// Inspect returns the image carrying canonical or domain.ErrImageNotFound.
	Inspect(ctx context.Context, canonical string) (*domain.RemoteImage, error)
}
