// Package in defines input ports (interfaces) for use cases.
package in

import (
	"context"

	"github.com/bnema/stevedore/internal/domain"
	"github.com/bnema/stevedore/internal/usecase/collection"
	"github.com/bnema/stevedore/internal/usecase/goal"
)

// ImageService defines the collection operations the CLI drives.
type ImageService interface {
	// Status refreshes the collection and returns one row per image.
	Status(ctx context.Context) ([]domain.ImageInfo, error)

	// Refresh resynchronizes cached state with the daemon.
	Refresh(ctx context.Context) error

	// Ready pulls absent images unless the collection is already ready.
	Ready(ctx context.Context, opts collection.BulkOptions) (*collection.PullReport, error)

	// PullAll pulls the selected images.
	PullAll(ctx context.Context, opts collection.BulkOptions) (*collection.PullReport, error)

	// PushAll pushes the selected images that are not external.
	PushAll(ctx context.Context, opts collection.BulkOptions) (*collection.PullReport, error)

	// Achieve drives the selected images toward a goal.
	Achieve(ctx context.Context, name goal.Name, opts collection.BulkOptions) (*collection.GoalReport, error)
}
