// Package collection implements the image collection use case: a keyed set
// of declared images with collection-wide goal queries and bulk actions.
package collection

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/bnema/stevedore/internal/boundaries/out"
	"github.com/bnema/stevedore/internal/domain"
	"github.com/bnema/stevedore/internal/logging"
	"github.com/bnema/stevedore/internal/usecase/batch"
	"github.com/bnema/stevedore/internal/usecase/goal"
	"github.com/bnema/stevedore/internal/usecase/image"
)

// Batch operation names.
const (
	OpPull    = "pull"
	OpPush    = "push"
	OpAchieve = "achieve"
)

// BulkOptions select and tune one bulk operation.
type BulkOptions struct {
	// Names restricts the operation to these images. Empty means all.
	Names []string
	// IgnoreFailure overrides the configured batch behavior when set.
	IgnoreFailure bool
}

// PullReport maps image names to the canonical reference each pull produced.
type PullReport = batch.Report[string, string]

// GoalReport maps image names to goal results.
type GoalReport = batch.Report[string, goal.Result]

// Service holds the declared images.
type Service struct {
	transport out.ImageTransport
	runner    *batch.Runner
	opts      batch.Options

	mu     sync.RWMutex
	images map[string]*image.Image
}

// NewService creates an empty collection. Bulk operations run through
// runner with opts as defaults.
func NewService(transport out.ImageTransport, runner *batch.Runner, opts batch.Options) *Service {
	return &Service{
		transport: transport,
		runner:    runner,
		opts:      opts,
		images:    make(map[string]*image.Image),
	}
}

// RepoTagOrder is the total order used for processing and display.
func RepoTagOrder(a, b *image.Image) int {
	return cmp.Compare(a.Name(), b.Name())
}

// Add inserts img. Names are unique.
func (s *Service) Add(img *image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.images[img.Name()]; ok {
		return fmt.Errorf("%s: %w", img.Name(), domain.ErrImageExists)
	}
	s.images[img.Name()] = img
	return nil
}

// Get returns the image called name.
func (s *Service) Get(name string) (*image.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.images[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, domain.ErrImageNotFound)
	}
	return img, nil
}

// Len returns the number of images.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images)
}

// Images returns every image in RepoTagOrder.
func (s *Service) Images() []*image.Image {
	s.mu.RLock()
	imgs := make([]*image.Image, 0, len(s.images))
	for _, img := range s.images {
		imgs = append(imgs, img)
	}
	s.mu.RUnlock()

	slices.SortFunc(imgs, RepoTagOrder)
	return imgs
}

// Select returns the images matching pred in RepoTagOrder.
func (s *Service) Select(pred func(*image.Image) bool) []*image.Image {
	all := s.Images()
	selected := all[:0]
	for _, img := range all {
		if pred(img) {
			selected = append(selected, img)
		}
	}
	return selected
}

// IsReady reports whether every image is up.
func (s *Service) IsReady() bool { return s.all((*image.Image).Ready) }

// IsAbsent reports whether every image is absent.
func (s *Service) IsAbsent() bool { return s.all((*image.Image).Absent) }

// IsDown reports whether every image is down.
func (s *Service) IsDown() bool { return s.all((*image.Image).Down) }

// IsClear reports whether every image is clear.
func (s *Service) IsClear() bool { return s.all((*image.Image).Clear) }

func (s *Service) all(pred func(*image.Image) bool) bool {
	for _, img := range s.Images() {
		if !pred(img) {
			return false
		}
	}
	return true
}

// Ready pulls the absent images among the selection. It does nothing when
// the selection is already ready. Images without a snapshot are inspected
// first.
func (s *Service) Ready(ctx context.Context, opts BulkOptions) (*PullReport, error) {
	ctx = logging.CtxWithFields(ctx, map[string]any{
		logging.FieldLayer:   "usecase",
		logging.FieldUseCase: "Ready",
	})
	log := logging.FromCtx(ctx)

	imgs, err := s.pick(opts.Names)
	if err != nil {
		return nil, err
	}

	for _, img := range imgs {
		if err := img.Load(ctx); err != nil {
			return nil, log.WrapErr(err, "failed to load image state")
		}
	}

	if everyReady(imgs) {
		log.Debug().Int(logging.FieldCount, len(imgs)).Msg("images already ready")
		return emptyReport[string](), nil
	}

	absent := make([]*image.Image, 0, len(imgs))
	for _, img := range imgs {
		if img.Absent() {
			absent = append(absent, img)
		}
	}
	if len(absent) == 0 {
		log.Debug().Msg("no absent image to pull")
		return emptyReport[string](), nil
	}

	return s.pull(ctx, absent, opts)
}

// PullAll pulls every selected image.
func (s *Service) PullAll(ctx context.Context, opts BulkOptions) (*PullReport, error) {
	imgs, err := s.pick(opts.Names)
	if err != nil {
		return nil, err
	}
	return s.pull(ctx, imgs, opts)
}

// PushAll pushes every selected image that is not external.
func (s *Service) PushAll(ctx context.Context, opts BulkOptions) (*PullReport, error) {
	imgs, err := s.pick(opts.Names)
	if err != nil {
		return nil, err
	}

	owned := slices.DeleteFunc(imgs, (*image.Image).External)

	return batch.Run(ctx, s.runner, OpPush, tasks(owned), s.batchOptions(opts),
		func(ctx context.Context, _ string, img *image.Image) (string, error) {
			defer img.Forget()
			if err := img.Push(ctx, nil); err != nil {
				return "", err
			}
			return img.Canonical(), nil
		})
}

func (s *Service) pull(ctx context.Context, imgs []*image.Image, opts BulkOptions) (*PullReport, error) {
	return batch.Run(ctx, s.runner, OpPull, tasks(imgs), s.batchOptions(opts),
		func(ctx context.Context, _ string, img *image.Image) (string, error) {
			defer img.Forget()
			if err := img.Pull(ctx, domain.RefOverrides{}); err != nil {
				return "", err
			}
			return img.Canonical(), nil
		})
}

// Achieve drives the selected images toward name. The ready goal goes
// through Ready so images that are already up are left alone.
func (s *Service) Achieve(ctx context.Context, name goal.Name, opts BulkOptions) (*GoalReport, error) {
	ctx = logging.CtxWithFields(ctx, map[string]any{
		logging.FieldLayer:   "usecase",
		logging.FieldUseCase: "Achieve",
		logging.FieldGoal:    string(name),
	})
	log := logging.FromCtx(ctx)

	if !image.Goals.Has(name) {
		return nil, log.WrapErr(&domain.GoalUnreachableError{
			Goal:   string(name),
			Reason: "unknown goal",
		}, "cannot achieve goal")
	}

	if name == image.GoalReady {
		return s.achieveReady(ctx, opts)
	}

	imgs, err := s.pick(opts.Names)
	if err != nil {
		return nil, err
	}

	return batch.Run(ctx, s.runner, OpAchieve+":"+string(name), tasks(imgs), s.batchOptions(opts),
		func(ctx context.Context, _ string, img *image.Image) (goal.Result, error) {
			return img.Achieve(ctx, name)
		})
}

func (s *Service) achieveReady(ctx context.Context, opts BulkOptions) (*GoalReport, error) {
	imgs, err := s.pick(opts.Names)
	if err != nil {
		return nil, err
	}

	pulled, err := s.Ready(ctx, opts)
	if pulled == nil {
		return nil, err
	}

	report := emptyReport[goal.Result]()
	report.Errors = pulled.Errors
	report.Skipped = pulled.Skipped
	for _, img := range imgs {
		name := img.Name()
		if _, ok := pulled.Results[name]; ok {
			report.Results[name] = goal.Done("pull")
			continue
		}
		if _, failed := pulled.Errors[name]; failed || slices.Contains(pulled.Skipped, name) {
			continue
		}
		report.Results[name] = goal.Noop()
	}
	return report, err
}

// Refresh resynchronizes every image with the daemon's image list. Each
// image gets its own copy of the matching snapshot.
func (s *Service) Refresh(ctx context.Context) error {
	ctx = logging.CtxWithFields(ctx, map[string]any{
		logging.FieldLayer:   "usecase",
		logging.FieldUseCase: "Refresh",
	})
	log := logging.FromCtx(ctx)

	imgs := s.Images()
	byCanonical := make(map[string][]*image.Image, len(imgs))
	for _, img := range imgs {
		img.Forget()
		if c := img.Canonical(); c != "" {
			byCanonical[c] = append(byCanonical[c], img)
		}
	}

	remotes, err := s.transport.ListAll(ctx)
	if err != nil {
		return log.WrapErr(err, "failed to list images")
	}

	matched := make(map[*image.Image]bool, len(imgs))
	for _, remote := range remotes {
		for _, ref := range remote.References {
			for _, img := range byCanonical[ref] {
				img.SetObserved(remote.Clone())
				matched[img] = true
			}
		}
	}

	for _, img := range imgs {
		if !matched[img] {
			img.SetObserved(nil)
		}
	}

	log.Debug().
		Int(logging.FieldCount, len(imgs)).
		Int("remote", len(remotes)).
		Int("matched", len(matched)).
		Msg("collection refreshed")
	return nil
}

// Status refreshes the collection and returns one row per image.
func (s *Service) Status(ctx context.Context) ([]domain.ImageInfo, error) {
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}

	imgs := s.Images()
	rows := make([]domain.ImageInfo, 0, len(imgs))
	for _, img := range imgs {
		rows = append(rows, img.Info())
	}
	return rows, nil
}

func (s *Service) pick(names []string) ([]*image.Image, error) {
	if len(names) == 0 {
		return s.Images(), nil
	}

	imgs := make([]*image.Image, 0, len(names))
	for _, name := range names {
		img, err := s.Get(name)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(imgs, img) {
			imgs = append(imgs, img)
		}
	}
	slices.SortFunc(imgs, RepoTagOrder)
	return imgs, nil
}

func (s *Service) batchOptions(opts BulkOptions) batch.Options {
	o := s.opts
	if opts.IgnoreFailure {
		o.IgnoreFailure = true
	}
	return o
}

func tasks(imgs []*image.Image) []batch.Task[string, *image.Image] {
	ts := make([]batch.Task[string, *image.Image], len(imgs))
	for i, img := range imgs {
		ts[i] = batch.Task[string, *image.Image]{Key: img.Name(), Value: img}
	}
	return ts
}

func everyReady(imgs []*image.Image) bool {
	for _, img := range imgs {
		if !img.Ready() {
			return false
		}
	}
	return true
}

func emptyReport[R any]() *batch.Report[string, R] {
	return &batch.Report[string, R]{
		Results: make(map[string]R),
		Errors:  make(map[string]error),
	}
}
