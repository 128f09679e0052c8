// Package image implements the image entity: declared identity, cached
// observed state and the actions that converge one toward the other.
package image

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/stevedore/internal/boundaries/out"
	"github.com/bnema/stevedore/internal/domain"
	"github.com/bnema/stevedore/internal/logging"
)

// Declaration is what the configuration says about an image.
type Declaration struct {
	Name      string
	Reference string
	External  bool
	Kind      domain.ImageKind
}

// Deps are the collaborators image actions call out to.
type Deps struct {
	Transport   out.ImageTransport
	Credentials out.CredentialProvider
	Progress    out.ProgressSink
}

// Image is one declared image and what is known about it remotely.
type Image struct {
	name     string
	external bool
	kind     domain.ImageKind
	deps     Deps

	mu       sync.RWMutex
	declared string
	parsed   *domain.Reference
	observed *domain.RemoteImage
	loaded   bool
}

// New creates an image from its declaration.
func New(decl Declaration, deps Deps) *Image {
	kind := decl.Kind
	if kind == "" {
		kind = domain.ImageKindNormal
	}
	if deps.Progress == nil {
		deps.Progress = nopSink{}
	}

	return &Image{
		name:     decl.Name,
		external: decl.External,
		kind:     kind,
		deps:     deps,
		declared: decl.Reference,
	}
}

// Name returns the symbolic identity.
func (i *Image) Name() string { return i.name }

// External reports whether the image is owned elsewhere.
func (i *Image) External() bool { return i.external }

// Kind returns the image kind.
func (i *Image) Kind() domain.ImageKind { return i.kind }

// Declared returns the declared reference string.
func (i *Image) Declared() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.declared
}

// SetDeclared replaces the declared reference and drops the parsed cache.
func (i *Image) SetDeclared(ref string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if ref == i.declared {
		return
	}
	i.declared = ref
	i.parsed = nil
}

// Reference returns the parsed declared reference, memoized until the
// declared string changes or Forget is called.
func (i *Image) Reference() (domain.Reference, error) {
	i.mu.RLock()
	if i.parsed != nil {
		ref := *i.parsed
		i.mu.RUnlock()
		return ref, nil
	}
	declared := i.declared
	i.mu.RUnlock()

	ref, err := domain.ParseReference(declared)
	if err != nil {
		return domain.Reference{}, fmt.Errorf("image %s: %w", i.name, err)
	}

	i.mu.Lock()
	if i.declared == declared {
		i.parsed = &ref
	}
	i.mu.Unlock()

	return ref, nil
}

// Canonical returns the canonical declared reference, or "" when it does not parse.
func (i *Image) Canonical() string {
	ref, err := i.Reference()
	if err != nil {
		return ""
	}
	return ref.Canonical
}

// Observed returns a copy of the cached snapshot, or nil.
func (i *Image) Observed() *domain.RemoteImage {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.observed.Clone()
}

// SetObserved replaces the cached snapshot. The image keeps its own copy.
func (i *Image) SetObserved(remote *domain.RemoteImage) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.observed = remote.Clone()
	i.loaded = true
}

// Forget drops the cached snapshot and parsed reference so the next query
// re-derives them.
func (i *Image) Forget() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.observed = nil
	i.parsed = nil
	i.loaded = false
}

// Load fetches the snapshot once after a Forget. An image the daemon does
// not know stays absent and is not an error.
func (i *Image) Load(ctx context.Context) error {
	i.mu.RLock()
	loaded := i.loaded
	i.mu.RUnlock()
	if loaded {
		return nil
	}

	ref, err := i.Reference()
	if err != nil {
		return err
	}

	remote, err := i.deps.Transport.Inspect(ctx, ref.Canonical)
	if err != nil && !errors.Is(err, domain.ErrImageNotFound) {
		return err
	}

	i.mu.Lock()
	i.observed = remote
	i.loaded = true
	i.mu.Unlock()

	return nil
}

// Info returns a display row from the cached state.
func (i *Image) Info() domain.ImageInfo {
	info := domain.ImageInfo{
		Name:      i.name,
		Canonical: i.Canonical(),
		Kind:      i.kind,
		External:  i.external,
		State:     i.State(),
	}
	if obs := i.Observed(); obs != nil {
		info.ID = obs.ID
		info.Size = obs.Size
		info.Created = obs.Created
	}
	return info
}

func (i *Image) notify(ev domain.ProgressEvent) {
	ev.Subject = i.name
	i.deps.Progress.Notify(ev)
}

func (i *Image) chunkFunc(action string, ref domain.Reference) out.ProgressFunc {
	return func(chunk domain.ProgressChunk) {
		i.notify(domain.ProgressEvent{
			Phase:     domain.PhaseProgress,
			Action:    action,
			Reference: ref.Canonical,
			Chunk:     chunk,
		})
	}
}

type nopSink struct{}

func (nopSink) Notify(domain.ProgressEvent) {}

func usecaseCtx(ctx context.Context, usecase, name string) (context.Context, logging.Logger) {
	ctx = logging.CtxWithFields(ctx, map[string]any{
		logging.FieldLayer:   "usecase",
		logging.FieldUseCase: usecase,
		logging.FieldImage:   name,
	})
	return ctx, logging.FromCtx(ctx)
}
